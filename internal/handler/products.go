package handler

import (
	"bytes"
	"net/http"

	"catalog-be/internal/apperr"
	"catalog-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	Name        string           `json:"name" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Description string           `json:"description"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	errNegativePrice = apperr.New(apperr.InvalidArgument, "price must not be negative")
	errInvalidPrice  = apperr.New(apperr.InvalidArgument, "minPrice and maxPrice must be decimal numbers")
)

func (r productRequest) params() (product.ProductParams, error) {
	if r.Price.IsNegative() {
		return product.ProductParams{}, errNegativePrice
	}
	return product.ProductParams{
		Name:        r.Name,
		Price:       *r.Price,
		Description: r.Description,
	}, nil
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ExportProducts streams the catalog as an xlsx download.
func (h *Handler) ExportProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := product.WriteXLSX(&buf, products); err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.products.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) ProductsByPriceRange(c *gin.Context) {
	minPrice, err := decimal.NewFromString(c.Query("minPrice"))
	if err != nil {
		writeError(c, errInvalidPrice)
		return
	}
	maxPrice, err := decimal.NewFromString(c.Query("maxPrice"))
	if err != nil {
		writeError(c, errInvalidPrice)
		return
	}

	products, err := h.products.ByPriceRange(c.Request.Context(), minPrice, maxPrice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	removed, err := h.products.Delete(c.Request.Context(), id)
	deleted(c, removed, err, product.ErrProductNotFound)
}
