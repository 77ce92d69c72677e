package handler

import (
	"net/http"
	"strconv"

	"catalog-be/internal/apperr"
	"catalog-be/internal/cart"
	"catalog-be/internal/logger"
	"catalog-be/internal/order"
	"catalog-be/internal/product"
	"catalog-be/internal/stats"
	"catalog-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Money goes over the wire as a JSON number.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Handler struct {
	users    user.Service
	products product.Service
	carts    cart.Service
	orders   order.Service
	stats    stats.Service
}

func New(
	users user.Service,
	products product.Service,
	carts cart.Service,
	orders order.Service,
	st stats.Service,
) *Handler {
	return &Handler{
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
		stats:    st,
	}
}

var errInvalidID = apperr.New(apperr.InvalidArgument, "invalid id")

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.InvalidState, apperr.InvalidArgument:
		return http.StatusBadRequest
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with the status of its kind. Unclassified errors
// are logged and hidden behind a generic message.
func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	msg := err.Error()
	if kind == apperr.Internal {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("layer", "handler"),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = http.StatusText(status)
	}

	c.JSON(status, gin.H{"error": msg})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		writeError(c, errInvalidID)
		return 0, false
	}
	return id, true
}

// deleted answers 204 when something was removed and 404 otherwise.
func deleted(c *gin.Context, ok bool, err error, notFound error) {
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		writeError(c, notFound)
		return
	}
	c.Status(http.StatusNoContent)
}
