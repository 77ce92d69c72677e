package handler

import (
	"net/http"

	"catalog-be/internal/apperr"
	"catalog-be/internal/cart"
	"catalog-be/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type addToCartRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=2147483647"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=2147483647"`
}

type checkoutResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	OrderID int64            `json:"orderId,omitempty"`
	Total   *decimal.Decimal `json:"total,omitempty"`
}

func (h *Handler) ListCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	items, err := h.carts.ListCart(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.carts.AddToCart(c.Request.Context(), cart.AddToCartParams{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.carts.UpdateQuantity(c.Request.Context(), itemID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	removed, err := h.carts.RemoveItem(c.Request.Context(), itemID)
	deleted(c, removed, err, cart.ErrCartItemNotFound)
}

func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CartTotal(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	total, err := h.carts.Total(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// CheckoutCart places an order and answers in the envelope the storefront
// expects: 200 on success, the error's status with success=false otherwise.
func (h *Handler) CheckoutCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	ctx := logger.WithFields(c.Request.Context(), zap.Int64("user_id", userID))

	o, err := h.orders.Checkout(ctx, userID)
	if err != nil {
		kind := apperr.KindOf(err)
		msg := err.Error()
		if kind == apperr.Internal {
			logger.FromCtx(ctx).Error("checkout failed",
				zap.String("layer", "handler"),
				zap.Error(err),
			)
			msg = "checkout failed"
		}
		c.JSON(statusFor(kind), checkoutResponse{Success: false, Message: msg})
		return
	}

	c.JSON(http.StatusOK, checkoutResponse{
		Success: true,
		Message: "order created",
		OrderID: o.ID,
		Total:   &o.TotalAmount,
	})
}
