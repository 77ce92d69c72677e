package cart

import "catalog-be/internal/apperr"

var (
	ErrInvalidQuantity  = apperr.New(apperr.InvalidArgument, "quantity must be at least 1")
	ErrQuantityTooLarge = apperr.New(apperr.InvalidArgument, "quantity exceeds the per-item limit")
	ErrCartItemNotFound = apperr.New(apperr.NotFound, "cart item not found")
	ErrCartEmpty        = apperr.New(apperr.InvalidState, "cart is empty")
)
