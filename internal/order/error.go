package order

import "catalog-be/internal/apperr"

var (
	ErrOrderNotFound = apperr.New(apperr.NotFound, "order not found")
	ErrInvalidStatus = apperr.New(apperr.InvalidArgument, "invalid order status")
)
