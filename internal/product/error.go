package product

import "catalog-be/internal/apperr"

var (
	ErrProductNotFound   = apperr.New(apperr.NotFound, "product not found")
	ErrInvalidPriceRange = apperr.New(apperr.InvalidArgument, "minimum price is greater than maximum price")
)
