package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
}

// CartRow is a cart item joined with the product's current name and price.
type CartRow struct {
	ID          int64
	UserID      int64
	ProductID   int64
	Quantity    int
	ProductName string
	UnitPrice   decimal.Decimal
}

func (r *CartRow) LineTotal() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

type CartItemView struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	ProductID   int64           `json:"productId"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type AddToCartParams struct {
	UserID    int64
	ProductID int64
	Quantity  int
}

type CreateCartItemParams struct {
	UserID    int64
	ProductID int64
	Quantity  int
}
