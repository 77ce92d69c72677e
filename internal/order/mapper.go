package order

import "catalog-be/internal/cart"

// snapshotItem copies the cart row's current price into a new order line.
func snapshotItem(orderID int64, row *cart.CartRow) CreateItemParams {
	return CreateItemParams{
		OrderID:    orderID,
		ProductID:  row.ProductID,
		Quantity:   row.Quantity,
		UnitPrice:  row.UnitPrice,
		TotalPrice: row.LineTotal(),
	}
}

// attachItems sets each order's items from the batch keyed by order id.
// Orders without lines get an empty slice.
func attachItems(orders []*Order, items map[int64][]*OrderItem) {
	for _, o := range orders {
		o.Items = items[o.ID]
		if o.Items == nil {
			o.Items = make([]*OrderItem, 0)
		}
	}
}

func orderIDs(orders []*Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
