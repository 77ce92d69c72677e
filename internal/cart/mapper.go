package cart

import "catalog-be/internal/product"

func ToView(r *CartRow) *CartItemView {
	return &CartItemView{
		ID:          r.ID,
		UserID:      r.UserID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		ProductName: r.ProductName,
		UnitPrice:   r.UnitPrice,
		TotalPrice:  r.LineTotal(),
	}
}

func ToViews(rows []*CartRow) []*CartItemView {
	views := make([]*CartItemView, 0, len(rows))
	for _, r := range rows {
		views = append(views, ToView(r))
	}
	return views
}

// joinProduct builds the read-time row for a stored item.
func joinProduct(item *CartItem, p *product.Product) *CartRow {
	return &CartRow{
		ID:          item.ID,
		UserID:      item.UserID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		ProductName: p.Name,
		UnitPrice:   p.Price,
	}
}
