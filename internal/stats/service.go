package stats

import (
	"context"

	"catalog-be/internal/metrics"
	"catalog-be/internal/order"
	"catalog-be/internal/product"
	"catalog-be/internal/user"
)

type Stats struct {
	Users     int64                    `json:"users"`
	Products  int64                    `json:"products"`
	Orders    int64                    `json:"orders"`
	Checkouts metrics.CheckoutSnapshot `json:"checkouts"`
}

type Service interface {
	Get(ctx context.Context) (*Stats, error)
}

type service struct {
	users    user.Repository
	products product.Repository
	orders   order.Repository
	checkout *metrics.Checkout
}

func NewService(users user.Repository, products product.Repository, orders order.Repository, checkout *metrics.Checkout) Service {
	return &service{users: users, products: products, orders: orders, checkout: checkout}
}

func (s *service) Get(ctx context.Context) (*Stats, error) {
	var (
		st  Stats
		err error
	)

	if st.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if st.Products, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if st.Orders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if s.checkout != nil {
		st.Checkouts = s.checkout.Snapshot()
	}

	return &st, nil
}
