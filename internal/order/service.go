package order

import (
	"context"
	"time"

	"catalog-be/internal/cart"
	"catalog-be/internal/db"
	"catalog-be/internal/logger"
	"catalog-be/internal/metrics"
	"catalog-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, userID int64) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Order, error)
	DeleteOrder(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo     Repository
	cartRepo cart.Repository
	userRepo user.Repository
	tx       db.Transactor
	metrics  *metrics.Checkout
	now      func() time.Time
}

func NewService(
	repo Repository,
	cartRepo cart.Repository,
	userRepo user.Repository,
	tx db.Transactor,
	m *metrics.Checkout,
) Service {
	if m == nil {
		m = &metrics.Checkout{}
	}
	return &service{
		repo:     repo,
		cartRepo: cartRepo,
		userRepo: userRepo,
		tx:       tx,
		metrics:  m,
		now:      time.Now,
	}
}

// Checkout turns the user's cart into a PENDING order. The order, its lines
// and the emptied cart are written in one transaction.
func (s *service) Checkout(ctx context.Context, userID int64) (o *Order, err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int64("user_id", userID),
	)

	timer := metrics.StartTimer()
	defer func() {
		s.metrics.Observe(err, timer.Duration())
	}()

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Error("failed to load user", zap.Error(err))
		return nil, err
	}
	if u == nil {
		log.Warn("user not found")
		return nil, user.ErrUserNotFound
	}

	err = s.tx.WithinTx(ctx, func(tx db.DBTX) error {
		carts := s.cartRepo.WithTx(tx)
		orders := s.repo.WithTx(tx)

		rows, err := carts.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return cart.ErrCartEmpty
		}

		created, err := orders.Create(ctx, userID, StatusPending, s.now().UTC())
		if err != nil {
			return err
		}

		total := decimal.Zero
		created.Items = make([]*OrderItem, 0, len(rows))
		for _, row := range rows {
			item, err := orders.CreateItem(ctx, snapshotItem(created.ID, row))
			if err != nil {
				return err
			}
			item.ProductName = row.ProductName
			created.Items = append(created.Items, item)
			total = total.Add(item.TotalPrice)
		}

		if err := orders.UpdateTotal(ctx, created.ID, total); err != nil {
			return err
		}
		created.TotalAmount = total

		if _, err := carts.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		o = created
		return nil
	})
	if err != nil {
		log.Warn("checkout failed", zap.Error(err))
		return nil, err
	}

	log.Info("checkout completed",
		zap.Int64("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)

	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, orders)
}

func (s *service) ListOrdersByUser(ctx context.Context, userID int64) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, orders)
}

func (s *service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if _, err := s.withItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus overwrites the order's status without checking the
// current one. Unknown statuses are rejected before anything is written.
func (s *service) UpdateStatus(ctx context.Context, id int64, status string) (*Order, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order status",
			zap.String("layer", "service"),
			zap.String("method", "UpdateStatus"),
			zap.Int64("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if _, err := s.withItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *service) withItems(ctx context.Context, orders []*Order) ([]*Order, error) {
	items, err := s.repo.ListItemsByOrderIDs(ctx, orderIDs(orders))
	if err != nil {
		return nil, err
	}
	attachItems(orders, items)
	return orders, nil
}
