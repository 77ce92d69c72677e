package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"catalog-be/internal/db"
	"catalog-be/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, userID int64, status OrderStatus, createdAt time.Time) (*Order, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*OrderItem, error)
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error

	List(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	ListItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*OrderItem, error)

	UpdateStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	WithTx(tx db.DBTX) Repository
}

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) WithTx(tx db.DBTX) Repository {
	return &repository{db: tx}
}

const selectOrder = `SELECT id, user_id, total_amount, status, created_at FROM orders`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*Order, error) {
	var o Order
	if err := s.Scan(
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts an order header with a zero total.
func (r *repository) Create(ctx context.Context, userID int64, status OrderStatus, createdAt time.Time) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Int64("user_id", userID),
	)

	o := &Order{
		UserID:      userID,
		TotalAmount: decimal.Zero,
		Status:      status,
		CreatedAt:   createdAt,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, o.TotalAmount, status, createdAt).Scan(&o.ID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	log.Debug("order inserted", zap.Int64("order_id", o.ID))
	return o, nil
}

func (r *repository) CreateItem(ctx context.Context, params CreateItemParams) (*OrderItem, error) {
	item := &OrderItem{
		OrderID:    params.OrderID,
		ProductID:  params.ProductID,
		Quantity:   params.Quantity,
		UnitPrice:  params.UnitPrice,
		TotalPrice: params.TotalPrice,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		params.OrderID,
		params.ProductID,
		params.Quantity,
		params.UnitPrice,
		params.TotalPrice,
	).Scan(&item.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert order item",
			zap.String("layer", "repository"),
			zap.String("method", "CreateItem"),
			zap.Int64("order_id", params.OrderID),
			zap.Int64("product_id", params.ProductID),
			zap.Error(err),
		)
		return nil, err
	}

	return item, nil
}

func (r *repository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET total_amount = $1 WHERE id = $2`, total, orderID,
	)
	return err
}

func (r *repository) List(ctx context.Context) ([]*Order, error) {
	return r.query(ctx, "List", selectOrder+` ORDER BY id`)
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	return r.query(ctx, "ListByUser", selectOrder+` WHERE user_id = $1 ORDER BY id`, userID)
}

// GetByID returns nil, nil when the order does not exist.
func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListItemsByOrderIDs loads the lines of every given order in one query,
// joined with the product's current name.
func (r *repository) ListItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*OrderItem, error) {
	result := make(map[int64][]*OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListItemsByOrderIDs"),
		zap.Int("orders", len(orderIDs)),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.id,
			oi.order_id,
			oi.product_id,
			p.name,
			oi.quantity,
			oi.unit_price,
			oi.total_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(orderIDs))
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.ProductName,
			&it.Quantity,
			&it.UnitPrice,
			&it.TotalPrice,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result[it.OrderID] = append(result[it.OrderID], &it)
		n++
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", n),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// UpdateStatus overwrites the status. It returns nil, nil when the order
// does not exist.
func (r *repository) UpdateStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING id, user_id, total_amount, status, created_at
	`, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *repository) query(ctx context.Context, method, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return orders, nil
}
