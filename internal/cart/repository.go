package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"catalog-be/internal/db"
	"catalog-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*CartRow, error)
	GetByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error)
	Create(ctx context.Context, params CreateCartItemParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, itemID int64, quantity int) (*CartItem, error)
	Delete(ctx context.Context, itemID int64) (bool, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	// WithTx returns a Repository whose queries run on tx.
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

// ListByUser returns the user's cart in insertion order.
func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*CartRow, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.Int64("user_id", userID),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id,
			c.user_id,
			c.product_id,
			c.quantity,
			p.name,
			p.price
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.id
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]*CartRow, 0)
	for rows.Next() {
		var row CartRow
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.ProductID,
			&row.Quantity,
			&row.ProductName,
			&row.UnitPrice,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// GetByUserAndProduct returns nil, nil when the pair has no cart row.
func (r *repository) GetByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// Create inserts the item, or adds to the quantity of the row already held
// for the same user and product.
func (r *repository) Create(ctx context.Context, params CreateCartItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Int64("user_id", params.UserID),
		zap.Int64("product_id", params.ProductID),
	)

	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, user_id, product_id, quantity, created_at
	`, params.UserID, params.ProductID, params.Quantity).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("success create cart item", zap.Int64("cart_item_id", item.ID))
	return &item, nil
}

// UpdateQuantity overwrites the quantity. It returns nil, nil when the item
// does not exist.
func (r *repository) UpdateQuantity(ctx context.Context, itemID int64, quantity int) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2
		RETURNING id, user_id, product_id, quantity, created_at
	`, quantity, itemID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) Delete(ctx context.Context, itemID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DeleteByUser empties the user's cart and reports how many rows went.
func (r *repository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
