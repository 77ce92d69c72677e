package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"catalog-be/internal/db"
	"catalog-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SearchByName(ctx context.Context, name string) ([]*Product, error)
	ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*Product, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const selectProduct = `SELECT id, name, price, description FROM products`

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	return r.query(ctx, "List", selectProduct+` ORDER BY id`)
}

// GetByID returns nil, nil when the product does not exist.
func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, selectProduct+` WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	var out Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, price, description
	`, p.Name, p.Price, p.Description).
		Scan(&out.ID, &out.Name, &out.Price, &out.Description)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("name", p.Name),
			zap.Error(err),
		)
		return nil, err
	}

	return &out, nil
}

// Update returns nil, nil when the product does not exist.
func (r *repository) Update(ctx context.Context, p *Product) (*Product, error) {
	var out Product
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, description = $3
		WHERE id = $4
		RETURNING id, name, price, description
	`, p.Name, p.Price, p.Description, p.ID).
		Scan(&out.ID, &out.Name, &out.Price, &out.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *repository) SearchByName(ctx context.Context, name string) ([]*Product, error) {
	return r.query(ctx, "SearchByName",
		selectProduct+` WHERE name ILIKE $1 ORDER BY id`,
		"%"+escapeLike(name)+"%",
	)
}

func (r *repository) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*Product, error) {
	return r.query(ctx, "ByPriceRange",
		selectProduct+` WHERE price BETWEEN $1 AND $2 ORDER BY id`,
		min, max,
	)
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *repository) query(ctx context.Context, method, query string, args ...any) ([]*Product, error) {
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

	products := make([]*Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return products, nil
}

// escapeLike makes % and _ in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
