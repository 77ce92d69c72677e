package product

import (
	"context"

	"catalog-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, params ProductParams) (*Product, error)
	Update(ctx context.Context, id int64, params ProductParams) (*Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SearchByName(ctx context.Context, name string) ([]*Product, error)
	ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, params ProductParams) (*Product, error) {
	p, err := s.repo.Create(ctx, &Product{
		Name:        params.Name,
		Price:       params.Price,
		Description: params.Description,
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("layer", "service"),
		zap.Int64("product_id", p.ID),
		zap.String("price", p.Price.StringFixed(2)),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, id int64, params ProductParams) (*Product, error) {
	p, err := s.repo.Update(ctx, &Product{
		ID:          id,
		Name:        params.Name,
		Price:       params.Price,
		Description: params.Description,
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *service) SearchByName(ctx context.Context, name string) ([]*Product, error) {
	return s.repo.SearchByName(ctx, name)
}

// ByPriceRange returns products priced within [min, max], both ends inclusive.
func (s *service) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*Product, error) {
	if min.GreaterThan(max) {
		return nil, ErrInvalidPriceRange
	}
	return s.repo.ByPriceRange(ctx, min, max)
}
