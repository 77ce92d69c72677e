package cart

import (
	"context"
	"math"

	"catalog-be/internal/logger"
	"catalog-be/internal/product"
	"catalog-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxQuantity is the largest quantity a single cart line can hold.
const MaxQuantity = math.MaxInt32

// Service defines the business logic for carts.
type Service interface {
	ListCart(ctx context.Context, userID int64) ([]*CartItemView, error)
	AddToCart(ctx context.Context, params AddToCartParams) (*CartItemView, error)
	UpdateQuantity(ctx context.Context, itemID int64, quantity int) (*CartItemView, error)
	RemoveItem(ctx context.Context, itemID int64) (bool, error)
	Clear(ctx context.Context, userID int64) error
	Total(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type service struct {
	repo        Repository
	userRepo    user.Repository
	productRepo product.Repository
}

func NewService(repo Repository, userRepo user.Repository, productRepo product.Repository) Service {
	return &service{repo: repo, userRepo: userRepo, productRepo: productRepo}
}

func (s *service) ListCart(ctx context.Context, userID int64) ([]*CartItemView, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToViews(rows), nil
}

// AddToCart puts a product in the user's cart. Adding a product that is
// already there adds to the stored quantity.
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*CartItemView, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Int64("user_id", params.UserID),
		zap.Int64("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)

	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if params.Quantity > MaxQuantity {
		return nil, ErrQuantityTooLarge
	}

	u, err := s.userRepo.GetByID(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}

	item, err := s.repo.GetByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	if item == nil {
		item, err = s.repo.Create(ctx, CreateCartItemParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
			Quantity:  params.Quantity,
		})
	} else {
		if item.Quantity > MaxQuantity-params.Quantity {
			log.Warn("accumulated quantity over limit", zap.Int("stored_quantity", item.Quantity))
			return nil, ErrQuantityTooLarge
		}
		item, err = s.repo.UpdateQuantity(ctx, item.ID, item.Quantity+params.Quantity)
		if err == nil && item == nil {
			err = ErrCartItemNotFound
		}
	}
	if err != nil {
		log.Error("failed to save cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item saved",
		zap.Int64("cart_item_id", item.ID),
		zap.Int("final_quantity", item.Quantity),
	)

	return ToView(joinProduct(item, p)), nil
}

// UpdateQuantity overwrites the quantity of a cart item.
func (s *service) UpdateQuantity(ctx context.Context, itemID int64, quantity int) (*CartItemView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return nil, ErrQuantityTooLarge
	}

	item, err := s.repo.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	p, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}

	return ToView(joinProduct(item, p)), nil
}

func (s *service) RemoveItem(ctx context.Context, itemID int64) (bool, error) {
	return s.repo.Delete(ctx, itemID)
}

func (s *service) Clear(ctx context.Context, userID int64) error {
	n, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Debug("cart cleared",
		zap.Int64("user_id", userID),
		zap.Int64("removed", n),
	)
	return nil
}

// Total sums unit price times quantity over the user's cart.
func (s *service) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumRows(rows), nil
}

func SumRows(rows []*CartRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.LineTotal())
	}
	return total
}
