package product

import (
	"context"
	"errors"
	"testing"

	"catalog-be/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) (*Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) (*Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SearchByName(ctx context.Context, name string) ([]*Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*Product, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, int64(1)).Return(&Product{ID: 1, Name: "Notebook"}, nil)

		p, err := NewService(mockRepo).GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Notebook", p.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, int64(2)).Return(nil, nil)

		_, err := NewService(mockRepo).GetByID(ctx, 2)
		assert.Equal(t, ErrProductNotFound, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, int64(3)).Return(nil, errors.New("db error"))

		_, err := NewService(mockRepo).GetByID(ctx, 3)
		assert.EqualError(t, err, "db error")
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	params := ProductParams{Name: "Smartphone", Price: decimal.RequireFromString("1200.00"), Description: "128GB"}

	mockRepo := new(MockRepository)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
		return p.ID == 0 && p.Name == params.Name && p.Price.Equal(params.Price)
	})).Return(&Product{ID: 5, Name: params.Name, Price: params.Price, Description: params.Description}, nil)

	p, err := NewService(mockRepo).Create(ctx, params)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	mockRepo.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	params := ProductParams{Name: "Monitor", Price: decimal.RequireFromString("799.90")}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(p *Product) bool { return p.ID == 4 })).
			Return(&Product{ID: 4, Name: params.Name, Price: params.Price}, nil)

		p, err := NewService(mockRepo).Update(ctx, 4, params)
		assert.NoError(t, err)
		assert.Equal(t, "799.90", p.Price.StringFixed(2))
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Update", ctx, mock.Anything).Return(nil, nil)

		_, err := NewService(mockRepo).Update(ctx, 40, params)
		assert.Equal(t, ErrProductNotFound, err)
	})
}

func TestService_ByPriceRange(t *testing.T) {
	ctx := context.Background()
	low := decimal.RequireFromString("100")
	high := decimal.RequireFromString("500")

	t.Run("Inclusive", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("ByPriceRange", ctx, low, high).Return([]*Product{{ID: 1}}, nil)

		products, err := NewService(mockRepo).ByPriceRange(ctx, low, high)
		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("EqualBounds", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("ByPriceRange", ctx, low, low).Return([]*Product{}, nil)

		_, err := NewService(mockRepo).ByPriceRange(ctx, low, low)
		assert.NoError(t, err)
	})

	t.Run("InvertedRange", func(t *testing.T) {
		mockRepo := new(MockRepository)

		_, err := NewService(mockRepo).ByPriceRange(ctx, high, low)
		assert.Equal(t, ErrInvalidPriceRange, err)
		assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
		mockRepo.AssertNotCalled(t, "ByPriceRange", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_SearchByName(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	mockRepo.On("SearchByName", ctx, "NOTE").Return([]*Product{{ID: 1, Name: "Notebook"}}, nil)

	products, err := NewService(mockRepo).SearchByName(ctx, "NOTE")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	mockRepo.On("Delete", ctx, int64(1)).Return(false, nil)

	ok, err := NewService(mockRepo).Delete(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, ok)
}
