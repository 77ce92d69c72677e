package user

import (
	"context"
	"errors"
	"testing"

	"catalog-be/internal/apperr"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, name, email string) (*User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *User) (*User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	params := CreateUserParams{Name: "Joao Silva", Email: "joao@email.com"}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expected := &User{ID: 1, Name: params.Name, Email: params.Email}
		mockRepo.On("ExistsByEmail", ctx, params.Email).Return(false, nil)
		mockRepo.On("Create", ctx, params.Name, params.Email).Return(expected, nil)

		u, err := svc.Create(ctx, params)

		assert.NoError(t, err)
		assert.Equal(t, expected, u)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmailExists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("ExistsByEmail", ctx, params.Email).Return(true, nil)

		_, err := svc.Create(ctx, params)

		assert.Equal(t, ErrEmailExists, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UniqueViolationRace", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("ExistsByEmail", ctx, params.Email).Return(false, nil)
		mockRepo.On("Create", ctx, params.Name, params.Email).
			Return(nil, &pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := svc.Create(ctx, params)

		assert.Equal(t, ErrEmailExists, err)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("ExistsByEmail", ctx, params.Email).Return(false, nil)
		mockRepo.On("Create", ctx, params.Name, params.Email).Return(nil, errors.New("db error"))

		_, err := svc.Create(ctx, params)

		assert.EqualError(t, err, "db error")
		assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("SameEmailNeverConflicts", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		existing := &User{ID: 1, Name: "Joao", Email: "joao@email.com"}
		mockRepo.On("GetByID", ctx, int64(1)).Return(existing, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Name == "Joao Silva" && u.Email == "joao@email.com"
		})).Return(&User{ID: 1, Name: "Joao Silva", Email: "joao@email.com"}, nil)

		u, err := svc.Update(ctx, 1, UpdateUserParams{Name: "Joao Silva", Email: "joao@email.com"})

		assert.NoError(t, err)
		assert.Equal(t, "Joao Silva", u.Name)
		mockRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("ChangedEmailTaken", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, int64(1)).Return(&User{ID: 1, Name: "Joao", Email: "joao@email.com"}, nil)
		mockRepo.On("ExistsByEmail", ctx, "maria@email.com").Return(true, nil)

		_, err := svc.Update(ctx, 1, UpdateUserParams{Name: "Joao", Email: "maria@email.com"})

		assert.Equal(t, ErrEmailExists, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("ChangedEmailFree", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, int64(1)).Return(&User{ID: 1, Name: "Joao", Email: "joao@email.com"}, nil)
		mockRepo.On("ExistsByEmail", ctx, "joao@new.com").Return(false, nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(&User{ID: 1, Name: "Joao", Email: "joao@new.com"}, nil)

		u, err := svc.Update(ctx, 1, UpdateUserParams{Name: "Joao", Email: "joao@new.com"})

		assert.NoError(t, err)
		assert.Equal(t, "joao@new.com", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, int64(9)).Return(nil, nil)

		_, err := svc.Update(ctx, 9, UpdateUserParams{Name: "X", Email: "x@email.com"})

		assert.Equal(t, ErrUserNotFound, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, int64(1)).Return(&User{ID: 1}, nil)

		u, err := NewService(mockRepo).GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", ctx, int64(2)).Return(nil, nil)

		_, err := NewService(mockRepo).GetByID(ctx, 2)
		assert.Equal(t, ErrUserNotFound, err)
	})
}

func TestService_GetByEmail(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	mockRepo.On("GetByEmail", ctx, "nobody@email.com").Return(nil, nil)

	_, err := NewService(mockRepo).GetByEmail(ctx, "nobody@email.com")
	assert.Equal(t, ErrUserNotFound, err)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	mockRepo.On("Delete", ctx, int64(1)).Return(true, nil)
	mockRepo.On("Delete", ctx, int64(2)).Return(false, nil)

	svc := NewService(mockRepo)

	ok, err := svc.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(ctx, 2)
	assert.NoError(t, err)
	assert.False(t, ok)
}
