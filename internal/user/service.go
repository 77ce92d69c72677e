package user

import (
	"context"

	"catalog-be/internal/db"
	"catalog-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) (*User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("email", params.Email),
	)

	exists, err := s.repo.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Warn("email already in use")
		return nil, ErrEmailExists
	}

	u, err := s.repo.Create(ctx, params.Name, params.Email)
	if err != nil {
		// lost a race with a concurrent insert of the same email
		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	log.Info("user created", zap.Int64("user_id", u.ID))
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, params UpdateUserParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Int64("user_id", id),
	)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if existing.Email != params.Email {
		exists, err := s.repo.ExistsByEmail(ctx, params.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			log.Warn("email already in use", zap.String("email", params.Email))
			return nil, ErrEmailExists
		}
	}

	existing.Name = params.Name
	existing.Email = params.Email

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}

	log.Info("user updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
