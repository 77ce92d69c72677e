package user

import "catalog-be/internal/apperr"

var (
	ErrUserNotFound = apperr.New(apperr.NotFound, "user not found")
	ErrEmailExists  = apperr.New(apperr.Conflict, "email already in use")
)

const emailUniqueConstraint = "users_email_key"
