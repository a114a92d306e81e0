package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrValidation     = errors.New("validation failed")
)

// Repository abstracts persistence of users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Delete(ctx context.Context, id int64) error
}
