package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrAdminAlreadyExists = errors.New("administrator already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// AdminRepository abstracts persistence of administrators.
// Administrators are provisioned out-of-band; the API only reads them.
type AdminRepository interface {
	Create(ctx context.Context, admin *Administrator) error
	GetByEmail(ctx context.Context, email string) (Administrator, error)
}
