package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/users-api/pkg/auth"
)

// AdminRepository implements auth.AdminRepository backed by PostgreSQL (pgx).
type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) Create(ctx context.Context, admin *auth.Administrator) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO administrators (email, password, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`, strings.ToLower(admin.Email), admin.PasswordHash, admin.Role).Scan(&admin.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrAdminAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (auth.Administrator, error) {
	var admin auth.Administrator
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password, role
		FROM administrators WHERE email = $1
	`, strings.ToLower(email)).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Administrator{}, auth.ErrNotFound
		}
		return auth.Administrator{}, err
	}
	return admin, nil
}
