package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/users-api/pkg/users"
)

const uniqueViolation = "23505"

// UserRepository implements users.Repository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *users.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, birth_date, city, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, user.FirstName, user.LastName, user.Email, user.BirthDate, user.City, user.PostalCode).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, birth_date, city, postal_code
		FROM users ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.BirthDate, &u.City, &u.PostalCode); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (users.User, error) {
	var u users.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, birth_date, city, postal_code
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.BirthDate, &u.City, &u.PostalCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
