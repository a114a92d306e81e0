package checkers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresChecker struct {
	pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (c *PostgresChecker) Name() string { return "postgres" }

// Check runs a round-trip query rather than a bare ping so a wedged backend is noticed.
func (c *PostgresChecker) Check(ctx context.Context) error {
	var one int
	return c.pool.QueryRow(ctx, "SELECT 1").Scan(&one)
}
