package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Connect opens a pgx connection pool and performs a Ping to ensure connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	// Reasonable defaults
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// ConnectWithRetry calls Connect up to attempts times, waiting delay between tries.
// Configuration errors are not retried.
func ConnectWithRetry(ctx context.Context, dsn string, attempts int, delay time.Duration, log *zap.Logger) (*pgxpool.Pool, error) {
	if attempts < 1 {
		attempts = 1
	}
	if _, err := pgxpool.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	var pool *pgxpool.Pool
	attempt := 0
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		p, err := Connect(ctx, dsn)
		if err != nil {
			log.Warn("database not ready",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", attempt, err)
	}
	return pool, nil
}
