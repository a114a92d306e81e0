package ratelimit

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisLimiter struct {
	client  *redis.Client
	log     *zap.Logger
	prefix  string
	timeout time.Duration
}

// NewRedis shares counters between replicas. Redis failures fail open.
func NewRedis(client *redis.Client, log *zap.Logger) Limiter {
	return &redisLimiter{
		client:  client,
		log:     log,
		prefix:  "users-api:ratelimit:",
		timeout: 250 * time.Millisecond,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := l.prefix + key
	var incr *redis.IntCmd
	var pttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		l.log.Error("redis rate limiter error", zap.String("op", "incr"), zap.Error(err))
		return Decision{Allowed: true}
	}
	counter := incr.Val()

	// Keys without expiry are re-armed, otherwise the counter never resets.
	ttl := pttl.Val()
	if ttl <= 0 {
		if err := l.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			l.log.Error("redis rate limiter error", zap.String("op", "expire"), zap.Error(err))
		}
		ttl = window
	}
	return Decision{
		Allowed:   int(counter) <= limit,
		Count:     int(counter),
		WindowEnd: time.Now().Add(ttl),
	}
}

// Close is a no-op; the client is owned by the caller.
func (l *redisLimiter) Close() {}
