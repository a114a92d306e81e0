package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisLimiter(t *testing.T) (*miniredis.Miniredis, Limiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedis(client, zap.NewNop())
}

func TestRedisLimiterWindow(t *testing.T) {
	mr, l := newRedisLimiter(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		d := l.Allow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
		require.True(t, d.Allowed, "hit %d", i)
		assert.Equal(t, i, d.Count)
	}
	d := l.Allow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
	assert.False(t, d.Allowed)
	assert.Equal(t, 3, d.Count)
	assert.Equal(t, time.Minute, mr.TTL("users-api:ratelimit:login:ip:1.2.3.4"))

	mr.FastForward(time.Minute + time.Second)
	d = l.Allow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
}

func TestRedisLimiterRearmsKeyWithoutExpiry(t *testing.T) {
	mr, l := newRedisLimiter(t)
	ctx := context.Background()
	const key = "users-api:ratelimit:login:ip:1.2.3.4"

	// Counter left behind by an expire that never landed.
	require.NoError(t, mr.Set(key, "2"))
	require.Zero(t, mr.TTL(key))

	d := l.Allow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(24 * time.Hour)
	d = l.Allow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	mr, l := newRedisLimiter(t)
	mr.Close()

	d := l.Allow(context.Background(), "login:ip:1.2.3.4", 1, time.Minute)
	assert.True(t, d.Allowed)
}
