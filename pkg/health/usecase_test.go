package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkerFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (c checkerFunc) Name() string                    { return c.name }
func (c checkerFunc) Check(ctx context.Context) error { return c.fn(ctx) }

func TestReadyAllHealthy(t *testing.T) {
	ok := checkerFunc{"postgres", func(context.Context) error { return nil }}
	require.NoError(t, NewService(ok, nil).Ready(context.Background()))
}

func TestReadyReportsFirstFailure(t *testing.T) {
	calls := 0
	down := checkerFunc{"postgres", func(context.Context) error { calls++; return errors.New("connection refused") }}
	next := checkerFunc{"redis", func(context.Context) error { calls++; return nil }}

	err := NewService(down, next).Ready(context.Background())
	require.Error(t, err)
	assert.Equal(t, "postgres: connection refused", err.Error())
	assert.Equal(t, 1, calls)
}

func TestReadyBoundsEachChecker(t *testing.T) {
	slow := checkerFunc{"postgres", func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
		return nil
	}}
	require.NoError(t, NewService(slow).Ready(context.Background()))
}
