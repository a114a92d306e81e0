package health

import (
	"context"
	"fmt"
	"time"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
	timeout  time.Duration
}

// NewService aggregates dependency checkers. Each checker gets its own one-second budget.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers, timeout: time.Second}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if ch == nil {
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := ch.Check(cctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}
