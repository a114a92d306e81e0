package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

// Limiter counts hits per key inside a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) Decision
	Close()
}

type Decision struct {
	Allowed   bool
	Count     int
	WindowEnd time.Time
}

type memoryLimiter struct {
	mu      sync.Mutex
	entries map[string]state
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

type state struct {
	count     int
	windowEnd time.Time
}

// NewMemory returns a process-local limiter with a background sweeper; call Close to stop it.
func NewMemory() Limiter {
	l := newMemory(time.Now)
	go l.sweepLoop()
	return l
}

func newMemory(now func() time.Time) *memoryLimiter {
	return &memoryLimiter{
		entries: make(map[string]state),
		now:     now,
		stopCh:  make(chan struct{}),
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.entries[key]
	if !ok || now.After(st.windowEnd) {
		st = state{count: 1, windowEnd: now.Add(window)}
		l.entries[key] = st
		return Decision{Allowed: true, Count: st.count, WindowEnd: st.windowEnd}
	}
	if st.count >= limit {
		return Decision{Allowed: false, Count: st.count, WindowEnd: st.windowEnd}
	}
	st.count++
	l.entries[key] = st
	return Decision{Allowed: true, Count: st.count, WindowEnd: st.windowEnd}
}

func (l *memoryLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(l.now())
		case <-l.stopCh:
			return
		}
	}
}

func (l *memoryLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, st := range l.entries {
		if now.After(st.windowEnd) {
			delete(l.entries, key)
		}
	}
}

func (l *memoryLimiter) Close() {
	l.once.Do(func() {
		close(l.stopCh)
	})
}
