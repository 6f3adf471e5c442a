package cache

import (
	"context"
	"sync"
	"time"
)

// SweepLogger receives a line per sweep that evicted entries.
// observe.Logger satisfies it through an adapter in the host.
type SweepLogger interface {
	Swept(ctx context.Context, removed int, remaining int)
}

// Sweeper periodically evicts expired entries from a Store, independent
// of whether those entries are ever read again.
type Sweeper struct {
	store    Store
	interval time.Duration
	logger   SweepLogger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewSweeper creates a sweeper for store. A non-positive interval selects
// DefaultCleanupInterval. logger may be nil.
func NewSweeper(store Store, interval time.Duration, logger SweepLogger) *Sweeper {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the sweep interval.
func (s *Sweeper) Interval() time.Duration {
	return s.interval
}

// Start launches the sweep loop. It returns ErrNilCache if the sweeper
// has no store. Calling Start on a running sweeper is a no-op.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.store == nil {
		return ErrNilCache
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil && !s.stopped {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.stopped = false

	go s.run(ctx, s.done)
	return nil
}

// Stop halts the sweep loop and waits for it to exit. Idempotent.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.done == nil || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
}

// SweepOnce runs a single cleanup pass and returns the number of evictions.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	removed := s.store.Cleanup(ctx)
	if removed > 0 && s.logger != nil {
		s.logger.Swept(ctx, removed, s.store.Stats(ctx).Size)
	}
	return removed
}

func (s *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}
