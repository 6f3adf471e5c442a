package cache

import (
	"context"
	"testing"
	"time"
)

type sweepRecord struct {
	removed   int
	remaining int
}

type recordingSweepLogger struct {
	ch chan sweepRecord
}

func (l *recordingSweepLogger) Swept(_ context.Context, removed int, remaining int) {
	l.ch <- sweepRecord{removed: removed, remaining: remaining}
}

func TestNewSweeper_DefaultInterval(t *testing.T) {
	s := NewSweeper(NewMemoryStore(DefaultPolicy()), 0, nil)
	if s.Interval() != DefaultCleanupInterval {
		t.Errorf("Interval() = %v, want %v", s.Interval(), DefaultCleanupInterval)
	}
}

func TestSweeper_EvictsWithoutReads(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(clock)
	ctx := context.Background()

	_ = store.Set(ctx, "news:all", []byte("n"), TTLVolatile)
	_ = store.Set(ctx, "categories:all", []byte("c"), TTLReference)
	clock.Advance(TTLVolatile + time.Second)

	logger := &recordingSweepLogger{ch: make(chan sweepRecord, 1)}
	sweeper := NewSweeper(store, 5*time.Millisecond, logger)
	if err := sweeper.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer sweeper.Stop()

	select {
	case rec := <-logger.ch:
		if rec.removed != 1 || rec.remaining != 1 {
			t.Errorf("sweep = %+v, want removed=1 remaining=1", rec)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not evict the expired entry")
	}
}

func TestSweeper_StopIdempotent(t *testing.T) {
	sweeper := NewSweeper(NewMemoryStore(DefaultPolicy()), time.Millisecond, nil)

	// Stop before Start is a no-op.
	sweeper.Stop()

	if err := sweeper.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Second Start on a running sweeper is a no-op.
	if err := sweeper.Start(context.Background()); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	sweeper.Stop()
	sweeper.Stop()
}

func TestSweeper_StopsOnContextCancel(t *testing.T) {
	sweeper := NewSweeper(NewMemoryStore(DefaultPolicy()), time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := sweeper.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}

func TestSweeper_NilStore(t *testing.T) {
	sweeper := NewSweeper(nil, time.Minute, nil)
	if err := sweeper.Start(context.Background()); err != ErrNilCache {
		t.Errorf("Start() = %v, want %v", err, ErrNilCache)
	}
}

func TestSweeper_SweepOnce(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(clock)
	ctx := context.Background()

	_ = store.Set(ctx, "a", []byte("1"), time.Second)
	_ = store.Set(ctx, "b", []byte("2"), time.Second)
	clock.Advance(2 * time.Second)

	sweeper := NewSweeper(store, time.Hour, nil)
	if removed := sweeper.SweepOnce(ctx); removed != 2 {
		t.Errorf("SweepOnce() = %d, want 2", removed)
	}
	if removed := sweeper.SweepOnce(ctx); removed != 0 {
		t.Errorf("second SweepOnce() = %d, want 0", removed)
	}
}
