package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func fixed(name string, status Status) Checker {
	return NewCheckerFunc(name, func(context.Context) Result {
		return Result{Status: status}
	})
}

func TestAggregator_RegisterKeepsOrder(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register(fixed("database", StatusHealthy))
	agg.Register(fixed("cache", StatusHealthy))
	agg.Register(fixed("database", StatusDegraded))

	names := agg.CheckerNames()
	if len(names) != 2 || names[0] != "database" || names[1] != "cache" {
		t.Errorf("CheckerNames() = %v", names)
	}

	res, err := agg.Check(context.Background(), "database")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if res.Status != StatusDegraded {
		t.Errorf("replaced checker status = %v, want degraded", res.Status)
	}
}

func TestAggregator_CheckUnknown(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	if _, err := agg.Check(context.Background(), "nope"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check() error = %v, want ErrCheckerNotFound", err)
	}
}

func TestAggregator_CheckAllRunsInParallel(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: time.Second})
	var running, peak atomic.Int32
	for _, name := range []string{"a", "b", "c"} {
		agg.Register(NewCheckerFunc(name, func(context.Context) Result {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(30 * time.Millisecond)
			running.Add(-1)
			return Healthy("ok")
		}))
	}

	results := agg.CheckAll(context.Background())
	if len(results) != 3 {
		t.Fatalf("CheckAll() returned %d results, want 3", len(results))
	}
	if peak.Load() < 2 {
		t.Errorf("peak concurrency = %d, want >= 2", peak.Load())
	}
	for name, r := range results {
		if r.Duration <= 0 {
			t.Errorf("%s: Duration not recorded", name)
		}
	}
}

func TestAggregator_Timeout(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 20 * time.Millisecond})
	agg.Register(NewCheckerFunc("stuck", func(ctx context.Context) Result {
		time.Sleep(200 * time.Millisecond)
		return Healthy("late")
	}))

	results := agg.CheckAll(context.Background())
	r := results["stuck"]
	if r.Status != StatusUnhealthy || !errors.Is(r.Error, ErrCheckTimeout) {
		t.Errorf("stuck result = %+v, want unhealthy timeout", r)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", map[string]Result{"a": {Status: StatusHealthy}}, StatusHealthy},
		{"one degraded", map[string]Result{"a": {Status: StatusHealthy}, "b": {Status: StatusDegraded}}, StatusDegraded},
		{"unhealthy wins", map[string]Result{"a": {Status: StatusDegraded}, "b": {Status: StatusUnhealthy}}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(tt.results); got != tt.want {
				t.Errorf("Overall() = %v, want %v", got, tt.want)
			}
		})
	}
}
