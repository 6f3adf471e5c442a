package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics records catalog operation and cache lookup metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordOperation records one operation with its duration and outcome.
	RecordOperation(ctx context.Context, op Op, duration time.Duration, err error)

	// RecordLookup records a cache hit or miss for namespace.
	RecordLookup(ctx context.Context, namespace string, hit bool)
}

type otelMetrics struct {
	total    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
	lookups  metric.Int64Counter
}

// NewMetrics creates the catalog instruments on meter. A nil meter yields
// no-op instruments.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}

	m := &otelMetrics{}
	var err error

	if m.total, err = meter.Int64Counter("catalog.op.total",
		metric.WithDescription("Catalog operations"),
		metric.WithUnit("{call}"),
	); err != nil {
		return nil, err
	}
	if m.errors, err = meter.Int64Counter("catalog.op.errors",
		metric.WithDescription("Catalog operations that returned an error"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram("catalog.op.duration_ms",
		metric.WithDescription("Catalog operation duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.lookups, err = meter.Int64Counter("cache.lookups",
		metric.WithDescription("Response cache lookups by outcome"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *otelMetrics) RecordOperation(ctx context.Context, op Op, duration time.Duration, err error) {
	opt := metric.WithAttributes(
		attribute.String("entity", op.Entity),
		attribute.String("action", op.Action),
	)

	m.total.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *otelMetrics) RecordLookup(ctx context.Context, namespace string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("namespace", namespace),
		attribute.String("outcome", outcome),
	))
}
