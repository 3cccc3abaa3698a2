package gokeyset

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExecutorMetrics holds the collectors updated by InstrumentedExecutor.
//
// Metrics:
//   - <namespace>_keyset_fetches_total{executor, outcome} (Counter): executed page fetches
//   - <namespace>_keyset_fetch_duration_seconds{executor} (Histogram): fetch latency
//   - <namespace>_keyset_fetch_rows{executor} (Histogram): rows returned per fetch
type ExecutorMetrics struct {
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.HistogramVec
}

// NewExecutorMetrics creates the collectors and registers them with reg.
func NewExecutorMetrics(reg prometheus.Registerer, namespace string) (*ExecutorMetrics, error) {
	m := &ExecutorMetrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keyset_fetches_total",
			Help:      "Total number of keyset page fetches by outcome.",
		}, []string{"executor", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "keyset_fetch_duration_seconds",
			Help:      "Duration of keyset page fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"executor"}),
		rows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "keyset_fetch_rows",
			Help:      "Number of rows returned by keyset page fetches.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		}, []string{"executor"}),
	}

	for _, c := range []prometheus.Collector{m.fetches, m.duration, m.rows} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// InstrumentedExecutor records fetch counts, latency and row counts of the
// wrapped executor.
type InstrumentedExecutor[T any] struct {
	next    Executor[T]
	name    string
	metrics *ExecutorMetrics
}

// Instrument wraps next; name is used as the "executor" label. With nil
// metrics the wrapper calls next without recording anything.
func Instrument[T any](next Executor[T], name string, metrics *ExecutorMetrics) *InstrumentedExecutor[T] {
	return &InstrumentedExecutor[T]{
		next:    next,
		name:    name,
		metrics: metrics,
	}
}

// Execute - implements Executor.
func (e *InstrumentedExecutor[T]) Execute(ctx context.Context, q Query) ([]T, error) {
	if e.metrics == nil {
		return e.next.Execute(ctx, q)
	}

	start := time.Now()
	rows, err := e.next.Execute(ctx, q)
	e.metrics.duration.WithLabelValues(e.name).Observe(time.Since(start).Seconds())

	if err != nil {
		e.metrics.fetches.WithLabelValues(e.name, "error").Inc()
		return nil, err
	}

	e.metrics.fetches.WithLabelValues(e.name, "ok").Inc()
	e.metrics.rows.WithLabelValues(e.name).Observe(float64(len(rows)))

	return rows, nil
}

var _ Executor[struct{}] = (*InstrumentedExecutor[struct{}])(nil)
