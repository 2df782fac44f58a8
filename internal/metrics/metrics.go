// Package metrics records game service operations.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GameMetrics is implemented by the Prometheus recorder and the no-op.
type GameMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string, reason string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordGameEvent(ctx context.Context, event string)
}

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	events    *prometheus.CounterVec
}

// NewPrometheus registers the game collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (GameMetrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsr",
			Subsystem: "game_service",
			Name:      "operation_attempts_total",
			Help:      "Number of game service operations started.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsr",
			Subsystem: "game_service",
			Name:      "operation_success_total",
			Help:      "Number of game service operations that succeeded.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsr",
			Subsystem: "game_service",
			Name:      "operation_failures_total",
			Help:      "Number of game service operations that failed, by reason.",
		}, []string{"operation", "reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gsr",
			Subsystem: "game_service",
			Name:      "operation_duration_seconds",
			Help:      "Duration of game service operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"operation"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gsr",
			Name:      "game_events_total",
			Help:      "Game lifecycle events such as started, ended or imported.",
		}, []string{"event"}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration, m.events} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation string, reason string) {
	m.failures.WithLabelValues(operation, reason).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordGameEvent(_ context.Context, event string) {
	m.events.WithLabelValues(event).Inc()
}

type noop struct{}

// NewNoop returns a recorder that discards everything.
func NewNoop() GameMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)         {}
func (noop) RecordOperationDuration(context.Context, string, time.Duration) {}
func (noop) RecordGameEvent(context.Context, string)                        {}
