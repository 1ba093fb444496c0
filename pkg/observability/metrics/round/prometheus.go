package roundmetrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
	confirmed *prometheus.CounterVec
}

// NewPrometheusMetrics registers the round collectors on registry.
func NewPrometheusMetrics(registry prometheus.Registerer, prefix string) (RoundMetrics, error) {
	if prefix == "" {
		prefix = "golfcard"
	}

	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "round",
			Name:      "operation_attempts_total",
			Help:      "Number of round service operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "round",
			Name:      "operation_success_total",
			Help:      "Number of round service operations that succeeded.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "round",
			Name:      "operation_failure_total",
			Help:      "Number of round service operations that failed.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Subsystem: "round",
			Name:      "operation_duration_seconds",
			Help:      "Duration of round service operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "round",
			Name:      "persistence_fallback_total",
			Help:      "Saves written to the local cache after the remote store failed.",
		}, []string{"operation"}),
		confirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Subsystem: "round",
			Name:      "holes_confirmed_total",
			Help:      "Number of hole confirmations.",
		}, []string{"hole"}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration, m.fallbacks, m.confirmed} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordPersistenceFallback(ctx context.Context, operation string) {
	m.fallbacks.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordHoleConfirmed(ctx context.Context, hole int) {
	m.confirmed.WithLabelValues(strconv.Itoa(hole)).Inc()
}
