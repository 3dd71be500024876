package metrics

import (
	"context"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// countTimeout bounds the store query behind the active providers gauge.
const countTimeout = 2 * time.Second

// ActiveCounter counts providers whose status is active.
type ActiveCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// Metrics provides observability for the provider registry.
// Tracks operation counts by outcome, operation latency and cache effectiveness.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	CacheLookups      *prometheus.CounterVec
	// ProvidersActive is nil until TrackActiveProviders is called.
	ProvidersActive prometheus.GaugeFunc

	reg prometheus.Registerer
}

// New registers all provider metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_registry_operations_total",
			Help: "Registry operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "provider_registry_operation_duration_seconds",
			Help:    "Duration of registry operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_registry_cache_lookups_total",
			Help: "Read cache lookups by key kind and result",
		}, []string{"kind", "result"}),
	}
}

// TrackActiveProviders registers a gauge that asks counter for the number of
// active providers on every scrape, so the value reflects the store rather
// than this process's history. A failed count is reported as NaN.
func (m *Metrics) TrackActiveProviders(counter ActiveCounter) {
	m.ProvidersActive = promauto.With(m.reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "provider_registry_providers_active",
		Help: "Providers whose status is active, counted in the store at scrape time",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), countTimeout)
		defer cancel()
		n, err := counter.CountActive(ctx)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	})
}

// ObserveOperation records the outcome and duration of an operation.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveOperation(operation, outcome string, start time.Time) {
	m.Operations.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordCacheHit(kind string) {
	m.CacheLookups.WithLabelValues(kind, "hit").Inc()
}

func (m *Metrics) RecordCacheMiss(kind string) {
	m.CacheLookups.WithLabelValues(kind, "miss").Inc()
}
