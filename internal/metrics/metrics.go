package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dashboard service.
type Metrics struct {
	InvoiceMutations *prometheus.CounterVec
	QueryDuration    *prometheus.HistogramVec
	CacheHits        *prometheus.CounterVec
}

// New creates and registers metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics on the given registerer; tests pass a fresh
// prometheus.NewRegistry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		InvoiceMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_invoice_mutations_total",
			Help: "Invoice create/update/delete operations by outcome",
		}, []string{"op", "outcome"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_query_duration_seconds",
			Help:    "Duration of dashboard read queries",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_view_cache_requests_total",
			Help: "View cache lookups by result (hit or miss)",
		}, []string{"result"}),
	}
}

// MutationSuccess records a successful mutation of the given kind.
func (m *Metrics) MutationSuccess(op string) {
	m.InvoiceMutations.WithLabelValues(op, "success").Inc()
}

// MutationFailure records a failed mutation of the given kind.
func (m *Metrics) MutationFailure(op string) {
	m.InvoiceMutations.WithLabelValues(op, "failure").Inc()
}
