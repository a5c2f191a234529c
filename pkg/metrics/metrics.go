package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the prometheus instruments for ledger operations.
type Collector struct {
	registry       *prometheus.Registry
	committed      *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	commitDuration prometheus.Histogram
	movedTotal     *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		committed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_committed_total",
			Help: "Committed ledger entries by kind",
		}, []string{"kind"}),
		rejected: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_rejected_total",
			Help: "Rejected operations by error code",
		}, []string{"kind", "code"}),
		commitDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_commit_duration_seconds",
			Help:    "Time taken to commit a ledger operation",
			Buckets: prometheus.DefBuckets,
		}),
		movedTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_amount_moved_total",
			Help: "Sum of amounts moved, in minor units, by kind",
		}, []string{"kind"}),
	}
}

// ObserveCommit records a successful operation.
func (c *Collector) ObserveCommit(kind string, amount int64, duration time.Duration) {
	c.committed.WithLabelValues(kind).Inc()
	c.movedTotal.WithLabelValues(kind).Add(float64(amount))
	c.commitDuration.Observe(duration.Seconds())
}

// ObserveRejection records a rejected operation with its error code.
func (c *Collector) ObserveRejection(kind string, code string) {
	c.rejected.WithLabelValues(kind, code).Inc()
}

// Handler exposes the registry for the /metrics route.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
