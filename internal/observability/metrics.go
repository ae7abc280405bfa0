package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "signal_collector"

// Metrics holds the Prometheus collectors for the collection service.
type Metrics struct {
	// Per-run metrics, labeled by collector name.
	CollectorRuns     *prometheus.CounterVec   // labels: collector, outcome={success,skipped,failed}
	CollectorDuration *prometheus.HistogramVec // labels: collector
	LastSuccess       *prometheus.GaugeVec     // labels: collector

	// Per-item metrics inside a batch.
	ItemsPersisted *prometheus.CounterVec // labels: collector
	ItemErrors     *prometheus.CounterVec // labels: collector

	TriggersActive prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CollectorRuns,
		m.CollectorDuration,
		m.LastSuccess,
		m.ItemsPersisted,
		m.ItemErrors,
		m.TriggersActive,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CollectorRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Collector invocations by outcome.",
		}, []string{"collector", "outcome"}),
		CollectorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of one collector run, fetch through persistence.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"collector"}),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the collector's most recent successful run.",
		}, []string{"collector"}),
		ItemsPersisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_persisted_total",
			Help:      "Records written to the store.",
		}, []string{"collector"}),
		ItemErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_errors_total",
			Help:      "Records dropped from a batch after an enrichment or persistence error.",
		}, []string{"collector"}),
		TriggersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "triggers_active",
			Help:      "Number of recurring triggers currently installed.",
		}),
	}
}
