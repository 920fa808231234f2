// Package metrics holds the Prometheus collectors for the API server and the
// importer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "padres"

// Manager owns every collector. A nil *Manager records nothing.
type Manager struct {
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	aggregationDuration *prometheus.HistogramVec
	aggregationFailures *prometheus.CounterVec

	importedRows *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Manager {
	auto := promauto.With(reg)
	return &Manager{
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),

		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),

		aggregationDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent computing a statistic, store reads excluded.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation"}),

		aggregationFailures: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "aggregation_failures_total",
			Help:      "Aggregations that ended in a computation error.",
		}, []string{"operation"}),

		importedRows: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Rows written by the CSV importer by table.",
		}, []string{"table"}),
	}
}

// NewRegistry returns a registry carrying the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ObserveRequest records one served HTTP request.
func (m *Manager) ObserveRequest(route, method, statusCode string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// ObserveAggregation records how long op took and whether it failed.
func (m *Manager) ObserveAggregation(op string, d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.aggregationDuration.WithLabelValues(op).Observe(d.Seconds())
	if failed {
		m.aggregationFailures.WithLabelValues(op).Inc()
	}
}

// AddImported counts rows written to table.
func (m *Manager) AddImported(table string, n int) {
	if m == nil {
		return
	}
	m.importedRows.WithLabelValues(table).Add(float64(n))
}
