// Package metrics exposes Prometheus instrumentation for file operations,
// tag mutations and store health. A nil *Metrics is valid and records
// nothing, so callers never have to branch on whether metrics are enabled.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for operation counters.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the registry and the collectors the service records into.
type Metrics struct {
	registry *prometheus.Registry

	fileOperations    *prometheus.CounterVec
	fileOpDuration    *prometheus.HistogramVec
	tagOperations     *prometheus.CounterVec
	storeHealth       prometheus.Gauge
	trackedFiles      prometheus.Gauge
	reconciledRemoved prometheus.Counter
}

// New builds a Metrics instance with its own registry, pre-populated with
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry: reg,
		fileOperations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagfiler_file_operations_total",
				Help: "Total number of file operations by type and outcome",
			},
			[]string{"operation", "status"},
		),
		fileOpDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tagfiler_file_operation_duration_seconds",
				Help:    "Duration of file operation batches in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
			},
			[]string{"operation"},
		),
		tagOperations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagfiler_tag_operations_total",
				Help: "Total number of tag mutations by type and outcome",
			},
			[]string{"operation", "status"},
		),
		storeHealth: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "tagfiler_store_health",
				Help: "Metadata store reachability (1 healthy, 0 unhealthy)",
			},
		),
		trackedFiles: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "tagfiler_tracked_files",
				Help: "Number of live file records in the metadata store",
			},
		),
		reconciledRemoved: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "tagfiler_reconciled_removed_total",
				Help: "File records soft-deleted by reconciliation runs",
			},
		),
	}
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveFileOperation records one file operation batch with its outcome
// and duration.
func (m *Metrics) ObserveFileOperation(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.fileOperations.WithLabelValues(operation, status).Inc()
	m.fileOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveTagOperation records one tag mutation with its outcome.
func (m *Metrics) ObserveTagOperation(operation, status string) {
	if m == nil {
		return
	}
	m.tagOperations.WithLabelValues(operation, status).Inc()
}

// SetStoreHealth reflects the latest store healthcheck result.
func (m *Metrics) SetStoreHealth(healthy bool) {
	if m == nil {
		return
	}
	if healthy {
		m.storeHealth.Set(1)
	} else {
		m.storeHealth.Set(0)
	}
}

// SetTrackedFiles reports the current number of live file records.
func (m *Metrics) SetTrackedFiles(n int) {
	if m == nil {
		return
	}
	m.trackedFiles.Set(float64(n))
}

// AddReconciledRemoved counts records soft-deleted by a reconcile run.
func (m *Metrics) AddReconciledRemoved(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reconciledRemoved.Add(float64(n))
}
