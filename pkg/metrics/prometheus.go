// Package metrics provides Prometheus metrics for podrank runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Manager owns the metrics of a single process. A nil *Manager is valid and
// records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	recordsFetched   prometheus.Gauge
	runs             *prometheus.CounterVec
	artifactsWritten prometheus.Counter
	bytesWritten     prometheus.Counter
	stageDuration    *prometheus.HistogramVec
	lastSuccessUnix  prometheus.Gauge
}

// NewManager creates a metrics manager. Without WithRegistry the metrics
// live on a private registry, so Go runtime metrics are not exported.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podrank",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsFetched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records",
		Help:      "Number of records in the last ranked batch",
	})

	m.runs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by outcome",
		},
		[]string{"source", "status"},
	)

	m.artifactsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "artifacts_written_total",
		Help:      "Total number of output files written",
	})

	m.bytesWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bytes_written_total",
		Help:      "Total number of bytes written to output files",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)

	m.lastSuccessUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run",
	})
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// SetRecords records the size of the current batch.
func (m *Manager) SetRecords(n int) {
	if m == nil {
		return
	}

	m.recordsFetched.Set(float64(n))
}

// ObserveStage records how long a stage took.
func (m *Manager) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}

	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordArtifact counts one written file of size bytes.
func (m *Manager) RecordArtifact(size int) {
	if m == nil {
		return
	}

	m.artifactsWritten.Inc()
	m.bytesWritten.Add(float64(size))
}

// RecordRun counts a finished run. Successful runs also move the last
// success timestamp to at.
func (m *Manager) RecordRun(source string, err error, at time.Time) {
	if m == nil {
		return
	}

	if err != nil {
		m.runs.WithLabelValues(source, StatusFailure).Inc()

		return
	}

	m.runs.WithLabelValues(source, StatusSuccess).Inc()
	m.lastSuccessUnix.Set(float64(at.Unix()))
}

// WriteTextfile exports every registered metric to path in the text
// exposition format, for the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	return nil
}
