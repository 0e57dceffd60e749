// Package metrics provides diagram engine metrics for observability
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DiagramMetrics contains Prometheus metrics for the diagram engine.
// All Record methods are safe on a nil receiver so components can run
// without metrics.
type DiagramMetrics struct {
	registry *prometheus.Registry

	// Session mutation metrics
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	historyTotal      *prometheus.CounterVec

	// Curve cache metrics
	curveCacheHits   prometheus.Counter
	curveCacheMisses prometheus.Counter
	curveCacheSize   prometheus.Gauge

	// Paint metrics
	framesTotal      *prometheus.CounterVec
	renderErrors     *prometheus.CounterVec
	paintDurationSec prometheus.Histogram

	// Export metrics
	exportsTotal *prometheus.CounterVec

	// Session size gauges
	casesGauge     prometheus.Gauge
	pointsGauge    prometheus.Gauge
	processesGauge prometheus.Gauge
}

// NewDiagramMetrics creates and registers new diagram metrics
func NewDiagramMetrics(registry *prometheus.Registry) (*DiagramMetrics, error) {
	m := &DiagramMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DiagramMetrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hxdiagram_operations_total",
			Help: "Total number of session operations",
		},
		[]string{"operation", "status"}, // status: success, rejected, error
	)

	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hxdiagram_operation_duration_seconds",
			Help:    "Time taken by session operations",
			Buckets: prometheus.ExponentialBuckets(BucketStart100us, BucketFactor2, BucketCount12),
		},
		[]string{"operation"},
	)

	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hxdiagram_errors_total",
			Help: "Total number of errors by operation and category",
		},
		[]string{"operation", "category"},
	)

	m.historyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hxdiagram_history_actions_total",
			Help: "Total number of undo and redo requests",
		},
		[]string{"action"}, // undo, redo, noop
	)

	m.curveCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hxdiagram_curve_cache_hits_total",
		Help: "Total number of curve set cache hits",
	})

	m.curveCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hxdiagram_curve_cache_misses_total",
		Help: "Total number of curve set cache misses",
	})

	m.curveCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hxdiagram_curve_cache_size",
		Help: "Current number of cached curve sets",
	})

	m.framesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hxdiagram_frames_total",
			Help: "Total number of painted frames",
		},
		[]string{"kind"}, // event, animation, resize
	)

	m.renderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hxdiagram_render_errors_total",
			Help: "Total number of aborted paint passes",
		},
		[]string{"reason"},
	)

	m.paintDurationSec = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hxdiagram_paint_duration_seconds",
		Help:    "Time taken by a full paint pass",
		Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount10),
	})

	m.exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hxdiagram_exports_total",
			Help: "Total number of exported documents",
		},
		[]string{"format", "status"},
	)

	m.casesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hxdiagram_session_cases",
		Help: "Number of cases in the session",
	})
	m.pointsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hxdiagram_session_points",
		Help: "Number of points in the session",
	})
	m.processesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hxdiagram_session_processes",
		Help: "Number of processes in the session",
	})
}

// Describe implements the Collector interface
func (m *DiagramMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.operationsTotal.Describe(ch)
	m.operationDuration.Describe(ch)
	m.errorsTotal.Describe(ch)
	m.historyTotal.Describe(ch)
	m.curveCacheHits.Describe(ch)
	m.curveCacheMisses.Describe(ch)
	m.curveCacheSize.Describe(ch)
	m.framesTotal.Describe(ch)
	m.renderErrors.Describe(ch)
	m.paintDurationSec.Describe(ch)
	m.exportsTotal.Describe(ch)
	m.casesGauge.Describe(ch)
	m.pointsGauge.Describe(ch)
	m.processesGauge.Describe(ch)
}

// Collect implements the Collector interface
func (m *DiagramMetrics) Collect(ch chan<- prometheus.Metric) {
	m.operationsTotal.Collect(ch)
	m.operationDuration.Collect(ch)
	m.errorsTotal.Collect(ch)
	m.historyTotal.Collect(ch)
	m.curveCacheHits.Collect(ch)
	m.curveCacheMisses.Collect(ch)
	m.curveCacheSize.Collect(ch)
	m.framesTotal.Collect(ch)
	m.renderErrors.Collect(ch)
	m.paintDurationSec.Collect(ch)
	m.exportsTotal.Collect(ch)
	m.casesGauge.Collect(ch)
	m.pointsGauge.Collect(ch)
	m.processesGauge.Collect(ch)
}

// RecordOperation records a session operation
func (m *DiagramMetrics) RecordOperation(operation, status string) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordDuration records the duration of an operation
func (m *DiagramMetrics) RecordDuration(operation string, seconds float64) {
	if m == nil {
		return
	}
	if operation == OpPaint {
		m.paintDurationSec.Observe(seconds)
		return
	}
	m.operationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError records an error by operation and category
func (m *DiagramMetrics) RecordError(operation, category string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(operation, category).Inc()
}

// RecordHistory records an undo/redo request
func (m *DiagramMetrics) RecordHistory(action string) {
	if m == nil {
		return
	}
	m.historyTotal.WithLabelValues(action).Inc()
}

// RecordCurveCacheHit records a curve cache hit
func (m *DiagramMetrics) RecordCurveCacheHit() {
	if m == nil {
		return
	}
	m.curveCacheHits.Inc()
}

// RecordCurveCacheMiss records a curve cache miss
func (m *DiagramMetrics) RecordCurveCacheMiss() {
	if m == nil {
		return
	}
	m.curveCacheMisses.Inc()
}

// UpdateCurveCacheSize updates the curve cache size gauge
func (m *DiagramMetrics) UpdateCurveCacheSize(size int) {
	if m == nil {
		return
	}
	m.curveCacheSize.Set(float64(size))
}

// RecordFrame records a painted frame
func (m *DiagramMetrics) RecordFrame(kind string) {
	if m == nil {
		return
	}
	m.framesTotal.WithLabelValues(kind).Inc()
}

// RecordRenderError records an aborted paint pass
func (m *DiagramMetrics) RecordRenderError(reason string) {
	if m == nil {
		return
	}
	m.renderErrors.WithLabelValues(reason).Inc()
}

// RecordExport records an exported document
func (m *DiagramMetrics) RecordExport(format, status string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(format, status).Inc()
}

// UpdateSessionSize updates the session size gauges
func (m *DiagramMetrics) UpdateSessionSize(cases, points, processes int) {
	if m == nil {
		return
	}
	m.casesGauge.Set(float64(cases))
	m.pointsGauge.Set(float64(points))
	m.processesGauge.Set(float64(processes))
}

var _ Recorder = (*DiagramMetrics)(nil)
