package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *DiagramMetrics {
	t.Helper()
	m, err := NewDiagramMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestNewDiagramMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	_, err := NewDiagramMetrics(registry)
	require.NoError(t, err)

	_, err = NewDiagramMetrics(registry)
	assert.Error(t, err, "registering twice on one registry must fail")
}

func TestDiagramMetrics_RecordOperation(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	m.RecordOperation(OpAddPoint, StatusSuccess)
	m.RecordOperation(OpAddPoint, StatusSuccess)
	m.RecordOperation(OpCoil, StatusRejected)

	assert.InDelta(t, 2, testutil.ToFloat64(m.operationsTotal.WithLabelValues(OpAddPoint, StatusSuccess)), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.operationsTotal.WithLabelValues(OpCoil, StatusRejected)), 1e-9)
}

func TestDiagramMetrics_CurveCache(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	m.RecordCurveCacheMiss()
	m.RecordCurveCacheHit()
	m.RecordCurveCacheHit()
	m.UpdateCurveCacheSize(3)

	assert.InDelta(t, 2, testutil.ToFloat64(m.curveCacheHits), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.curveCacheMisses), 1e-9)
	assert.InDelta(t, 3, testutil.ToFloat64(m.curveCacheSize), 1e-9)
}

func TestDiagramMetrics_Durations(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	m.RecordDuration(OpPaint, 0.004)
	m.RecordDuration(OpHeatRecovery, 0.0002)

	assert.Equal(t, 1, testutil.CollectAndCount(m.paintDurationSec))
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
}

func TestDiagramMetrics_SessionGauges(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	m.UpdateSessionSize(3, 7, 2)

	assert.InDelta(t, 3, testutil.ToFloat64(m.casesGauge), 1e-9)
	assert.InDelta(t, 7, testutil.ToFloat64(m.pointsGauge), 1e-9)
	assert.InDelta(t, 2, testutil.ToFloat64(m.processesGauge), 1e-9)
}

func TestDiagramMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *DiagramMetrics
	assert.NotPanics(t, func() {
		m.RecordOperation(OpAddCase, StatusSuccess)
		m.RecordDuration(OpPaint, 1)
		m.RecordError(OpPaint, "render")
		m.RecordHistory(ActionUndo)
		m.RecordCurveCacheHit()
		m.RecordCurveCacheMiss()
		m.UpdateCurveCacheSize(1)
		m.RecordFrame(FrameEvent)
		m.RecordRenderError("non_finite")
		m.RecordExport("svg", StatusSuccess)
		m.UpdateSessionSize(1, 1, 1)
	})
}

func TestDiagramMetrics_FramesAndExports(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	m.RecordFrame(FrameAnimation)
	m.RecordFrame(FrameAnimation)
	m.RecordFrame(FrameResize)
	m.RecordRenderError("non_finite")
	m.RecordExport("svg", StatusSuccess)
	m.RecordHistory(ActionNoop)

	assert.InDelta(t, 2, testutil.ToFloat64(m.framesTotal.WithLabelValues(FrameAnimation)), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.framesTotal.WithLabelValues(FrameResize)), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.renderErrors.WithLabelValues("non_finite")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.exportsTotal.WithLabelValues("svg", StatusSuccess)), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.historyTotal.WithLabelValues(ActionNoop)), 1e-9)
}
