package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/observability/metrics"
)

func TestMetrics_WriteText(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.Diagram.RecordOperation(metrics.OpAddPoint, metrics.StatusSuccess)
	m.Diagram.RecordCurveCacheMiss()

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE hxdiagram_operations_total counter")
	assert.Contains(t, out, `hxdiagram_operations_total{operation="add_point",status="success"} 1`)
	assert.Contains(t, out, "hxdiagram_curve_cache_misses_total 1")
}

func TestMetrics_CounterValue(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.Diagram.RecordOperation(metrics.OpAddPoint, metrics.StatusSuccess)
	m.Diagram.RecordOperation(metrics.OpAddCase, metrics.StatusSuccess)

	assert.InDelta(t, 2, m.CounterValue("hxdiagram_operations_total"), 1e-9)
	assert.Zero(t, m.CounterValue("does_not_exist"))
}

func TestMetrics_CountErrors(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	restore := m.CountErrors()
	defer restore()

	_ = errors.ValidationError("flow must be positive")

	assert.InDelta(t, 1, m.CounterValue("hxdiagram_errors_total"), 1e-9)
}
