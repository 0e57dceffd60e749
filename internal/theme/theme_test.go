package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/hxdiagram/internal/curves"
	"github.com/tphakala/hxdiagram/internal/session"
)

func TestProcessDash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{8, 4}, ProcessDash(session.Cooler))
	assert.Equal(t, []float64{3, 3}, ProcessDash(session.WRG))
	assert.Nil(t, ProcessDash(session.Heater))
	assert.Nil(t, ProcessDash(session.Adiabatic))
}

func TestCurveStyle(t *testing.T) {
	t.Parallel()

	c, w := CurveStyle(curves.KindSaturation)
	assert.Equal(t, Saturation, c)
	assert.InDelta(t, 2.0, w, 0)

	c, _ = CurveStyle(curves.KindRH)
	assert.Equal(t, RHCurve, c)
}

func TestCaseColor(t *testing.T) {
	t.Parallel()

	s := session.DefaultSession()
	assert.Equal(t, "#16a34a", CaseColor(s, "winter"))
	assert.Equal(t, FallbackCase, CaseColor(s, "nope"))
}
