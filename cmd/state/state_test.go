package state

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := Command(conf.Defaults())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStateFromTemperatureAndHumidity(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--t", "20", "--rh", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "20.0 °C")
	assert.Contains(t, out, "50.0 %")
	assert.Contains(t, out, "g/kg")
}

func TestStateFromDiagramCoordinates(t *testing.T) {
	t.Parallel()

	// Dry air: h = 1.006·T
	out, err := execute(t, "--x", "0", "--h", "20.12")
	require.NoError(t, err)
	assert.Contains(t, out, "20.0 °C")
	assert.Contains(t, out, "0.00 g/kg")
}

func TestStateFlagErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no flags", nil},
		{"t without rh", []string{"--t", "20"}},
		{"both pairs", []string{"--t", "20", "--rh", "50", "--x", "5", "--h", "30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestPrintGerman(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	st := psychro.StateFromTRH(20.5, 50, 101325)
	require.NoError(t, Print(&buf, labels.New("de"), st))
	assert.Contains(t, buf.String(), "20,5 °C")
}
