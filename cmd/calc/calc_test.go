package calc

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/hvac"
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

func TestWinterHeatRecovery(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "wrg", "--t", "-13", "--rh", "90", "--texh", "22", "--eta", "70", "--flow", "2000")
	require.NoError(t, err)
	assert.Regexp(t, `T outlet\s+11\.5 °C`, out)
	assert.Contains(t, out, "clamped")
}

func TestHeatRecoveryJSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "wrg", "--json", "--t", "-13", "--rh", "90", "--texh", "22", "--eta", "70")
	require.NoError(t, err)

	var res hvac.HeatRecoveryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 11.5, res.TOutlet, 0.01)
	assert.InDelta(t, 70.0, res.Effectiveness, 1e-9)
	assert.Positive(t, res.DutyKW)
}

func TestHeatRecoveryRejectsZeroFlow(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "wrg", "--flow", "0")
	assert.Error(t, err)
}

func TestCoil(t *testing.T) {
	t.Parallel()

	t.Run("heater to outlet", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "coil", "--kind", "heater", "--tin", "11.5", "--tout", "20", "--flow", "2000")
		require.NoError(t, err)
		assert.Regexp(t, `T out\s+20\.0 °C`, out)
		assert.Contains(t, out, "kg/h")
	})

	t.Run("cooler by delta", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "coil", "--json", "--kind", "cooler", "--tin", "35", "--rh", "40", "--delta", "-10")
		require.NoError(t, err)

		var res struct {
			Coil       hvac.CoilResult      `json:"coil"`
			Hydraulics hvac.HydraulicResult `json:"hydraulics"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.InDelta(t, 25.0, res.Coil.TOut, 1e-9)
		assert.Negative(t, res.Coil.DutyKW)
		assert.InDelta(t, hvac.CoolingSupplyT-hvac.CoolingReturnT, res.Hydraulics.DeltaT, 1e-9)
	})

	t.Run("heater below inlet", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "coil", "--kind", "heater", "--tin", "20", "--tout", "10")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be above")
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "coil", "--kind", "boiler", "--tin", "20", "--tout", "30")
		assert.Error(t, err)
	})

	t.Run("target required", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "coil", "--tin", "20")
		assert.Error(t, err)
	})
}

func TestHydraulics(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "hydraulics", "--json", "--q", "100", "--ts", "70", "--tr", "50")
	require.NoError(t, err)

	var res hvac.HydraulicResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 20.0, res.DeltaT, 1e-9)
	assert.InDelta(t, 100/(hvac.WaterSpecificHeat*20), res.MassFlowKgS, 1e-9)

	_, err = execute(t, "hydraulics")
	assert.Error(t, err, "--q is required")
}
