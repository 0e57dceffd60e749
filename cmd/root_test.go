package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability"
)

func run(t *testing.T, settings *conf.Settings, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { logger.SetGlobal(nil) })

	m, err := observability.NewMetrics()
	require.NoError(t, err)

	root := RootCommand(settings, m)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	m, err := observability.NewMetrics()
	require.NoError(t, err)
	root := RootCommand(conf.Defaults(), m)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"state", "calc", "export", "render", "replay"} {
		assert.Contains(t, names, want)
	}
}

func TestRootPressureFlag(t *testing.T) {
	settings := conf.Defaults()
	_, err := run(t, settings, "--pressure", "90", "state", "--t", "20", "--rh", "50")
	require.NoError(t, err)
	assert.InDelta(t, 90.0, settings.Diagram.PressureKPa, 1e-9)
}

func TestRootRejectsInvalidSettings(t *testing.T) {
	_, err := run(t, conf.Defaults(), "--locale", "!!", "state", "--t", "20", "--rh", "50")
	require.Error(t, err)
}

func TestRootMetricsDump(t *testing.T) {
	out, err := run(t, conf.Defaults(), "--metrics", "calc", "hydraulics", "--q", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "hxdiagram_session_cases")
}

func TestRootDebugRaisesLogLevel(t *testing.T) {
	settings := conf.Defaults()
	_, err := run(t, settings, "--debug", "state", "--x", "5", "--h", "30")
	require.NoError(t, err)
	assert.Equal(t, string(logger.LogLevelDebug), settings.Logging.DefaultLevel)
}
