// state.go: resolve a single moist-air state from the command line
package state

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/psychro"
)

type options struct {
	t, rh float64
	x, h  float64
}

// Command creates the state command
func Command(settings *conf.Settings) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Resolve a moist-air state from T/φ or x/h",
		Long: `Resolve a moist-air state at the configured pressure.
Give either --t and --rh, or --x and --h.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolve(cmd, &opts, settings.Diagram.PressureKPa*1000)
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), labels.New(settings.Diagram.Locale), st)
		},
	}

	cmd.Flags().Float64Var(&opts.t, "t", 0, "Dry-bulb temperature in °C")
	cmd.Flags().Float64Var(&opts.rh, "rh", 0, "Relative humidity in %")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "Moisture content in g/kg")
	cmd.Flags().Float64Var(&opts.h, "h", 0, "Specific enthalpy in kJ/kg")
	cmd.MarkFlagsRequiredTogether("t", "rh")
	cmd.MarkFlagsRequiredTogether("x", "h")
	cmd.MarkFlagsMutuallyExclusive("t", "x")
	cmd.MarkFlagsOneRequired("t", "x")

	return cmd
}

func resolve(cmd *cobra.Command, opts *options, pressurePa float64) (psychro.State, error) {
	var st psychro.State
	if cmd.Flags().Changed("t") {
		st = psychro.StateFromTRH(opts.t, psychro.Clamp(opts.rh, 0, 100), pressurePa)
	} else {
		st = psychro.StateFromXH(opts.x, opts.h, pressurePa)
	}
	if !st.Finite() {
		return st, errors.Newf("state is not computable at %.0f Pa", pressurePa).
			Component("cli").
			Category(errors.CategoryNumeric).
			Context("operation", "state").
			Build()
	}
	return st, nil
}

// Print writes a state as aligned name/value lines
func Print(w io.Writer, l *labels.Labels, st psychro.State) error {
	rows := []struct {
		name, value, unit string
	}{
		{"T", l.Number(st.T, 1), "°C"},
		{"φ", l.Number(st.RH, 1), "%"},
		{"x", l.Number(st.X, 2), "g/kg"},
		{"h", l.Number(st.H, 1), "kJ/kg"},
		{"ρ", l.Number(st.Rho, 3), "kg/m³"},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-2s %10s %s\n", r.name, r.value, r.unit); err != nil {
			return err
		}
	}
	return nil
}
