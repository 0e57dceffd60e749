// calc.go: one-off air handling unit calculations
package calc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/hvac"
	"github.com/tphakala/hxdiagram/internal/labels"
	"github.com/tphakala/hxdiagram/internal/psychro"
	"github.com/tphakala/hxdiagram/internal/session"
)

// Command creates the calc command with its wrg, coil and hydraulics subcommands
func Command(settings *conf.Settings) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Heat recovery, coil and hydraulic calculations",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	cmd.AddCommand(
		wrgCommand(settings, &asJSON),
		coilCommand(settings, &asJSON),
		hydraulicsCommand(settings, &asJSON),
	)
	return cmd
}

func wrgCommand(settings *conf.Settings, asJSON *bool) *cobra.Command {
	c := session.DefaultConditions
	in := hvac.HeatRecoveryInput{
		OutdoorT:      c.T,
		OutdoorRH:     c.RH,
		ExhaustT:      c.ExhaustT,
		ExhaustRH:     c.ExhaustRH,
		SupplyFlow:    c.Flow,
		ExhaustFlow:   c.ExhaustFlow,
		Effectiveness: c.Effectiveness,
	}

	cmd := &cobra.Command{
		Use:   "wrg",
		Short: "Heat recovery outlet state and duty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.PressurePa = settings.Diagram.PressureKPa * 1000
			res, err := hvac.HeatRecovery(in)
			if err != nil {
				return err
			}
			if *asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			l := labels.New(settings.Diagram.Locale)
			outlet := psychro.StateFromTW(res.TOutlet, res.W, in.PressurePa)
			return writeRows(cmd.OutOrStdout(), []row{
				{"T outdoor", l.Number(res.TOutdoor, 1), "°C"},
				{"T outlet", l.Number(res.TOutlet, 1), "°C"},
				{"φ outlet", l.Number(outlet.RH, 0), "%"},
				{"x", l.Number(res.X, 2), "g/kg"},
				{"h outdoor", l.Number(res.HOutdoor, 1), "kJ/kg"},
				{"h outlet", l.Number(res.HOutlet, 1), "kJ/kg"},
				{"ε applied", l.Number(res.Effectiveness, 0), "%"},
				{"Q", l.Number(res.DutyKW, 2), "kW"},
				{"clamped", fmt.Sprint(res.Clamped), ""},
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.OutdoorT, "t", in.OutdoorT, "Outdoor temperature in °C")
	f.Float64Var(&in.OutdoorRH, "rh", in.OutdoorRH, "Outdoor relative humidity in %")
	f.Float64Var(&in.ExhaustT, "texh", in.ExhaustT, "Exhaust temperature in °C")
	f.Float64Var(&in.ExhaustRH, "rhexh", in.ExhaustRH, "Exhaust relative humidity in %")
	f.Float64Var(&in.Effectiveness, "eta", in.Effectiveness, "Heat recovery effectiveness in %")
	f.Float64Var(&in.SupplyFlow, "flow", in.SupplyFlow, "Supply air flow in m³/h")
	f.Float64Var(&in.ExhaustFlow, "exhaust-flow", in.ExhaustFlow, "Exhaust air flow in m³/h, 0 for balanced")
	return cmd
}

func coilCommand(settings *conf.Settings, asJSON *bool) *cobra.Command {
	var (
		kind        string
		tin, rh     float64
		tout, delta float64
		flow        = session.DefaultConditions.Flow
	)

	cmd := &cobra.Command{
		Use:   "coil",
		Short: "Size a sensible heater or cooler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := settings.Diagram.PressureKPa * 1000
			target := tout
			if cmd.Flags().Changed("delta") {
				target = tin + delta
			}
			res, err := hvac.SizeCoil(hvac.CoilInput{
				Kind:       hvac.CoilKind(kind),
				InletT:     tin,
				InletW:     psychro.HumidityRatio(tin, rh, p),
				TargetT:    target,
				Flow:       flow,
				PressurePa: p,
			})
			if err != nil {
				return err
			}
			water := hvac.Hydraulics(hvac.DefaultHydraulics(hvac.LoopFor(res.Kind), res.DutyKW))
			if *asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Coil       hvac.CoilResult      `json:"coil"`
					Hydraulics hvac.HydraulicResult `json:"hydraulics"`
				}{res, water})
			}
			l := labels.New(settings.Diagram.Locale)
			return writeRows(cmd.OutOrStdout(), []row{
				{"T in", l.Number(res.TIn, 1), "°C"},
				{"T out", l.Number(res.TOut, 1), "°C"},
				{"x", l.Number(res.X, 2), "g/kg"},
				{"h in", l.Number(res.HIn, 1), "kJ/kg"},
				{"h out", l.Number(res.HOut, 1), "kJ/kg"},
				{"ρ", l.Number(res.Density, 3), "kg/m³"},
				{"ṁ", l.Number(res.MassFlow, 3), "kg/s"},
				{"Q", l.Number(res.DutyKW, 2), "kW"},
				{"ṁ water", l.Number(water.MassFlowKgH, 0), "kg/h"},
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", string(hvac.Heater), "Coil kind, heater or cooler")
	f.Float64Var(&tin, "tin", 0, "Inlet temperature in °C")
	f.Float64Var(&rh, "rh", 50, "Inlet relative humidity in %")
	f.Float64Var(&tout, "tout", 0, "Outlet temperature in °C")
	f.Float64Var(&delta, "delta", 0, "Temperature change in K instead of --tout")
	f.Float64Var(&flow, "flow", flow, "Air flow in m³/h")
	cmd.MarkFlagsMutuallyExclusive("tout", "delta")
	cmd.MarkFlagsOneRequired("tout", "delta")
	return cmd
}

func hydraulicsCommand(settings *conf.Settings, asJSON *bool) *cobra.Command {
	cfg := hvac.DefaultHydraulics(hvac.HeatingLoop, 0)

	cmd := &cobra.Command{
		Use:   "hydraulics",
		Short: "Water mass flow for a coil duty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := hvac.Hydraulics(cfg)
			if *asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			l := labels.New(settings.Diagram.Locale)
			return writeRows(cmd.OutOrStdout(), []row{
				{"ΔT", l.Number(res.DeltaT, 1), "K"},
				{"ṁ", l.Number(res.MassFlowKgS, 3), "kg/s"},
				{"ṁ", l.Number(res.MassFlowKgH, 0), "kg/h"},
				{"gauge", l.Number(res.FlowFraction*100, 0), "%"},
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&cfg.DutyKW, "q", 0, "Coil duty in kW")
	f.Float64Var(&cfg.SupplyT, "ts", cfg.SupplyT, "Supply water temperature in °C")
	f.Float64Var(&cfg.ReturnT, "tr", cfg.ReturnT, "Return water temperature in °C")
	_ = cmd.MarkFlagRequired("q")
	return cmd
}

type row struct {
	name, value, unit string
}

func writeRows(w io.Writer, rows []row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-10s %10s %s\n", r.name, r.value, r.unit); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
