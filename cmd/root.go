package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tphakala/hxdiagram/cmd/calc"
	"github.com/tphakala/hxdiagram/cmd/export"
	"github.com/tphakala/hxdiagram/cmd/render"
	"github.com/tphakala/hxdiagram/cmd/replay"
	"github.com/tphakala/hxdiagram/cmd/state"
	"github.com/tphakala/hxdiagram/internal/buildinfo"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings, metrics *observability.Metrics) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hxdiagram",
		Short:         "Psychrometric h-x process diagram tool",
		Version:       buildinfo.Current().String(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		panic(err)
	}

	subcommands := []*cobra.Command{
		state.Command(settings),
		calc.Command(settings),
		export.Command(settings, metrics.Diagram),
		render.Command(settings, metrics.Diagram),
		replay.Command(settings, metrics.Diagram),
	}
	rootCmd.AddCommand(subcommands...)

	var stopHooks func()
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := conf.ValidateSettings(settings); err != nil {
			return err
		}
		if err := initialize(settings); err != nil {
			return err
		}
		if settings.Metrics {
			stopHooks = metrics.CountErrors()
		}
		return nil
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if stopHooks != nil {
			stopHooks()
		}
		if !settings.Metrics {
			return nil
		}
		return metrics.WriteText(cmd.OutOrStdout())
	}

	return rootCmd
}

// initialize sets up logging once the flags are parsed
func initialize(settings *conf.Settings) error {
	if settings.Debug {
		settings.Logging.DefaultLevel = string(logger.LogLevelDebug)
		if settings.Logging.Console != nil {
			settings.Logging.Console.Level = string(logger.LogLevelDebug)
		}
	}

	central, err := logger.NewCentralLogger(&settings.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.SetGlobal(central)
	return nil
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (read before flags are parsed)")
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().Float64Var(&settings.Diagram.PressureKPa, "pressure", settings.Diagram.PressureKPa, "Ambient pressure in kPa (30-120)")
	rootCmd.PersistentFlags().StringVar(&settings.Diagram.Locale, "locale", settings.Diagram.Locale, "Label language, en or de")
	rootCmd.PersistentFlags().BoolVar(&settings.Metrics, "metrics", settings.Metrics, "Print collected metrics after the command")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
