package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tphakala/hxdiagram/cmd"
	"github.com/tphakala/hxdiagram/internal/conf"
	"github.com/tphakala/hxdiagram/internal/logger"
	"github.com/tphakala/hxdiagram/internal/observability"
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	// Load the configuration before flags are parsed so flag defaults
	// reflect the config file and environment
	settings, err := conf.Load(configFlag(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing metrics: %v\n", err)
		return 1
	}

	rootCmd := cmd.RootCommand(settings, metrics)
	defer flushLogs()

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// configFlag returns the value of --config from raw arguments
func configFlag(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return ""
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

func flushLogs() {
	central := logger.Global()
	_ = central.Flush()
	_ = central.Close()
}
