// config.go: application settings for hxdiagram
package conf

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/tphakala/hxdiagram/internal/errors"
	"github.com/tphakala/hxdiagram/internal/logger"
)

// Label modes for point markers
const (
	LabelModeIndex    = "index"    // P1, P2, ...
	LabelModeSemantic = "semantic" // OA, WRG, ZU where known
)

// Export formats
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatHTML = "html"
)

// EnvPrefix is the prefix for environment variable overrides, e.g. HXDIAGRAM_DIAGRAM_PRESSUREKPA
const EnvPrefix = "HXDIAGRAM"

// DiagramSettings holds the user-entered diagram bounds and display toggles.
// The enthalpy range is derived, never configured.
type DiagramSettings struct {
	PressureKPa float64 // ambient pressure in kPa
	TMin        float64 // lowest isotherm in °C
	TMax        float64 // highest isotherm in °C
	XMax        float64 // moisture content axis maximum in g/kg
	Isotherms   bool    // draw isotherms
	RHCurves    bool    // draw constant relative humidity curves
	Saturation  bool    // draw the saturation curve
	LabelMode   string  // index or semantic
	Locale      string  // language tag for labels, e.g. "en" or "de"
}

// RenderSettings holds the live drawing surface size
type RenderSettings struct {
	Width  int     // logical width in px
	Height int     // logical height in px
	DPR    float64 // device pixel ratio
}

// ExportSettings controls vector export
type ExportSettings struct {
	Format      string // svg, json or html
	OutputDir   string // directory for exported documents
	Parallelism int    // concurrent scenario exports
}

// HistorySettings controls undo/redo depth
type HistorySettings struct {
	Depth int // maximum undo snapshots kept
}

// Settings contains all configuration options for hxdiagram
type Settings struct {
	Debug   bool // true to enable debug output
	Metrics bool // true to print collected metrics after a command

	Diagram DiagramSettings
	Render  RenderSettings
	Export  ExportSettings
	History HistorySettings

	Logging logger.LoggingConfig
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads configuration from configFile, or from config.yaml in the default
// paths when configFile is empty. A missing default config file is not an error.
func Load(configFile string) (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(configFile); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "unmarshal-config").
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper sets defaults, environment overrides and reads the config file
func initViper(configFile string) error {
	setDefaultConfig()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errors.New(err).
				Category(errors.CategoryConfiguration).
				Context("config_file", configFile).
				Build()
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Defaults are complete, running without a file is fine
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetSettings returns the settings loaded by the last successful Load
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Defaults returns settings populated only from built-in defaults.
// Useful for tests and for library use without a config file.
func Defaults() *Settings {
	v := viper.New()
	applyDefaults(v)
	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		// Defaults are static; a failure here is a programming error
		panic(fmt.Sprintf("conf: invalid built-in defaults: %v", err))
	}
	return settings
}
