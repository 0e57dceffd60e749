// defaults.go: default values for the configuration parameters
package conf

import (
	"github.com/spf13/viper"
	"github.com/tphakala/hxdiagram/internal/logger"
)

// setDefaultConfig sets default values on the global viper instance
func setDefaultConfig() {
	applyDefaults(viper.GetViper())
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("metrics", false)

	v.SetDefault("diagram.pressurekpa", 100.0)
	v.SetDefault("diagram.tmin", -20.0)
	v.SetDefault("diagram.tmax", 40.0)
	v.SetDefault("diagram.xmax", 30.0)
	v.SetDefault("diagram.isotherms", true)
	v.SetDefault("diagram.rhcurves", true)
	v.SetDefault("diagram.saturation", true)
	v.SetDefault("diagram.labelmode", LabelModeSemantic)
	v.SetDefault("diagram.locale", "en")

	v.SetDefault("render.width", 1200)
	v.SetDefault("render.height", 800)
	v.SetDefault("render.dpr", 1.0)

	v.SetDefault("export.format", FormatSVG)
	v.SetDefault("export.outputdir", ".")
	v.SetDefault("export.parallelism", 4)

	v.SetDefault("history.depth", 200)

	v.SetDefault("logging.default_level", logger.DefaultLogLevel)
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.console.enabled", logger.DefaultConsoleEnabled)
	v.SetDefault("logging.console.level", logger.DefaultLogLevel)
	v.SetDefault("logging.console.stderr", true)
	v.SetDefault("logging.file_output.enabled", logger.DefaultFileEnabled)
	v.SetDefault("logging.file_output.path", logger.DefaultLogPath)
	v.SetDefault("logging.file_output.level", logger.DefaultLogLevel)
}
