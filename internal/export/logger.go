package export

import "github.com/tphakala/hxdiagram/internal/logger"

// GetLogger returns the export logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("export")
}
