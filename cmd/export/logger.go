package export

import "github.com/tphakala/hxdiagram/internal/logger"

// GetLogger returns the export command logger
func GetLogger() logger.Logger {
	return logger.Global().Module("cli.export")
}
