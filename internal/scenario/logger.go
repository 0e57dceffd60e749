package scenario

import "github.com/tphakala/hxdiagram/internal/logger"

// GetLogger returns the scenario logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("scenario")
}
