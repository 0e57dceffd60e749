package curves

import "github.com/tphakala/hxdiagram/internal/logger"

// GetLogger returns the curves logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("curves")
}
