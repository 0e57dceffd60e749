package interaction

import "github.com/tphakala/hxdiagram/internal/logger"

// GetLogger returns the interaction logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("interaction")
}
