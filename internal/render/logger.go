package render

import "github.com/tphakala/hxdiagram/internal/logger"

// GetLogger returns the render logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("render")
}
