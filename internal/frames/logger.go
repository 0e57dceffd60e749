package frames

import "github.com/tphakala/hxdiagram/internal/logger"

// GetLogger returns the frames logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("frames")
}
