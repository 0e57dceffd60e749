// utils.go: config path helpers
package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tphakala/hxdiagram/internal/errors"
)

const osWindows = "windows"

// GetDefaultConfigPaths returns the directories searched for config.yaml,
// in priority order.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case osWindows:
		return []string{
			".",
			filepath.Join(homeDir, "AppData", "Roaming", "hxdiagram"),
		}, nil
	default:
		return []string{
			".",
			filepath.Join(homeDir, ".config", "hxdiagram"),
			"/etc/hxdiagram",
		}, nil
	}
}
