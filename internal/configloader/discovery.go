package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used below the system and user config roots.
const appName = "pyproject-fmt"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/pyproject-fmt/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/pyproject-fmt/config.yaml).
	User string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// DiscoverPaths finds configuration files in standard locations:
//   - System config at /etc/pyproject-fmt/config.{yaml,yml}
//   - User config at $XDG_CONFIG_HOME/pyproject-fmt/config.{yaml,yml}
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	return &ConfigPaths{
		System: findConfigInDir(SystemConfigDir()),
		User:   findConfigInDir(UserConfigDir()),
	}, nil
}

// SystemConfigDir returns the directory searched for the system config.
func SystemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

// UserConfigDir returns the directory searched for the user config, or ""
// when no home directory is known.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// findConfigInDir looks for config files in the given directory.
// Returns the path to the first found file, or empty string if none.
func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
