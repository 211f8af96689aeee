// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// defaultLogger is the package-level default logger instance.
//
//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New("warn")
		}
	})
	return defaultLogger
}

// New creates a stderr logger with the specified level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a logger writing to w. Debug loggers report timestamps
// so per-file timings can be followed.
func NewWriter(w io.Writer, level string) *log.Logger {
	lvl := ParseLevel(level)
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: lvl == log.DebugLevel,
		Prefix:          "pyproject-fmt",
	})
	logger.SetLevel(lvl)
	return logger
}

// ParseLevel maps a level name to a log level; unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	getDefaultLogger()
	defaultLogger = logger
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	getDefaultLogger().SetLevel(ParseLevel(level))
}
