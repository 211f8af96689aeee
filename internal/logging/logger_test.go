package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyprojectfmt/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			require.NotNil(t, logger)
			assert.Equal(t, testCase.expected, logger.GetLevel())
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "info")

	logger.Debug("hidden")
	logger.Info("formatted", logging.FieldPath, "pyproject.toml", logging.FieldChanged, true)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "pyproject-fmt")
	assert.Contains(t, out, "path=pyproject.toml")
	assert.Contains(t, out, "changed=true")
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	logging.SetDefault(logging.New("info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	assert.Same(t, newLogger, logging.Default())
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.NewWriter(&bytes.Buffer{}, "debug")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()), "falls back to the default logger")
}
