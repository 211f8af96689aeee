package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "max_supported_python").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file or document containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.ColumnWidth < 1 {
		fail("column_width", cfg.ColumnWidth, "column width must be >= 1")
	}
	if cfg.Indent < 0 {
		fail("indent", cfg.Indent, "indent must be >= 0")
	}
	if cfg.Jobs < 0 {
		fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		fail("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	versions := []struct {
		field   string
		version config.PythonVersion
	}{
		{field: "max_supported_python", version: cfg.MaxSupportedPython},
		{field: "min_supported_python", version: cfg.MinSupportedPython},
	}
	for _, v := range versions {
		if v.version.Major != 3 {
			fail(v.field, v.version, "unsupported python version %s; only 3.x is supported", v.version)
		}
	}

	if cfg.MinSupportedPython.Major == cfg.MaxSupportedPython.Major &&
		cfg.MinSupportedPython.Minor > cfg.MaxSupportedPython.Minor {
		result.Warnings = append(result.Warnings, ValidationError{
			Field: "min_supported_python",
			Value: cfg.MinSupportedPython,
			Message: fmt.Sprintf("min_supported_python %s is newer than max_supported_python %s; "+
				"no minor version classifiers are synthesized unless requires-python bounds them", cfg.MinSupportedPython, cfg.MaxSupportedPython),
		})
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
