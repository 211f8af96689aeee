package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

// envVarPrefix is the prefix for all pyproject-fmt environment variables.
const envVarPrefix = "PYPROJECT_FMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeVersion
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"COLUMN_WIDTH":         {field: "column_width", typ: envTypeInt, description: "Line width before arrays are expanded"},
	"INDENT":               {field: "indent", typ: envTypeInt, description: "Spaces per indentation level"},
	"KEEP_FULL_VERSION":    {field: "keep_full_version", typ: envTypeBool, description: "Keep trailing .0 version groups: true or false"},
	"MAX_SUPPORTED_PYTHON": {field: "max_supported_python", typ: envTypeVersion, description: "Newest Python version for classifiers, e.g. 3.12"},
	"MIN_SUPPORTED_PYTHON": {field: "min_supported_python", typ: envTypeVersion, description: "Oldest Python version for classifiers, e.g. 3.8"},
	"JOBS":                 {field: "jobs", typ: envTypeInt, description: "Number of files formatted in parallel (0 = auto)"},
	"FORMAT":               {field: "format", typ: envTypeString, description: "Report format: text or json"},
	"COLOR":                {field: "color", typ: envTypeString, description: "Colored output: auto, always or never"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with PYPROJECT_FMT_
// (e.g., PYPROJECT_FMT_INDENT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeVersion:
		v, err := config.ParsePythonVersion(value)
		if err != nil {
			return fmt.Errorf("invalid version for %s: %w", envVar, err)
		}
		return setVersionField(cfg, mapping.field, v)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "keep_full_version":
		cfg.KeepFullVersion = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "column_width":
		cfg.ColumnWidth = value
	case "indent":
		cfg.Indent = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setVersionField sets a Python version field on the config by field path.
func setVersionField(cfg *config.Config, field string, value config.PythonVersion) error {
	switch field {
	case "max_supported_python":
		cfg.MaxSupportedPython = value
	case "min_supported_python":
		cfg.MinSupportedPython = value
	default:
		return fmt.Errorf("unknown version field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
