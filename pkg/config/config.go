// Package config defines core configuration types for pyproject-fmt.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPythonVersion is returned when a version string is not "MAJOR.MINOR".
var ErrInvalidPythonVersion = errors.New("invalid python version")

// PythonVersion is a MAJOR.MINOR Python version such as 3.12.
type PythonVersion struct {
	Major int
	Minor int
}

// ParsePythonVersion parses "3.12" style versions.
func ParsePythonVersion(s string) (PythonVersion, error) {
	majorText, minorText, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return PythonVersion{}, fmt.Errorf("%w: %q", ErrInvalidPythonVersion, s)
	}
	major, err := strconv.Atoi(majorText)
	if err != nil || major < 0 {
		return PythonVersion{}, fmt.Errorf("%w: %q", ErrInvalidPythonVersion, s)
	}
	minor, err := strconv.Atoi(minorText)
	if err != nil || minor < 0 {
		return PythonVersion{}, fmt.Errorf("%w: %q", ErrInvalidPythonVersion, s)
	}
	return PythonVersion{Major: major, Minor: minor}, nil
}

// MustParsePythonVersion is ParsePythonVersion for constants; it panics on error.
func MustParsePythonVersion(s string) PythonVersion {
	v, err := ParsePythonVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v PythonVersion) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// IsZero reports whether the version is unset.
func (v PythonVersion) IsZero() bool {
	return v == PythonVersion{}
}

// MarshalText implements encoding.TextMarshaler.
func (v PythonVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *PythonVersion) UnmarshalText(text []byte) error {
	parsed, err := ParsePythonVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML renders the version as a quoted string so it is not read
// back as a float.
func (v PythonVersion) MarshalYAML() (any, error) {
	return v.String(), nil
}

// UnmarshalYAML accepts both `3.12` and `"3.12"`.
func (v *PythonVersion) UnmarshalYAML(node *yaml.Node) error {
	return v.UnmarshalText([]byte(node.Value))
}

// OutputFormat specifies how per-file results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// ColorMode controls colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Default values.
const (
	DefaultColumnWidth = 1
	DefaultIndent      = 2
)

// Config is the root configuration structure for pyproject-fmt.
type Config struct {
	// ColumnWidth is the line width before arrays are expanded.
	// The default of 1 always expands non-empty arrays.
	ColumnWidth int `yaml:"column_width" toml:"column_width"`

	// Indent is the number of spaces per indentation level.
	Indent int `yaml:"indent" toml:"indent"`

	// KeepFullVersion keeps trailing ".0" groups in dependency versions.
	KeepFullVersion bool `yaml:"keep_full_version" toml:"keep_full_version"`

	// MaxSupportedPython is the newest Python version to list in classifiers
	// when requires-python has no upper bound.
	MaxSupportedPython PythonVersion `yaml:"max_supported_python" toml:"max_supported_python"`

	// MinSupportedPython is the oldest Python version to list in classifiers
	// when requires-python has no lower bound.
	MinSupportedPython PythonVersion `yaml:"min_supported_python" toml:"min_supported_python"`

	// CLI-level options (not persisted to config files).

	// Stdout prints the formatted result instead of writing files.
	Stdout bool `yaml:"-" toml:"-"`

	// Check reports files that would change without writing them.
	Check bool `yaml:"-" toml:"-"`

	// NoPrintDiff suppresses the unified diff of changed files.
	NoPrintDiff bool `yaml:"-" toml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Color controls colored output.
	Color ColorMode `yaml:"-" toml:"-"`

	// Jobs specifies the number of files formatted in parallel.
	Jobs int `yaml:"-" toml:"-"`

	// Backup keeps a sidecar copy of each file before it is rewritten.
	Backup bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ColumnWidth:        DefaultColumnWidth,
		Indent:             DefaultIndent,
		KeepFullVersion:    false,
		MaxSupportedPython: PythonVersion{Major: 3, Minor: 12},
		MinSupportedPython: PythonVersion{Major: 3, Minor: 8},
		Format:             FormatText,
		Color:              ColorAuto,
		Jobs:               0, // 0 means use GOMAXPROCS
	}
}
