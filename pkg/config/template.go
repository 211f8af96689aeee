package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented with its current value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" for a config file or "toml" for
	// a [tool.pyproject-fmt] table to paste into pyproject.toml.
	Format string

	// Config supplies the values written by a full template.
	// Defaults are used when nil.
	Config *Config
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = NewConfig()
	}

	switch opts.Format {
	case "", "yaml":
		if opts.Full {
			return generateFullTemplate(cfg)
		}
		return generateMinimalTemplate(), nil
	case "toml":
		return generateTOMLTemplate(cfg)
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Maximum line length before arrays are expanded (1 = always expand)
# column_width: 1

# Spaces per indentation level
# indent: 2

# Keep trailing ".0" version groups in dependencies
# keep_full_version: false

# Python versions listed in classifiers when requires-python is open-ended
# max_supported_python: "3.12"
# min_supported_python: "3.8"
`)
	return buf.Bytes()
}

func generateFullTemplate(cfg *Config) ([]byte, error) {
	body, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// generateTOMLTemplate renders the settings as a [tool.pyproject-fmt] table.
func generateTOMLTemplate(cfg *Config) ([]byte, error) {
	doc := map[string]map[string]*Config{
		"tool": {"pyproject-fmt": cfg},
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = ""
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode toml template: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# pyproject-fmt configuration
# See: https://github.com/yaklabco/pyprojectfmt`
}
