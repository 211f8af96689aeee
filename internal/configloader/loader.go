// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered merging,
// the per-document [tool.pyproject-fmt] table, environment variable
// support and validation.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnorePyproject skips the [tool.pyproject-fmt] table of formatted
	// documents.
	IgnorePyproject bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration for documents that carry
	// no [tool.pyproject-fmt] table.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// files is the merge of defaults and configuration files, the layers
	// below a document's own table.
	files *config.Config

	opts LoadOptions
}

// Load resolves the configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (PYPROJECT_FMT_*)
//  3. The document's [tool.pyproject-fmt] table (see LoadResult.ForDocument)
//  4. Explicit config file (opts.ExplicitPath)
//  5. User config ($XDG_CONFIG_HOME/pyproject-fmt/config.yaml)
//  6. System config (/etc/pyproject-fmt/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	paths, err := DiscoverPaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths, opts: opts}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{name: "system", path: paths.System, ignore: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, ignore: opts.IgnoreUserConfig},
		{name: "explicit", path: paths.Explicit},
	}
	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		cfg, err = loadConfigFile(layer.path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}
	result.files = cfg

	final, warnings, err := result.finish(cfg.Clone(), "")
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, warnings...)
	result.Config = final
	return result, nil
}

// ForDocument returns the configuration for one document: the file layers,
// then the document's [tool.pyproject-fmt] table, then environment and CLI
// overrides. name is used in error messages.
func (r *LoadResult) ForDocument(name string, src []byte) (*config.Config, []string, error) {
	if r.opts.IgnorePyproject {
		return r.Config.Clone(), nil, nil
	}
	cfg, warnings, found, err := ApplyPyproject(src, r.files.Clone())
	if err != nil {
		return nil, nil, &ValidationError{FilePath: name, Field: pyprojectTable, Message: err.Error()}
	}
	if !found {
		return r.Config.Clone(), nil, nil
	}
	final, more, err := r.finish(cfg, name)
	if err != nil {
		return nil, nil, err
	}
	return final, append(warnings, more...), nil
}

// finish applies the environment and CLI layers and validates the result.
func (r *LoadResult) finish(cfg *config.Config, filePath string) (*config.Config, []string, error) {
	if !r.opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, r.opts.CLIConfig)

	validation := ValidateWithFile(cfg, filePath)
	if !validation.Valid() {
		return nil, nil, &validation.Errors[0]
	}
	var warnings []string
	for _, w := range validation.Warnings {
		warnings = append(warnings, w.Error())
	}
	return cfg, warnings, nil
}

// loadConfigFile decodes a YAML file over a copy of base. Keys absent from
// the file keep the value from base; unknown keys are an error.
func loadConfigFile(path string, base *config.Config) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("cannot read config file: %v", err)}
	}

	cfg := base.Clone()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}
