// Package runner formats pyproject.toml files concurrently and reports a
// per-file outcome for each input.
package runner

import (
	"io"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

// FormatFunc returns the canonical form of a document.
type FormatFunc func(src string, cfg *config.Config) (string, error)

// SettingsResolver yields the formatting configuration for one document
// and any warnings about it. *configloader.LoadResult implements it.
type SettingsResolver interface {
	ForDocument(name string, src []byte) (*config.Config, []string, error)
}

// Options controls a formatting run.
type Options struct {
	// Inputs are the user-specified files or directories. A directory
	// stands for the pyproject.toml inside it; "-" reads standard input.
	Inputs []string

	// WorkingDir resolves relative inputs and shortens display names.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Stdin is read for the "-" input.
	Stdin io.Reader

	// Config holds the run-level switches: Check, Stdout, Backup and Jobs.
	Config *config.Config

	// Settings resolves per-document configuration. If nil, Config is
	// used for every document.
	Settings SettingsResolver
}

// StaticSettings resolves every document to the same configuration.
type StaticSettings struct {
	Config *config.Config
}

// ForDocument implements SettingsResolver.
func (s StaticSettings) ForDocument(string, []byte) (*config.Config, []string, error) {
	if s.Config == nil {
		return config.NewConfig(), nil, nil
	}
	return s.Config.Clone(), nil, nil
}

func (o Options) settings() SettingsResolver {
	if o.Settings != nil {
		return o.Settings
	}
	return StaticSettings{Config: o.Config}
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
