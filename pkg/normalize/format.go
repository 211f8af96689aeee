package normalize

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
	"github.com/yaklabco/pyprojectfmt/pkg/tomlfmt"
)

// Format returns the canonical form of a pyproject.toml document.
// A nil cfg uses config.NewConfig defaults. Either the complete result or
// an error is returned, never partial output.
func Format(src string, cfg *config.Config) (result string, err error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := checkPythonVersions(cfg.MinSupportedPython, cfg.MaxSupportedPython); err != nil {
		return "", err
	}

	doc, err := tomlcst.Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := validateTOML(src); err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}

	defer func() {
		if r := recover(); r != nil {
			fragErr, ok := r.(*tomlcst.FragmentError)
			if !ok {
				panic(r)
			}
			result, err = "", fmt.Errorf("%w: %w", ErrInternal, fragErr)
		}
	}()

	tables := BuildTables(doc)
	FixBuildSystem(tables, cfg.KeepFullVersion)
	if err := FixProject(tables, cfg); err != nil {
		return "", err
	}
	tables.Reorder(doc, TablePriority)

	out := tomlfmt.Print(doc, PrintOptions(cfg))
	if err := validateTOML(out); err != nil {
		return "", fmt.Errorf("%w: formatted output is not valid toml: %w", ErrInternal, err)
	}
	return out, nil
}

// PrintOptions derives printer options from the configuration.
func PrintOptions(cfg *config.Config) tomlfmt.Options {
	opts := tomlfmt.DefaultOptions()
	opts.ColumnWidth = cfg.ColumnWidth
	opts.IndentString = strings.Repeat(" ", cfg.Indent)
	return opts
}

// validateTOML decodes text to catch what the lossless parser accepts but
// TOML forbids, such as duplicate keys or tables.
func validateTOML(text string) error {
	var doc map[string]any
	_, err := toml.Decode(text, &doc)
	return err
}
