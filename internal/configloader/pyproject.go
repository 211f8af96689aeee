package configloader

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

// pyprojectTable is the dotted name of the settings table inside a
// pyproject.toml document.
const pyprojectTable = "tool.pyproject-fmt"

type pyprojectFile struct {
	Tool struct {
		Settings config.Config `toml:"pyproject-fmt"`
	} `toml:"tool"`
}

// ApplyPyproject overlays the [tool.pyproject-fmt] table of src on cfg.
// Only keys present in the table override cfg. found reports whether the
// table exists; unknown keys in it are returned as warnings. A document
// that is not valid TOML has no table; the formatter reports the syntax
// error.
func ApplyPyproject(src []byte, cfg *config.Config) (_ *config.Config, warnings []string, found bool, err error) {
	var probe map[string]any
	if _, err := toml.Decode(string(src), &probe); err != nil {
		return cfg, nil, false, nil
	}

	if err := checkVersionTypes(probe); err != nil {
		return nil, nil, false, err
	}

	var file pyprojectFile
	meta, err := toml.Decode(string(src), &file)
	if err != nil {
		return nil, nil, false, fmt.Errorf("decode: %w", err)
	}
	if !meta.IsDefined("tool", "pyproject-fmt") {
		return cfg, nil, false, nil
	}

	settings := file.Tool.Settings
	defined := func(key string) bool {
		return meta.IsDefined("tool", "pyproject-fmt", key)
	}
	if defined("column_width") {
		cfg.ColumnWidth = settings.ColumnWidth
	}
	if defined("indent") {
		cfg.Indent = settings.Indent
	}
	if defined("keep_full_version") {
		cfg.KeepFullVersion = settings.KeepFullVersion
	}
	if defined("max_supported_python") {
		cfg.MaxSupportedPython = settings.MaxSupportedPython
	}
	if defined("min_supported_python") {
		cfg.MinSupportedPython = settings.MinSupportedPython
	}

	for _, key := range meta.Undecoded() {
		if len(key) > 2 && key[0] == "tool" && key[1] == "pyproject-fmt" {
			warnings = append(warnings, fmt.Sprintf("%s: unknown key %q; it will be ignored",
				pyprojectTable, strings.Join(key[2:], ".")))
		}
	}
	return cfg, warnings, true, nil
}

// checkVersionTypes requires version keys to be strings. A TOML float
// loses the difference between 3.1 and 3.10.
func checkVersionTypes(doc map[string]any) error {
	tool, _ := doc["tool"].(map[string]any)
	table, _ := tool["pyproject-fmt"].(map[string]any)
	for _, key := range []string{"max_supported_python", "min_supported_python"} {
		value, ok := table[key]
		if !ok {
			continue
		}
		if _, isString := value.(string); !isString {
			return fmt.Errorf("%s must be a string such as \"3.12\", got %v", key, value)
		}
	}
	return nil
}
