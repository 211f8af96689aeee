package configloader

import "github.com/yaklabco/pyprojectfmt/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Only non-zero values in override take effect: a zero column width, an
// unset version or an empty format leaves base untouched, and booleans can
// only be switched on.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.ColumnWidth != 0 {
		result.ColumnWidth = override.ColumnWidth
	}
	if override.Indent != 0 {
		result.Indent = override.Indent
	}
	if override.KeepFullVersion {
		result.KeepFullVersion = true
	}
	if !override.MaxSupportedPython.IsZero() {
		result.MaxSupportedPython = override.MaxSupportedPython
	}
	if !override.MinSupportedPython.IsZero() {
		result.MinSupportedPython = override.MinSupportedPython
	}

	if override.Stdout {
		result.Stdout = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoPrintDiff {
		result.NoPrintDiff = true
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Backup {
		result.Backup = true
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
