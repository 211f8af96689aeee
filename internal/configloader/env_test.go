package configloader

import (
	"strings"
	"testing"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PYPROJECT_FMT_COLUMN_WIDTH", "120")
	t.Setenv("PYPROJECT_FMT_KEEP_FULL_VERSION", "true")
	t.Setenv("PYPROJECT_FMT_MAX_SUPPORTED_PYTHON", "3.14")
	t.Setenv("PYPROJECT_FMT_FORMAT", "json")
	t.Setenv("PYPROJECT_FMT_COLOR", "never")
	t.Setenv("PYPROJECT_FMT_JOBS", "3")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.ColumnWidth != 120 {
		t.Errorf("expected column width 120, got %d", cfg.ColumnWidth)
	}
	if !cfg.KeepFullVersion {
		t.Error("expected keep_full_version true")
	}
	if cfg.MaxSupportedPython != (config.PythonVersion{Major: 3, Minor: 14}) {
		t.Errorf("expected 3.14, got %s", cfg.MaxSupportedPython)
	}
	if cfg.Format != config.FormatJSON || cfg.Color != config.ColorNever || cfg.Jobs != 3 {
		t.Errorf("unexpected CLI-level values: %+v", *cfg)
	}
	if cfg.Indent != config.DefaultIndent {
		t.Errorf("unset variables must not change the config, got indent %d", cfg.Indent)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bool", key: "PYPROJECT_FMT_KEEP_FULL_VERSION", value: "maybe"},
		{name: "int", key: "PYPROJECT_FMT_INDENT", value: "two"},
		{name: "version", key: "PYPROJECT_FMT_MIN_SUPPORTED_PYTHON", value: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			err := LoadFromEnv(config.NewConfig())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("indent"); got != "PYPROJECT_FMT_INDENT" {
		t.Errorf("GetEnvVarName(indent) = %q", got)
	}
	if got := GetEnvVarName("flavor"); got != "" {
		t.Errorf("GetEnvVarName(flavor) = %q, want empty", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Errorf("expected %d variables, got %d", len(envMappings), len(vars))
	}
	if vars["PYPROJECT_FMT_JOBS"] == "" {
		t.Error("expected a description for PYPROJECT_FMT_JOBS")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Indent = 4
	base.KeepFullVersion = true

	merged := MergeAll(base, &config.Config{}, &config.Config{ColumnWidth: 88, Format: config.FormatJSON})

	if merged.Indent != 4 || !merged.KeepFullVersion {
		t.Errorf("zero values must not override: %+v", *merged)
	}
	if merged.ColumnWidth != 88 || merged.Format != config.FormatJSON {
		t.Errorf("non-zero values must override: %+v", *merged)
	}
	if base.ColumnWidth != config.DefaultColumnWidth {
		t.Error("merge must not modify its inputs")
	}
	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if result := Validate(config.NewConfig()); !result.Valid() || result.HasWarnings() {
		t.Errorf("defaults should be valid: %v", result.AllMessages())
	}

	cfg := config.NewConfig()
	cfg.Format = "sarif"
	cfg.Color = "sometimes"
	cfg.Jobs = -1
	result := ValidateWithFile(cfg, "cfg.yaml")
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", result.AllMessages())
	}
	if msg := result.Errors[0].Error(); !strings.HasPrefix(msg, "cfg.yaml: jobs: ") {
		t.Errorf("unexpected message %q", msg)
	}

	cfg = config.NewConfig()
	cfg.MinSupportedPython = config.MustParsePythonVersion("3.13")
	result = Validate(cfg)
	if !result.Valid() || !result.HasWarnings() {
		t.Errorf("expected a warning only, got %v", result.AllMessages())
	}
}
