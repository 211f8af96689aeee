package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

// isolated returns options that only consult explicit inputs.
func isolated() LoadOptions {
	return LoadOptions{
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if *result.Config != *config.NewConfig() {
		t.Errorf("expected defaults, got %+v", *result.Config)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated()
	opts.ExplicitPath = writeConfig(t, `
indent: 4
max_supported_python: "3.13"
`)

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Indent != 4 {
		t.Errorf("expected indent 4, got %d", result.Config.Indent)
	}
	if got := result.Config.MaxSupportedPython.String(); got != "3.13" {
		t.Errorf("expected max_supported_python 3.13, got %s", got)
	}
	if result.Config.ColumnWidth != config.DefaultColumnWidth {
		t.Errorf("expected default column width, got %d", result.Config.ColumnWidth)
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != opts.ExplicitPath {
		t.Errorf("expected explicit config in LoadedFrom, got %v", result.LoadedFrom)
	}
}

func TestLoad_EmptyConfigFile(t *testing.T) {
	t.Parallel()

	opts := isolated()
	opts.ExplicitPath = writeConfig(t, "")

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *result.Config != *config.NewConfig() {
		t.Errorf("expected defaults, got %+v", *result.Config)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown key", content: "flavor: gfm\n"},
		{name: "cli-only key", content: "jobs: 4\n"},
		{name: "negative indent", content: "indent: -1\n", field: "indent"},
		{name: "zero column width", content: "column_width: 0\n", field: "column_width"},
		{name: "python 2", content: "min_supported_python: \"2.7\"\n", field: "min_supported_python"},
		{name: "bad version", content: "max_supported_python: three\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated()
			opts.ExplicitPath = writeConfig(t, tt.content)

			_, err := Load(context.Background(), opts)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.field == "" {
				return
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, validationErr.Field)
			}
		})
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	opts := isolated()
	opts.ExplicitPath = writeConfig(t, "indent: 4\ncolumn_width: 80\n")
	opts.CLIConfig = &config.Config{
		Indent:          8,
		KeepFullVersion: true,
		Check:           true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Indent != 8 {
		t.Errorf("expected indent 8 (CLI override), got %d", result.Config.Indent)
	}
	if result.Config.ColumnWidth != 80 {
		t.Errorf("expected column width 80 from file, got %d", result.Config.ColumnWidth)
	}
	if !result.Config.KeepFullVersion || !result.Config.Check {
		t.Error("expected CLI booleans to be applied")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated()); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestForDocument(t *testing.T) {
	t.Parallel()

	opts := isolated()
	opts.ExplicitPath = writeConfig(t, "indent: 4\n")
	opts.CLIConfig = &config.Config{ColumnWidth: 80}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	doc := `[project]
name = "demo"

[tool.pyproject-fmt]
column_width = 120
keep_full_version = true
max_supported_python = "3.13"
unknown = 1
`
	cfg, warnings, err := result.ForDocument("pyproject.toml", []byte(doc))
	if err != nil {
		t.Fatalf("ForDocument() error = %v", err)
	}

	if cfg.ColumnWidth != 80 {
		t.Errorf("expected CLI column width 80 to win over the document, got %d", cfg.ColumnWidth)
	}
	if cfg.Indent != 4 {
		t.Errorf("expected indent 4 from the config file, got %d", cfg.Indent)
	}
	if !cfg.KeepFullVersion {
		t.Error("expected keep_full_version from the document")
	}
	if got := cfg.MaxSupportedPython.String(); got != "3.13" {
		t.Errorf("expected max_supported_python 3.13, got %s", got)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"unknown"`) {
		t.Errorf("expected one unknown-key warning, got %v", warnings)
	}
	if result.Config.KeepFullVersion {
		t.Error("document settings must not leak into the shared config")
	}
}

func TestForDocument_WithoutTable(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, doc := range []string{"[project]\nname = \"a\"\n", "a = \n", ""} {
		cfg, warnings, err := result.ForDocument("pyproject.toml", []byte(doc))
		if err != nil {
			t.Fatalf("ForDocument(%q) error = %v", doc, err)
		}
		if *cfg != *result.Config {
			t.Errorf("ForDocument(%q) = %+v, want %+v", doc, *cfg, *result.Config)
		}
		if cfg == result.Config {
			t.Error("expected a copy of the shared config")
		}
		if len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
	}
}

func TestForDocument_InvalidTable(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := map[string]string{
		"wrong type":        "[tool.pyproject-fmt]\ncolumn_width = \"wide\"\n",
		"python 4":          "[tool.pyproject-fmt]\nmax_supported_python = \"4.0\"\n",
		"negative indent":   "[tool.pyproject-fmt]\nindent = -2\n",
		"malformed version": "[tool.pyproject-fmt]\nmin_supported_python = \"3\"\n",
		"float version":     "[tool.pyproject-fmt]\nmax_supported_python = 3.12\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := result.ForDocument("demo/pyproject.toml", []byte(doc))
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if validationErr.FilePath != "demo/pyproject.toml" {
				t.Errorf("expected the document path in the error, got %q", validationErr.FilePath)
			}
		})
	}
}

func TestForDocument_IgnorePyproject(t *testing.T) {
	t.Parallel()

	opts := isolated()
	opts.IgnorePyproject = true
	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg, _, err := result.ForDocument("pyproject.toml", []byte("[tool.pyproject-fmt]\nindent = 8\n"))
	if err != nil {
		t.Fatalf("ForDocument() error = %v", err)
	}
	if cfg.Indent != config.DefaultIndent {
		t.Errorf("expected the table to be ignored, got indent %d", cfg.Indent)
	}
}

func TestLoad_UserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "pyproject-fmt")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("indent: 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	result, err := Load(context.Background(), LoadOptions{IgnoreSystemConfig: true, IgnoreEnv: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Paths.User != filepath.Join(dir, "config.yml") {
		t.Errorf("expected user config to be discovered, got %q", result.Paths.User)
	}
	if result.Config.Indent != 3 {
		t.Errorf("expected indent 3 from user config, got %d", result.Config.Indent)
	}
}

func TestLoad_EnvOverridesDocument(t *testing.T) {
	t.Setenv("PYPROJECT_FMT_INDENT", "6")
	t.Setenv("PYPROJECT_FMT_MIN_SUPPORTED_PYTHON", "3.9")

	result, err := Load(context.Background(), LoadOptions{IgnoreSystemConfig: true, IgnoreUserConfig: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Indent != 6 {
		t.Errorf("expected indent 6 from env, got %d", result.Config.Indent)
	}

	cfg, _, err := result.ForDocument("pyproject.toml", []byte("[tool.pyproject-fmt]\nindent = 4\ncolumn_width = 100\n"))
	if err != nil {
		t.Fatalf("ForDocument() error = %v", err)
	}
	if cfg.Indent != 6 {
		t.Errorf("expected env indent 6 to win over the document, got %d", cfg.Indent)
	}
	if cfg.ColumnWidth != 100 {
		t.Errorf("expected column width 100 from the document, got %d", cfg.ColumnWidth)
	}
	if got := cfg.MinSupportedPython.String(); got != "3.9" {
		t.Errorf("expected min_supported_python 3.9 from env, got %s", got)
	}
}
