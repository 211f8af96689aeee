package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yaklabco/pyprojectfmt/internal/logging"
	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/fsutil"
	"github.com/yaklabco/pyprojectfmt/pkg/normalize"
	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

const (
	messy     = "[tool.black]\nline-length=120\n"
	canonical = "[tool.black]\nline-length = 120\n"
)

// runConfig returns the defaults with fn applied.
func runConfig(fn func(cfg *config.Config)) *config.Config {
	cfg := config.NewConfig()
	fn(cfg)
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(content)
}

func TestRun_WritesChangedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changed := filepath.Join(dir, "a", "pyproject.toml")
	unchanged := filepath.Join(dir, "b", "pyproject.toml")
	writeFile(t, changed, messy)
	writeFile(t, unchanged, canonical)

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Inputs:     []string{"a", "b"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, changed); got != canonical {
		t.Errorf("expected file to be rewritten, got %q", got)
	}
	if !result.HasChanges() || result.HasErrors() {
		t.Errorf("unexpected result state: %+v", result.Stats)
	}
	want := runner.Stats{FilesProcessed: 2, FilesChanged: 1, FilesWritten: 1}
	if result.Stats != want {
		t.Errorf("Stats = %+v, want %+v", result.Stats, want)
	}
	if result.Files[0].Name != filepath.Join("a", "pyproject.toml") || !result.Files[0].Written {
		t.Errorf("unexpected first outcome: %+v", result.Files[0])
	}
	if result.Files[1].Changed || result.Files[1].Written {
		t.Errorf("canonical file must not be rewritten: %+v", result.Files[1])
	}
	if _, err := os.Stat(fsutil.BackupPath(changed)); !os.IsNotExist(err) {
		t.Error("no backup expected without the backup option")
	}
}

func TestRun_LogsToContextLogger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pyproject.toml"), messy)

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWriter(&buf, "debug"))
	if _, err := runner.New(nil).Run(ctx, runner.Options{Inputs: []string{"."}, WorkingDir: dir}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"formatted", "changed=true", "run complete", "files_changed=1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in log output %q", want, buf.String())
		}
	}
}

func TestRun_CheckAndStdoutDoNotWrite(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*config.Config{
		runConfig(func(cfg *config.Config) { cfg.Check = true }),
		runConfig(func(cfg *config.Config) { cfg.Stdout = true }),
	} {
		dir := t.TempDir()
		path := filepath.Join(dir, "pyproject.toml")
		writeFile(t, path, messy)

		result, err := runner.New(nil).Run(context.Background(), runner.Options{
			Inputs:     []string{path},
			WorkingDir: dir,
			Config:     cfg,
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if got := readFile(t, path); got != messy {
			t.Errorf("%+v: file must be left untouched, got %q", *cfg, got)
		}
		outcome := result.Files[0]
		if !outcome.Changed || outcome.Written || outcome.Formatted != canonical {
			t.Errorf("%+v: unexpected outcome %+v", *cfg, outcome)
		}
	}
}

func TestRun_Stdin(t *testing.T) {
	t.Parallel()

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Inputs: []string{runner.StdinName},
		Stdin:  strings.NewReader(messy),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	outcome := result.Files[0]
	if outcome.Name != runner.StdinName || !outcome.Changed || outcome.Written {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	if outcome.Formatted != canonical {
		t.Errorf("Formatted = %q, want %q", outcome.Formatted, canonical)
	}
}

func TestRun_Backup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	writeFile(t, path, messy)

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Inputs:     []string{dir},
		WorkingDir: dir,
		Config:     runConfig(func(cfg *config.Config) { cfg.Backup = true }),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.Files[0].BackupCreated {
		t.Error("expected a backup to be created")
	}
	if got := readFile(t, fsutil.BackupPath(path)); got != messy {
		t.Errorf("backup = %q, want the original content", got)
	}
	if got := readFile(t, path); got != canonical {
		t.Errorf("file = %q, want %q", got, canonical)
	}
}

func TestRun_PerFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good", "pyproject.toml")
	bad := filepath.Join(dir, "bad", "pyproject.toml")
	writeFile(t, good, messy)
	writeFile(t, bad, "[project\n")

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Inputs:     []string{"bad", "good"},
		WorkingDir: dir,
		Config:     runConfig(func(cfg *config.Config) { cfg.Check = true }),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !errors.Is(result.Files[0].Error, normalize.ErrParse) {
		t.Errorf("expected ErrParse for the bad file, got %v", result.Files[0].Error)
	}
	if result.Files[1].Error != nil || !result.Files[1].Changed {
		t.Errorf("good file should still be processed: %+v", result.Files[1])
	}
	if result.Stats.FilesErrored != 1 || result.Stats.FilesProcessed != 1 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
	if len(result.Errors()) != 1 {
		t.Errorf("Errors() = %v", result.Errors())
	}
}

func TestRun_SettingsPerDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	writeFile(t, path, messy)

	var calls atomic.Int32
	format := func(src string, cfg *config.Config) (string, error) {
		calls.Add(1)
		if cfg.Indent != 7 {
			t.Errorf("expected resolved indent 7, got %d", cfg.Indent)
		}
		return src, nil
	}

	result, err := runner.New(format).Run(context.Background(), runner.Options{
		Inputs:     []string{path},
		WorkingDir: dir,
		Settings:   resolverFunc(func(name string, _ []byte) (*config.Config, []string, error) {
			cfg := config.NewConfig()
			cfg.Indent = 7
			return cfg, []string{name + ": note"}, nil
		}),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("expected one format call, got %d", calls.Load())
	}
	if got := result.Files[0].Warnings; len(got) != 1 || got[0] != "pyproject.toml: note" {
		t.Errorf("Warnings = %v", got)
	}
	if result.HasChanges() {
		t.Error("identity formatter must not report changes")
	}
}

func TestRun_Parallel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := make([]string, 0, 20)
	for i := range 20 {
		name := filepath.Join("p"+strings.Repeat("x", i), "pyproject.toml")
		writeFile(t, filepath.Join(dir, name), messy)
		inputs = append(inputs, name)
	}

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Inputs:     inputs,
		WorkingDir: dir,
		Config:     runConfig(func(cfg *config.Config) { cfg.Jobs = 4 }),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesWritten != len(inputs) {
		t.Errorf("expected %d files written, got %+v", len(inputs), result.Stats)
	}
	for i, outcome := range result.Files {
		if outcome.Name != inputs[i] {
			t.Errorf("outcome %d is %s, want %s", i, outcome.Name, inputs[i])
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pyproject.toml"), messy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.New(nil).Run(ctx, runner.Options{Inputs: []string{dir}, WorkingDir: dir}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_NoInputs(t *testing.T) {
	t.Parallel()

	result, err := runner.New(nil).Run(context.Background(), runner.Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Files) != 0 || result.HasChanges() {
		t.Errorf("unexpected result %+v", result)
	}
}

type resolverFunc func(name string, src []byte) (*config.Config, []string, error)

func (f resolverFunc) ForDocument(name string, src []byte) (*config.Config, []string, error) {
	return f(name, src)
}
