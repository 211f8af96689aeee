package runner_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestResolveInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "pyproject.toml")
	nested := filepath.Join(dir, "pkg", "pyproject.toml")
	other := filepath.Join(dir, "other.toml")
	writeFile(t, root, "")
	writeFile(t, nested, "")
	writeFile(t, other, "")

	inputs, err := runner.ResolveInputs(dir, []string{"pkg", "-", "other.toml", root, ".", "-"})
	if err != nil {
		t.Fatalf("ResolveInputs() error = %v", err)
	}

	want := []runner.Input{
		{Path: nested, Name: filepath.Join("pkg", "pyproject.toml")},
		{Name: runner.StdinName},
		{Path: other, Name: "other.toml"},
		{Path: root, Name: "pyproject.toml"},
	}
	if len(inputs) != len(want) {
		t.Fatalf("expected %d inputs, got %d: %+v", len(want), len(inputs), inputs)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("input %d = %+v, want %+v", i, inputs[i], want[i])
		}
	}
	if !inputs[1].IsStdin() || inputs[0].IsStdin() {
		t.Error("IsStdin() mismatch")
	}
}

func TestResolveInputs_OutsideWorkingDir(t *testing.T) {
	t.Parallel()

	outside := filepath.Join(t.TempDir(), "pyproject.toml")
	writeFile(t, outside, "")

	inputs, err := runner.ResolveInputs(t.TempDir(), []string{outside})
	if err != nil {
		t.Fatalf("ResolveInputs() error = %v", err)
	}
	if len(inputs) != 1 || inputs[0].Name != outside {
		t.Errorf("expected absolute display name, got %+v", inputs)
	}
}

func TestResolveInputs_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "odd", "pyproject.toml"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	for _, arg := range []string{"missing.toml", "empty", "odd"} {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()

			_, err := runner.ResolveInputs(dir, []string{arg})
			if !errors.Is(err, runner.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
