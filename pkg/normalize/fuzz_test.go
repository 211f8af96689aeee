package normalize_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/pyprojectfmt/pkg/normalize"
)

// FuzzFormat checks that formatting never panics, never reports an
// internal error and reaches a fixed point in one pass.
func FuzzFormat(f *testing.F) {
	seeds := []string{
		"",
		"a = 1\n",
		"[project]\nname = \"demo\"\n",
		"[build-system]\nrequires = [\"a>=1.0.0\", \"b.c>=1.5.0\"]\n",
		"[project]\nrequires-python = \">=3.8\"\ndependencies = [\"e >= 1.5.0\"]\n",
		"[project.scripts]\na = \"b\"\n",
		"# comment\n[tool.black]\nline-length = 120 # trailing\n",
		"[project]\nname = \"a\"\nentry-points.tox = {\"tox-uv\" = \"x\", \"tox\" = \"y\"}\n",
		"[project\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		once, err := normalize.Format(src, py38())
		if err != nil {
			if errors.Is(err, normalize.ErrInternal) {
				t.Fatalf("internal error for %q: %v", src, err)
			}
			return
		}

		twice, err := normalize.Format(once, py38())
		if err != nil {
			t.Fatalf("formatted output does not format: %v\n%s", err, once)
		}
		if twice != once {
			t.Errorf("not idempotent for %q:\nfirst:  %q\nsecond: %q", src, once, twice)
		}
	})
}

func BenchmarkFormat(b *testing.B) {
	src := `[build-system]
build-backend = "hatchling.build"
requires = ["hatchling>=1.18.0", "hatch-vcs>=0.3.0"]

[project]
name = "Demo_Package"
requires-python = ">=3.8"
dependencies = ["requests >= 2.31.0", "click>=8.0", "rich ; python_version < '3.11'"]
optional-dependencies.test = ["pytest>=7.0.0", "coverage[toml]>=7.2"]

[project.urls]
Homepage = "https://example.com"

[tool.ruff]
line-length = 120
`
	cfg := py38()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := normalize.Format(src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
