package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives diffs, formatted documents and reports.
	Writer io.Writer

	// ErrorWriter receives per-file errors and the summary line.
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// Stdout prints each formatted document instead of a diff.
	Stdout bool

	// NoPrintDiff suppresses diffs and "no change" notices.
	NoPrintDiff bool

	// Check words the summary as a dry run.
	Check bool

	// ShowSummary writes a one-line summary after all files.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatText,
		Color:       string(config.ColorAuto),
	}
}

// OptionsFromConfig derives reporter options from a run configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Format != "" {
		opts.Format = cfg.Format
	}
	if cfg.Color != "" {
		opts.Color = string(cfg.Color)
	}
	opts.Stdout = cfg.Stdout
	opts.NoPrintDiff = cfg.NoPrintDiff
	opts.Check = cfg.Check
	return opts
}

// printsDocument reports whether the formatted document itself is the
// output for this outcome.
func (o Options) printsDocument(outcome *runner.FileOutcome) bool {
	return o.Stdout || outcome.IsStdin()
}
