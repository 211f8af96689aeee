// Package reporter renders formatting outcomes: unified diffs, formatted
// documents, "no change" notices and machine-readable summaries.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes output for the given result. It returns the number
	// of inputs that changed and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	switch opts.Format {
	case config.FormatText, "":
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
