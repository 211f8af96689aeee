package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/pyprojectfmt/internal/logging"
	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/normalize"
)

// Runner formats a set of inputs concurrently.
type Runner struct {
	// Format produces the canonical form of one document.
	Format FormatFunc
}

// New creates a Runner. A nil format uses normalize.Format.
func New(format FormatFunc) *Runner {
	return &Runner{Format: format}
}

func (r *Runner) format(src string, cfg *config.Config) (string, error) {
	if r == nil || r.Format == nil {
		return normalize.Format(src, cfg)
	}
	return r.Format(src, cfg)
}

// Run resolves opts.Inputs and formats each document. Per-file failures
// are recorded on the outcome and do not stop other files; the returned
// error is reserved for invalid inputs and cancellation.
//
// Outcomes are returned in input order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	inputs, err := ResolveInputs(opts.WorkingDir, opts.Inputs)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(inputs))}
	if len(inputs) == 0 {
		return result, nil
	}

	jobs := opts.config().Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logger := logging.FromContext(ctx)
	logger.Debug("resolved inputs", logging.FieldInputs, len(inputs), logging.FieldJobs, jobs)
	outcomes := make([]FileOutcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcome := r.process(gctx, in, opts)
			outcomes[i] = outcome

			if outcome.Error != nil {
				logger.Debug("format failed",
					logging.FieldPath, outcome.Name,
					logging.FieldError, outcome.Error,
				)
				return nil
			}
			logger.Debug("formatted",
				logging.FieldPath, outcome.Name,
				logging.FieldChanged, outcome.Changed,
				logging.FieldBytesIn, len(outcome.Original),
				logging.FieldBytesOut, len(outcome.Formatted),
				logging.FieldDuration, outcome.Duration,
			)
			for _, warning := range outcome.Warnings {
				logger.Warn("document settings", logging.FieldPath, outcome.Name, logging.FieldWarning, warning)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)
	return result, nil
}
