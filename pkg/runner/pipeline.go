package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/fsutil"
)

// Error categories for per-file failures.
var (
	// ErrRead indicates the input could not be read.
	ErrRead = errors.New("read failure")

	// ErrWrite indicates the formatted document could not be written.
	ErrWrite = errors.New("write failure")
)

// process runs one input through read, configuration, formatting and,
// when the document changed and the run writes in place, backup and an
// atomic write guarded by a concurrent-modification check.
func (r *Runner) process(ctx context.Context, in Input, opts Options) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Input: in}
	outcome.Error = r.processInto(ctx, &outcome, opts)
	outcome.Duration = time.Since(start)
	return outcome
}

func (r *Runner) processInto(ctx context.Context, outcome *FileOutcome, opts Options) error {
	content, info, err := read(ctx, outcome.Input, opts.Stdin)
	if err != nil {
		return err
	}
	outcome.Original = string(content)

	cfg, warnings, err := opts.settings().ForDocument(outcome.Name, content)
	if err != nil {
		return err
	}
	outcome.Warnings = warnings

	formatted, err := r.format(outcome.Original, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", outcome.Name, err)
	}
	outcome.Formatted = formatted
	outcome.Changed = formatted != outcome.Original

	if !outcome.Changed || !writesInPlace(outcome.Input, opts.config()) {
		return nil
	}

	modified, err := fsutil.CheckModified(ctx, info, true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if modified {
		outcome.Skipped = true
		outcome.SkipReason = "file modified during processing"
		return nil
	}

	if opts.config().Backup {
		created, err := fsutil.CreateBackup(ctx, info.Path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		outcome.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, info.Path, []byte(formatted), info.Mode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, outcome.Name, err)
	}
	outcome.Written = true
	return nil
}

// writesInPlace reports whether a changed input is rewritten on disk.
func writesInPlace(in Input, cfg *config.Config) bool {
	return !in.IsStdin() && !cfg.Stdout && !cfg.Check
}

func read(ctx context.Context, in Input, stdin io.Reader) ([]byte, *fsutil.FileInfo, error) {
	if !in.IsStdin() {
		content, info, err := fsutil.ReadFile(ctx, in.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		return content, info, nil
	}

	if stdin == nil {
		return nil, nil, fmt.Errorf("%w: no standard input", ErrRead)
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: standard input: %w", ErrRead, err)
	}
	return content, nil, nil
}
