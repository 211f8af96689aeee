package runner

import "time"

// FileOutcome is the result of formatting one input.
type FileOutcome struct {
	Input

	// Original is the document as read.
	Original string

	// Formatted is the canonical document; empty when Error is set.
	Formatted string

	// Changed is true if Formatted differs from Original.
	Changed bool

	// Written is true if the file was rewritten on disk.
	Written bool

	// BackupCreated is true if a sidecar backup was written first.
	BackupCreated bool

	// Skipped is true if a changed file was not written.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Warnings are non-fatal configuration issues for this document.
	Warnings []string

	// Duration is the time spent on this input.
	Duration time.Duration

	// Error is set if the input could not be formatted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesProcessed is the number of inputs formatted without error.
	FilesProcessed int

	// FilesChanged is the number of inputs whose canonical form differs.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// FilesSkipped is the number of changed files left unwritten because
	// they were modified concurrently.
	FilesSkipped int

	// FilesErrored is the number of inputs that failed.
	FilesErrored int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per input, in input order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any input was (or would be) reformatted.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any input failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in input order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
}
