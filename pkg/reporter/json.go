package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

// jsonVersion is the schema version of the JSON report.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single input's outcome.
type JSONFileResult struct {
	Path          string   `json:"path"`
	Changed       bool     `json:"changed"`
	Written       bool     `json:"written"`
	BackupCreated bool     `json:"backupCreated,omitempty"`
	Skipped       bool     `json:"skipped,omitempty"`
	SkipReason    string   `json:"skipReason,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Diff          string   `json:"diff,omitempty"`
	Formatted     string   `json:"formatted,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesProcessed int `json:"filesProcessed"`
	FilesChanged   int `json:"filesChanged"`
	FilesWritten   int `json:"filesWritten"`
	FilesSkipped   int `json:"filesSkipped"`
	FilesErrored   int `json:"filesErrored"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, err := r.buildOutput(result)
	if err != nil {
		return 0, err
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, error) {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output, nil
	}

	output.Summary = JSONSummary{
		FilesProcessed: result.Stats.FilesProcessed,
		FilesChanged:   result.Stats.FilesChanged,
		FilesWritten:   result.Stats.FilesWritten,
		FilesSkipped:   result.Stats.FilesSkipped,
		FilesErrored:   result.Stats.FilesErrored,
	}

	for i := range result.Files {
		file := &result.Files[i]
		fileResult := JSONFileResult{
			Path:          file.Name,
			Changed:       file.Changed,
			Written:       file.Written,
			BackupCreated: file.BackupCreated,
			Skipped:       file.Skipped,
			SkipReason:    file.SkipReason,
			Warnings:      file.Warnings,
		}

		switch {
		case file.Error != nil:
			fileResult.Error = file.Error.Error()
		case r.opts.printsDocument(file):
			fileResult.Formatted = file.Formatted
		case !r.opts.NoPrintDiff:
			diff, err := UnifiedDiff(file.Name, file.Original, file.Formatted)
			if err != nil {
				return nil, err
			}
			fileResult.Diff = diff
		}

		output.Files = append(output.Files, fileResult)
	}

	return output, nil
}
