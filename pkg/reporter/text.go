package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/pyprojectfmt/internal/ui/pretty"
	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

// TextReporter writes diffs or formatted documents for terminal use.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	errOut io.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		errOut: opts.ErrorWriter,
	}
}

// Report implements Reporter.
//
// For each input, in order: a failed input prints its error; standard
// input or stdout mode prints the formatted document; otherwise a changed
// input prints its unified diff and an unchanged one "no change for
// <name>", unless diffs are suppressed.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	changed := 0
	for i := range result.Files {
		outcome := &result.Files[i]
		if outcome.Error != nil {
			r.writeError(outcome)
			continue
		}
		if outcome.Changed {
			changed++
		}
		if err := r.writeOutcome(outcome); err != nil {
			return changed, err
		}
	}

	if r.opts.ShowSummary {
		if err := r.bw.Flush(); err != nil {
			return changed, err
		}
		fmt.Fprint(r.errOut, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Check))
	}

	return changed, nil
}

func (r *TextReporter) writeOutcome(outcome *runner.FileOutcome) error {
	if r.opts.printsDocument(outcome) {
		_, err := r.bw.WriteString(outcome.Formatted)
		return err
	}

	if outcome.Skipped {
		fmt.Fprintf(r.errOut, "%s: %s\n",
			r.styles.FilePath.Render(outcome.Name),
			r.styles.Warning.Render("skipped: "+outcome.SkipReason),
		)
	}

	if r.opts.NoPrintDiff {
		return nil
	}

	if !outcome.Changed {
		fmt.Fprintf(r.bw, "no change for %s\n", outcome.Name)
		return nil
	}

	diff, err := UnifiedDiff(outcome.Name, outcome.Original, outcome.Formatted)
	if err != nil {
		return err
	}
	_, err = r.bw.WriteString(r.styles.FormatDiff(diff))
	return err
}

func (r *TextReporter) writeError(outcome *runner.FileOutcome) {
	fmt.Fprintf(r.errOut, "%s: %s\n",
		r.styles.FilePath.Render(outcome.Name),
		r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
	)
}
