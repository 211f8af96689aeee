package reporter

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines around each hunk.
const diffContext = 3

// UnifiedDiff returns the unified diff between before and after with
// name as both the from and to file. It is empty when the texts are equal.
func UnifiedDiff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: name,
		ToFile:   name,
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}
	return diff, nil
}

// splitLines splits text after each newline. A final line without a
// newline gets one so every diff line is terminated.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}
	return lines
}
