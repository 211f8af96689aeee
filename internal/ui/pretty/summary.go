package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files reformatted, 3 files left unchanged, 1 file failed".
// In check mode changed files are reported as "would be reformatted".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, check bool) string {
	var parts []string

	if stats.FilesChanged > 0 {
		verb := "reformatted"
		if check {
			verb = "would be reformatted"
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s %s", stats.FilesChanged, plural(stats.FilesChanged), verb)))
	}

	if unchanged := stats.FilesProcessed - stats.FilesChanged; unchanged > 0 || len(parts) == 0 && stats.FilesErrored == 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s left unchanged", unchanged, plural(unchanged))))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s skipped", stats.FilesSkipped, plural(stats.FilesSkipped))))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored))))
	}

	return strings.Join(parts, ", ") + "\n"
}
