package pretty

import "strings"

// FormatDiffLine styles one line of a unified diff. The line must not
// carry its terminating newline.
func (s *Styles) FormatDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return s.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiff styles every line of a unified diff.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	var builder strings.Builder
	for line := range strings.Lines(diff) {
		content := strings.TrimSuffix(line, "\n")
		builder.WriteString(s.FormatDiffLine(content))
		if len(content) != len(line) {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
