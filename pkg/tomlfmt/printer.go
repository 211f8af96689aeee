package tomlfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

type rowKind int

const (
	rowValue rowKind = iota
	rowEntry
	rowHeader
	rowComment
)

// line is one logical output row. Text may span several physical lines
// when it holds a multi-line array or string.
type line struct {
	kind        rowKind
	blankBefore int
	key         string // entries only; text then holds the value
	text        string
	comment     string
}

// alignable rows take part in comment and entry alignment.
func (l line) alignable() bool {
	return (l.kind == rowValue || l.kind == rowEntry) && !strings.Contains(l.text, "\n")
}

// Print renders root in the layout described by opts.
func Print(root *tomlcst.Element, opts Options) string {
	p := printer{opts: opts}
	lines := p.rootLines(root)

	var sb strings.Builder
	p.layout(&sb, lines, "", true)

	out := sb.String()
	if !opts.TrailingNewline {
		return strings.TrimSuffix(out, "\n")
	}
	if out == "" {
		return "\n"
	}
	return out
}

type printer struct {
	opts Options
}

func (p *printer) indent(level int) string {
	return strings.Repeat(p.opts.IndentString, level)
}

// rootLines converts the top-level elements into rows. Root indentation is
// dropped and blank lines are counted on the row that follows them.
func (p *printer) rootLines(root *tomlcst.Element) []line {
	var (
		lines []line
		cur   *line
		blank int
	)
	flush := func() {
		if cur != nil {
			lines = append(lines, *cur)
			cur = nil
		}
	}

	for _, child := range root.Children {
		switch child.Kind {
		case tomlcst.KindNewline:
			breaks := strings.Count(child.Text, "\n")
			if cur != nil {
				flush()
				breaks--
			}
			blank += breaks
		case tomlcst.KindComment:
			if cur != nil && cur.kind != rowComment && cur.comment == "" {
				cur.comment = trimComment(child.Text)
				continue
			}
			flush()
			cur = &line{kind: rowComment, blankBefore: blank, text: trimComment(child.Text)}
			blank = 0
		case tomlcst.KindTableHeader, tomlcst.KindArrayHeader:
			flush()
			cur = &line{kind: rowHeader, blankBefore: blank, text: headerText(child)}
			blank = 0
		case tomlcst.KindEntry:
			flush()
			key := tomlcst.KeyText(child)
			cur = &line{
				kind:        rowEntry,
				blankBefore: blank,
				key:         key,
				text:        p.value(tomlcst.ValueOf(child), 0, runewidth.StringWidth(key)+len(" = "), false),
			}
			blank = 0
		default:
			// Whitespace and anything unexpected at the root carry no layout.
		}
	}
	flush()

	if len(lines) > 0 {
		lines[0].blankBefore = 0
	}
	return lines
}

// layout writes rows, each prefixed by indent. Blank lines are only kept
// when keepBlank is set, capped at AllowedBlankLines.
func (p *printer) layout(sb *strings.Builder, lines []line, indent string, keepBlank bool) {
	texts := make([]string, len(lines))
	pads := make([]int, len(lines))
	for i, l := range lines {
		texts[i] = l.text
		if l.kind == rowEntry {
			texts[i] = l.key + " = " + l.text
		}
		pads[i] = 1
	}

	start := 0
	for i := 0; i <= len(lines); i++ {
		if i < len(lines) && lines[i].alignable() &&
			(i == start || !keepBlank || lines[i].blankBefore == 0) {
			continue
		}
		p.align(lines[start:i], texts[start:i], pads[start:i], indent)
		start = i
		if i < len(lines) && !lines[i].alignable() {
			start = i + 1
		}
	}

	for i, l := range lines {
		if keepBlank {
			sb.WriteString(strings.Repeat("\n", min(l.blankBefore, p.opts.AllowedBlankLines)))
		}
		sb.WriteString(indent)
		sb.WriteString(texts[i])
		if l.comment != "" {
			sb.WriteString(strings.Repeat(" ", pads[i]))
			sb.WriteString(l.comment)
		}
		sb.WriteByte('\n')
	}
}

// align handles a group of consecutive single-line rows: entry keys are
// padded when AlignEntries is set and trailing comments start one column
// past the widest row.
func (p *printer) align(lines []line, texts []string, pads []int, indent string) {
	if len(lines) == 0 {
		return
	}

	if p.opts.AlignEntries {
		keyWidth := 0
		for _, l := range lines {
			keyWidth = max(keyWidth, runewidth.StringWidth(l.key))
		}
		for i, l := range lines {
			if l.kind != rowEntry {
				continue
			}
			pad := strings.Repeat(" ", keyWidth-runewidth.StringWidth(l.key))
			texts[i] = l.key + pad + " = " + l.text
		}
	}

	if !p.opts.AlignComments {
		return
	}
	width := 0
	for i := range lines {
		width = max(width, runewidth.StringWidth(indent+texts[i]))
	}
	for i := range lines {
		pads[i] = width + 1 - runewidth.StringWidth(indent+texts[i])
	}
}

// value renders a Value node (or the element it wraps) starting at column col.
func (p *printer) value(elem *tomlcst.Element, level, col int, inInline bool) string {
	if elem == nil {
		return ""
	}
	if elem.Kind == tomlcst.KindValue {
		elem = tomlcst.Inner(elem)
		if elem == nil {
			return ""
		}
	}

	switch elem.Kind {
	case tomlcst.KindArray:
		return p.array(elem, level, col, inInline)
	case tomlcst.KindInlineTable:
		return p.inlineTable(elem, level, col)
	default:
		return elem.Text
	}
}

type arrayItem struct {
	value   *tomlcst.Element
	comment string
}

func (p *printer) array(arr *tomlcst.Element, level, col int, inInline bool) string {
	var (
		items      []arrayItem // comment-only rows have a nil value
		lastValue  = -1
		sawNewline bool
	)
	for _, child := range arr.Children {
		switch child.Kind {
		case tomlcst.KindValue:
			items = append(items, arrayItem{value: child})
			lastValue = len(items) - 1
			sawNewline = false
		case tomlcst.KindNewline:
			sawNewline = true
		case tomlcst.KindComment:
			if lastValue >= 0 && !sawNewline && items[lastValue].comment == "" {
				items[lastValue].comment = trimComment(child.Text)
				continue
			}
			items = append(items, arrayItem{comment: trimComment(child.Text)})
		default:
		}
	}

	if !tomlcst.Contains(arr, tomlcst.KindNewline, tomlcst.KindComment) {
		single := p.singleLineArray(items, level, col)
		if inInline || !p.opts.ArrayAutoExpand || lastValue < 0 ||
			col+runewidth.StringWidth(single) <= p.opts.ColumnWidth {
			return single
		}
	}

	inner := p.indent(level + 1)
	lines := make([]line, 0, len(items))
	for i, item := range items {
		if item.value == nil {
			lines = append(lines, line{kind: rowComment, text: item.comment})
			continue
		}
		text := p.value(item.value, level+1, len(inner), inInline)
		if i != lastValue || p.opts.ArrayTrailingComma {
			text += ","
		}
		lines = append(lines, line{text: text, comment: item.comment})
	}

	var sb strings.Builder
	sb.WriteString("[\n")
	p.layout(&sb, lines, inner, false)
	sb.WriteString(p.indent(level))
	sb.WriteString("]")
	return sb.String()
}

func (p *printer) singleLineArray(items []arrayItem, level, col int) string {
	parts := make([]string, 0, len(items))
	offset := col + 1
	for _, item := range items {
		if item.value == nil {
			continue
		}
		text := p.value(item.value, level, offset, true)
		parts = append(parts, text)
		offset += runewidth.StringWidth(text) + len(", ")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *printer) inlineTable(table *tomlcst.Element, level, col int) string {
	var parts []string
	offset := col + len("{ ")
	for _, child := range table.Children {
		if child.Kind != tomlcst.KindEntry {
			continue
		}
		key := tomlcst.KeyText(child)
		text := key + " = " + p.value(tomlcst.ValueOf(child), level, offset+runewidth.StringWidth(key)+len(" = "), true)
		parts = append(parts, text)
		offset += runewidth.StringWidth(text) + len(", ")
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func headerText(header *tomlcst.Element) string {
	if header.Kind == tomlcst.KindArrayHeader {
		return "[[" + tomlcst.KeyText(header) + "]]"
	}
	return "[" + tomlcst.KeyText(header) + "]"
}

func trimComment(text string) string {
	return strings.TrimRight(text, " \t\r")
}
