package normalize

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

// Block is a contiguous run of top-level elements starting at a table
// header. The anonymous block holds everything before the first header.
type Block struct {
	Name     string
	Elements []*tomlcst.Element
}

// Tables partitions a document into table blocks.
type Tables struct {
	blocks []*Block
	byName map[string]int
}

// BuildTables indexes the top-level children of doc. The anonymous block
// is always present, even when empty.
func BuildTables(doc *tomlcst.Element) *Tables {
	tables := &Tables{byName: make(map[string]int)}
	current := &Block{}
	for _, child := range doc.Children {
		if child.Kind.IsHeader() {
			tables.add(current)
			current = &Block{Name: tomlcst.KeyText(child)}
		}
		current.Elements = append(current.Elements, child)
	}
	tables.add(current)
	return tables
}

func (t *Tables) add(block *Block) *Block {
	if _, ok := t.byName[block.Name]; !ok {
		t.byName[block.Name] = len(t.blocks)
	}
	t.blocks = append(t.blocks, block)
	return block
}

// Blocks returns the blocks in their current order.
func (t *Tables) Blocks() []*Block {
	return t.blocks
}

// Get returns the first block with the given name.
func (t *Tables) Get(name string) (*Block, bool) {
	pos, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.blocks[pos], true
}

// Replace sets the content of the first block named name.
// It returns false if there is no such block.
func (t *Tables) Replace(name string, elements []*tomlcst.Element) bool {
	block, ok := t.Get(name)
	if !ok {
		return false
	}
	block.Elements = elements
	return true
}

// Elements concatenates all blocks in order.
func (t *Tables) Elements() []*tomlcst.Element {
	var out []*tomlcst.Element
	for _, block := range t.blocks {
		out = append(out, block.Elements...)
	}
	return out
}

// Reorder sorts the blocks by priority and writes them back into doc.
// A blank line separates blocks of different groups.
func (t *Tables) Reorder(doc *tomlcst.Element, priority []string) {
	ranks := make(map[string]int, len(priority))
	for i, name := range priority {
		ranks[name] = 2 * i
	}

	type rankedBlock struct {
		block  *Block
		group  string
		rank   int
		suffix string
	}
	ordered := make([]rankedBlock, 0, len(t.blocks))
	for _, block := range t.blocks {
		if len(block.Elements) == 0 {
			continue
		}
		if block.Name == "" && len(block.Elements) == 1 && block.Elements[0].Kind == tomlcst.KindNewline {
			continue
		}
		group, suffix := tableGroup(block)
		entry := rankedBlock{block: block, group: group, rank: 2 * len(priority)}
		if rank, ok := ranks[group]; ok {
			entry.rank = rank
			if suffix != "" {
				entry.rank++
				entry.suffix = suffix
			}
		}
		ordered = append(ordered, entry)
	}
	slices.SortStableFunc(ordered, func(a, b rankedBlock) int {
		return cmp.Or(cmp.Compare(a.rank, b.rank), cmp.Compare(a.suffix, b.suffix))
	})

	var out []*tomlcst.Element
	for i, entry := range ordered {
		elements := slices.Clone(entry.block.Elements)
		breaks := 1
		if i+1 < len(ordered) && ordered[i+1].group != entry.group {
			breaks = 2
		}
		switch at := trailingNewline(elements); {
		case at < 0:
			elements = append(elements, tomlcst.NewNewline(breaks))
		case breaks == 2:
			elements[at] = tomlcst.NewNewline(2)
		}
		out = append(out, elements...)
	}
	doc.SetChildren(out)

	t.blocks = t.blocks[:0]
	t.byName = make(map[string]int)
	for _, entry := range ordered {
		t.add(entry.block)
	}
}

// tableGroup returns the name used for ordering and blank-line decisions
// and what follows it in the full name. Tool tables group by their first
// two components. Quoted header keys are decoded first, so ["tool".ruff]
// groups with tool.ruff.
func tableGroup(block *Block) (group, suffix string) {
	var parts []string
	if len(block.Elements) > 0 {
		if header := block.Elements[0]; header.Kind.IsHeader() {
			parts = tomlcst.KeyParts(header)
		}
	}
	if len(parts) == 0 {
		return block.Name, ""
	}
	name := strings.Join(parts, ".")
	if len(parts) >= 2 && parts[0] == "tool" {
		group = parts[0] + "." + parts[1]
		return group, strings.TrimPrefix(name, group)
	}
	return name, ""
}

// splitName splits dotted key text on periods outside quotes.
func splitName(name string) []string {
	var (
		parts []string
		quote byte
		start int
	)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '.':
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	return append(parts, name[start:])
}

// trailingNewline returns the index of the last Newline when only
// whitespace follows it, or -1.
func trailingNewline(elements []*tomlcst.Element) int {
	for i := len(elements) - 1; i >= 0; i-- {
		switch elements[i].Kind {
		case tomlcst.KindWhitespace:
			continue
		case tomlcst.KindNewline:
			return i
		default:
			return -1
		}
	}
	return -1
}

// ensureNewline terminates elements with a line break.
func ensureNewline(elements []*tomlcst.Element) []*tomlcst.Element {
	if trailingNewline(elements) < 0 {
		return append(elements, tomlcst.NewNewline(1))
	}
	return elements
}

// splitTrailingBreaks separates the trailing run of newline and whitespace
// tokens from the rest of elements.
func splitTrailingBreaks(elements []*tomlcst.Element) ([]*tomlcst.Element, []*tomlcst.Element) {
	end := len(elements)
	for end > 0 {
		kind := elements[end-1].Kind
		if kind != tomlcst.KindNewline && kind != tomlcst.KindWhitespace {
			break
		}
		end--
	}
	return elements[:end], elements[end:]
}

// forEntries calls fn for every entry of the block with its key text.
func forEntries(block *Block, fn func(key string, entry *tomlcst.Element)) {
	for _, elem := range block.Elements {
		if elem.Kind == tomlcst.KindEntry {
			fn(tomlcst.KeyText(elem), elem)
		}
	}
}

// appendEntry adds entry as a new line of elements, before any trailing
// line breaks so blank lines keep separating the next table.
func appendEntry(elements []*tomlcst.Element, entry *tomlcst.Element) []*tomlcst.Element {
	body, trailing := splitTrailingBreaks(elements)
	out := make([]*tomlcst.Element, 0, len(elements)+3)
	out = append(out, body...)
	out = append(out, tomlcst.NewNewline(1), entry)
	if len(trailing) == 0 {
		return out
	}
	return append(out, trailing...)
}
