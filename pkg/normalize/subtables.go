package normalize

import (
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

// CollapseSubTables moves the entries of every [base.suffix] table into
// [base] as `suffix.key = value`, creating [base] when it is missing.
// Arrays of tables have no dotted-key form and are left alone.
func CollapseSubTables(tables *Tables, base string) {
	prefix := base + "."
	subs := lo.Filter(tables.Blocks(), func(block *Block, _ int) bool {
		return strings.HasPrefix(block.Name, prefix) &&
			len(block.Elements) > 0 && block.Elements[0].Kind == tomlcst.KindTableHeader
	})
	if len(subs) == 0 {
		return
	}

	main, ok := tables.Get(base)
	if !ok {
		main = tables.add(&Block{
			Name:     base,
			Elements: []*tomlcst.Element{tomlcst.NewTableHeader(base), tomlcst.NewNewline(1)},
		})
	}
	baseDepth := len(splitName(base))

	elements := main.Elements
	for _, sub := range subs {
		parts := tomlcst.KeyParts(sub.Elements[0])
		suffix := strings.Join(lo.Map(parts[baseDepth:], func(part string, _ int) string {
			return tomlcst.QuoteKey(part)
		}), ".")

		body := sub.Elements[1:]
		if len(body) > 0 && body[0].Kind == tomlcst.KindNewline {
			body = body[1:]
		}
		if len(body) == 0 {
			sub.Elements = nil
			continue
		}

		elements = singleTrailingBreak(ensureNewline(elements))
		for _, elem := range body {
			if elem.Kind == tomlcst.KindEntry {
				rekey(elem, suffix+"."+tomlcst.KeyText(elem))
			}
			elements = append(elements, elem)
		}
		sub.Elements = nil
	}
	tables.Replace(base, elements)
}

// rekey replaces the key of an entry.
func rekey(entry *tomlcst.Element, key string) {
	for i, child := range entry.Children {
		if child.Kind == tomlcst.KindKey {
			entry.Children[i] = tomlcst.NewKey(key)
			return
		}
	}
}

// singleTrailingBreak shrinks a trailing blank line to a single line break
// so content appended to the block does not start after a gap.
func singleTrailingBreak(elements []*tomlcst.Element) []*tomlcst.Element {
	if at := trailingNewline(elements); at >= 0 && strings.Count(elements[at].Text, "\n") > 1 {
		elements = append(elements[:at:at], tomlcst.NewNewline(1))
	}
	return elements
}

// ExpandInlineTables rewrites every entry of block whose key is prefix or
// starts with prefix and whose value is an inline table as one dotted entry
// per member, recursing into nested inline tables.
func ExpandInlineTables(block *Block, prefix string) {
	var out []*tomlcst.Element
	for _, elem := range block.Elements {
		if elem.Kind == tomlcst.KindEntry {
			key := tomlcst.KeyText(elem)
			if key == prefix || strings.HasPrefix(key, prefix+".") {
				if expanded := expandEntry(key, tomlcst.Inner(tomlcst.ValueOf(elem))); expanded != nil {
					out = append(out, expanded...)
					continue
				}
			}
		}
		out = append(out, elem)
	}
	block.Elements = out
}

// expandEntry returns the dotted entries for an inline table value, or nil
// when value is not a non-empty inline table.
func expandEntry(key string, value *tomlcst.Element) []*tomlcst.Element {
	if value == nil || value.Kind != tomlcst.KindInlineTable || value.First(tomlcst.KindEntry) == nil {
		return nil
	}
	var out []*tomlcst.Element
	for _, member := range value.Children {
		if member.Kind != tomlcst.KindEntry {
			continue
		}
		memberKey := key + "." + strings.Join(lo.Map(tomlcst.KeyParts(member), func(part string, _ int) string {
			return tomlcst.QuoteKey(part)
		}), ".")
		memberValue := tomlcst.ValueOf(member)

		entries := expandEntry(memberKey, tomlcst.Inner(memberValue))
		if entries == nil {
			entries = []*tomlcst.Element{tomlcst.NewEntry(memberKey, memberValue)}
		}
		if len(out) > 0 {
			out = append(out, tomlcst.NewNewline(1))
		}
		out = append(out, entries...)
	}
	return out
}
