package normalize

import (
	"slices"
	"strings"

	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

// keyRun is an entry together with the trivia that follows it up to the
// next entry. The run keyed "" holds the header and anything before the
// first entry.
type keyRun struct {
	key      string
	elements []*tomlcst.Element
}

// ReorderKeys sorts the entries of block by priority. An entry matches a
// priority key when its key equals it or extends it with a dotted suffix;
// several matches are ordered case-insensitively. Unmatched entries keep
// their relative order after all matched ones.
func ReorderKeys(block *Block, priority []string) {
	body, trailing := splitTrailingBreaks(block.Elements)
	runs := splitRuns(body)

	handled := make([]bool, len(runs))
	ordered := make([]keyRun, 0, len(runs))
	for _, want := range priority {
		var matched []int
		for i, run := range runs {
			if !handled[i] && (run.key == want || strings.HasPrefix(run.key, want+".")) {
				matched = append(matched, i)
			}
		}
		slices.SortStableFunc(matched, func(a, b int) int {
			return strings.Compare(keySortText(runs[a].key), keySortText(runs[b].key))
		})
		for _, i := range matched {
			handled[i] = true
			ordered = append(ordered, runs[i])
		}
	}
	for i, run := range runs {
		if !handled[i] {
			ordered = append(ordered, run)
		}
	}

	out := make([]*tomlcst.Element, 0, len(block.Elements)+len(runs))
	for i, run := range ordered {
		elements := run.elements
		if i < len(ordered)-1 {
			elements = ensureNewline(slices.Clone(elements))
		} else if len(trailing) > 0 {
			elements, _ = splitTrailingBreaks(elements)
		}
		out = append(out, elements...)
	}
	block.Elements = append(out, trailing...)
}

func splitRuns(elements []*tomlcst.Element) []keyRun {
	runs := []keyRun{{}}
	for _, elem := range elements {
		if elem.Kind == tomlcst.KindEntry {
			runs = append(runs, keyRun{key: tomlcst.KeyText(elem)})
		}
		last := &runs[len(runs)-1]
		last.elements = append(last.elements, elem)
	}
	if len(runs[0].elements) == 0 {
		runs = runs[1:]
	}
	return runs
}

func keySortText(key string) string {
	return foldCase(strings.ReplaceAll(key, `"`, ""))
}
