package normalize

import (
	"slices"

	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

// stringArray returns the array held by value when every member is a
// string, or nil.
func stringArray(value *tomlcst.Element) *tomlcst.Element {
	array := tomlcst.Inner(value)
	if array == nil || array.Kind != tomlcst.KindArray {
		return nil
	}
	for _, child := range array.Children {
		if child.Kind != tomlcst.KindValue {
			continue
		}
		if inner := tomlcst.Inner(child); inner == nil || !inner.Kind.IsString() {
			return nil
		}
	}
	return array
}

// memberText decodes the string held by an array member.
func memberText(member *tomlcst.Element) (string, bool) {
	inner := tomlcst.Inner(member)
	if inner == nil || !inner.Kind.IsString() {
		return "", false
	}
	text, err := tomlcst.StringValue(inner)
	if err != nil {
		return "", false
	}
	return text, true
}

// TransformArray replaces each string member of the array held by value
// with transform(text). Members whose text does not change keep their
// original token. Arrays with a non-string member are left untouched.
func TransformArray(value *tomlcst.Element, transform func(string) string) {
	array := stringArray(value)
	if array == nil {
		return
	}
	for _, member := range array.Children {
		if member.Kind != tomlcst.KindValue {
			continue
		}
		text, ok := memberText(member)
		if !ok {
			continue
		}
		if out := transform(text); out != text {
			replaceScalar(member, tomlcst.NewBasicString(out))
		}
	}
}

// replaceScalar swaps the scalar held by a Value node.
func replaceScalar(value, scalar *tomlcst.Element) {
	for i, child := range value.Children {
		if !child.Kind.IsTrivia() {
			value.Children[i] = scalar
			return
		}
	}
}

// arrayUnit is a member with its comma, the comments above it and its
// same-line trailing comment.
type arrayUnit struct {
	key      string
	elements []*tomlcst.Element
}

// SortArray orders the string members of the array held by value by the
// natural order of key(text). Comments stay attached to their member and
// every member gets a trailing comma. Arrays with a non-string member are
// left untouched.
func SortArray(value *tomlcst.Element, key func(string) string) {
	array := stringArray(value)
	if array == nil || array.First(tomlcst.KindValue) == nil {
		return
	}

	var (
		head, tail, pending []*tomlcst.Element
		units               []arrayUnit
		current             string
		open                bool // a member is waiting for its line to end
		afterValue          bool
		afterBracket        bool
	)
	flush := func() {
		units = append(units, arrayUnit{key: current, elements: pending})
		pending = nil
	}

	for _, child := range array.Children {
		if afterValue {
			afterValue = false
			if child.Kind != tomlcst.KindComma {
				pending = append(pending, tomlcst.NewComma())
			}
		}
		if afterBracket {
			if child.Kind == tomlcst.KindNewline || child.Kind == tomlcst.KindWhitespace {
				continue
			}
			afterBracket = false
		}

		switch child.Kind {
		case tomlcst.KindBracketOpen:
			head = append(head, child, tomlcst.NewNewline(1))
			afterBracket = true
		case tomlcst.KindBracketClose:
			if open {
				flush()
			} else {
				tail = append(tail, pending...)
				pending = nil
			}
			tail = append(tail, child)
		case tomlcst.KindValue:
			if open {
				pending = append(pending, tomlcst.NewNewline(1))
				flush()
			}
			text, _ := memberText(child)
			current = foldCase(key(text))
			open = true
			afterValue = true
			pending = append(pending, child)
		case tomlcst.KindNewline:
			pending = append(pending, child)
			if open {
				flush()
				open = false
			}
		default:
			pending = append(pending, child)
		}
	}

	for i := range units {
		units[i].elements = ensureNewline(units[i].elements)
	}
	slices.SortStableFunc(units, func(a, b arrayUnit) int {
		return naturalCompare(a.key, b.key)
	})

	out := make([]*tomlcst.Element, 0, len(array.Children)+len(units)+2)
	out = append(out, head...)
	for _, unit := range units {
		out = append(out, unit.elements...)
	}
	out = append(out, tail...)
	array.SetChildren(out)
}
