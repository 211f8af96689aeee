package tomlcst

import (
	"fmt"
	"strings"
)

// FragmentError is raised (as a panic value) when a generated snippet does
// not parse. It always indicates a programming error in the caller.
type FragmentError struct {
	Source string
	Err    error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("invalid toml fragment %q: %v", e.Source, e.Err)
}

func (e *FragmentError) Unwrap() error {
	return e.Err
}

// mustParse parses src or panics with *FragmentError.
func mustParse(src string) *Element {
	root, err := Parse(src)
	if err != nil {
		panic(&FragmentError{Source: src, Err: err})
	}
	return root
}

func mustFirst(src string, root *Element, kind Kind) *Element {
	if elem := root.First(kind); elem != nil {
		return elem
	}
	panic(&FragmentError{Source: src, Err: fmt.Errorf("no %s element", kind)})
}

// NewBasicString returns a basic string token holding s.
func NewBasicString(s string) *Element {
	src := "x = " + QuoteBasic(s)
	entry := mustFirst(src, mustParse(src), KindEntry)
	return Inner(ValueOf(entry))
}

// NewComma returns a comma token.
func NewComma() *Element {
	return NewToken(KindComma, ",")
}

// NewWhitespace returns a whitespace token.
func NewWhitespace(s string) *Element {
	return NewToken(KindWhitespace, s)
}

// NewNewline returns a newline token holding n line breaks.
func NewNewline(n int) *Element {
	return NewToken(KindNewline, strings.Repeat("\n", max(n, 1)))
}

// NewKey parses key, a possibly dotted and quoted key such as `a."b.c"`.
func NewKey(key string) *Element {
	src := key + " = 0"
	entry := mustFirst(src, mustParse(src), KindEntry)
	return entry.First(KindKey)
}

// NewEntry builds `key = value`. The value may be a Value node or the
// element it should wrap; it is cloned.
func NewEntry(key string, value *Element) *Element {
	val := value.Clone()
	if val.Kind != KindValue {
		val = NewNode(KindValue, val)
	}
	return NewNode(KindEntry,
		NewKey(key),
		NewWhitespace(" "),
		NewToken(KindEquals, "="),
		NewWhitespace(" "),
		val,
	)
}

// NewArrayEntry builds `key = [ ... ]` with one basic string per value,
// each on its own line with a trailing comma.
func NewArrayEntry(key string, values []string) *Element {
	var sb strings.Builder
	sb.WriteString(key)
	sb.WriteString(" = [\n")
	for _, value := range values {
		sb.WriteString("  ")
		sb.WriteString(QuoteBasic(value))
		sb.WriteString(",\n")
	}
	sb.WriteString("]")
	src := sb.String()
	return mustFirst(src, mustParse(src), KindEntry)
}

// NewTableHeader builds a `[name]` header; name is dotted key text.
func NewTableHeader(name string) *Element {
	src := "[" + name + "]"
	return mustFirst(src, mustParse(src), KindTableHeader)
}
