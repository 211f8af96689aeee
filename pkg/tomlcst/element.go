// Package tomlcst provides a lossless concrete syntax tree for TOML documents.
// Every byte of the source, including whitespace and comments, is held by a
// token, so writing an unmodified tree back out reproduces the input exactly.
// Structural edits are expressed as splices on a node's child slice.
package tomlcst

import (
	"strings"
)

// Element is a node or a token of the syntax tree.
// Nodes have Children and an empty Text; tokens have Text and no Children.
type Element struct {
	Kind     Kind
	Text     string
	Children []*Element
}

// NewToken creates a token element.
func NewToken(kind Kind, text string) *Element {
	return &Element{Kind: kind, Text: text}
}

// NewNode creates a node element with the given children.
func NewNode(kind Kind, children ...*Element) *Element {
	return &Element{Kind: kind, Children: children}
}

// IsNode returns true if the element holds children.
func (e *Element) IsNode() bool {
	return e.Kind.IsNode()
}

// String returns the source text covered by the element.
func (e *Element) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Element) write(sb *strings.Builder) {
	if !e.IsNode() {
		sb.WriteString(e.Text)
		return
	}
	for _, child := range e.Children {
		child.write(sb)
	}
}

// Splice replaces Children[start:end] with repl.
func (e *Element) Splice(start, end int, repl ...*Element) {
	tail := append([]*Element(nil), e.Children[end:]...)
	e.Children = append(append(e.Children[:start], repl...), tail...)
}

// SetChildren replaces all children.
func (e *Element) SetChildren(children []*Element) {
	e.Splice(0, len(e.Children), children...)
}

// First returns the first direct child of the given kind, or nil.
func (e *Element) First(kind Kind) *Element {
	for _, child := range e.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	clone := &Element{Kind: e.Kind, Text: e.Text}
	if len(e.Children) > 0 {
		clone.Children = make([]*Element, len(e.Children))
		for i, child := range e.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// KeyText returns the key with inner whitespace removed, e.g. `a . "b"` → `a."b"`.
// It accepts a Key node, or an Entry/TableHeader/ArrayHeader holding one.
func KeyText(e *Element) string {
	key := e
	if e.Kind != KindKey {
		key = e.First(KindKey)
		if key == nil {
			return ""
		}
	}
	var sb strings.Builder
	for _, part := range key.Children {
		if part.Kind == KindWhitespace {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// KeyParts returns the decoded components of a dotted key.
func KeyParts(e *Element) []string {
	key := e
	if e.Kind != KindKey {
		key = e.First(KindKey)
		if key == nil {
			return nil
		}
	}
	var parts []string
	for _, part := range key.Children {
		switch part.Kind {
		case KindBareKey:
			parts = append(parts, part.Text)
		case KindBasicString, KindLiteralString:
			text, _ := StringValue(part)
			parts = append(parts, text)
		default:
		}
	}
	return parts
}

// ValueOf returns the Value node of an entry, or nil.
func ValueOf(entry *Element) *Element {
	return entry.First(KindValue)
}

// Inner returns the first non-trivia child of a Value node: a scalar token,
// an Array node or an InlineTable node.
func Inner(value *Element) *Element {
	if value == nil {
		return nil
	}
	for _, child := range value.Children {
		if !child.Kind.IsTrivia() {
			return child
		}
	}
	return nil
}
