package tomlcst

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSyntax is the sentinel wrapped by every *SyntaxError.
var ErrSyntax = errors.New("toml syntax error")

// SyntaxError reports malformed TOML at a 1-based line and column.
// Column counts bytes.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

//nolint:gochecknoglobals // Compiled once.
var (
	integerPattern = regexp.MustCompile(
		`^(?:[+-]?(?:0|[1-9](?:_?[0-9])*)|0x[0-9A-Fa-f](?:_?[0-9A-Fa-f])*|0o[0-7](?:_?[0-7])*|0b[01](?:_?[01])*)$`)
	floatPattern = regexp.MustCompile(
		`^(?:[+-]?(?:0|[1-9](?:_?[0-9])*)(?:(?:\.[0-9](?:_?[0-9])*)(?:[eE][+-]?[0-9](?:_?[0-9])*)?|[eE][+-]?[0-9](?:_?[0-9])*)|[+-]?(?:inf|nan))$`)
	dateTimePattern = regexp.MustCompile(
		`^(?:[0-9]{4}-[0-9]{2}-[0-9]{2}(?:[Tt ][0-9]{2}:[0-9]{2}(?::[0-9]{2}(?:\.[0-9]+)?)?(?:[Zz]|[+-][0-9]{2}:[0-9]{2})?)?|[0-9]{2}:[0-9]{2}(?::[0-9]{2}(?:\.[0-9]+)?)?)$`)
	datePrefixPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// Parse builds a lossless syntax tree from TOML source.
// The returned root's String method reproduces src exactly.
func Parse(src string) (*Element, error) {
	p := &parser{src: src}
	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	line, col := 1, 1
	for i := 0; i < offset && i < len(p.src); i++ {
		if p.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *parser) atNewline() bool {
	return p.peek() == '\n' || p.hasPrefix("\r\n")
}

func (p *parser) parseRoot() (*Element, error) {
	root := NewNode(KindRoot)

	if p.hasPrefix("\ufeff") {
		root.Children = append(root.Children, NewToken(KindWhitespace, "\ufeff"))
		p.pos += len("\ufeff")
	}

	for !p.eof() {
		if trivia := p.trivia(true); trivia != nil {
			root.Children = append(root.Children, trivia)
			continue
		}

		var (
			elem *Element
			err  error
		)
		switch {
		case p.peek() == '[':
			elem, err = p.parseHeader()
		case isKeyStart(p.peek()):
			elem, err = p.parseEntry()
		default:
			return nil, p.errorf(p.pos, "unexpected character %q", p.peek())
		}
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, elem)

		// Only whitespace and a comment may follow on the same line.
		for !p.eof() && !p.atNewline() {
			trivia := p.trivia(false)
			if trivia == nil {
				return nil, p.errorf(p.pos, "expected newline, found %q", p.peek())
			}
			root.Children = append(root.Children, trivia)
		}
	}

	return root, nil
}

// trivia consumes one whitespace run, comment or (when allowNewline) newline
// run. It returns nil when the input does not start with trivia.
func (p *parser) trivia(allowNewline bool) *Element {
	switch c := p.peek(); {
	case c == ' ' || c == '\t':
		start := p.pos
		for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
			p.pos++
		}
		return NewToken(KindWhitespace, p.src[start:p.pos])
	case c == '#':
		start := p.pos
		for !p.eof() && !p.atNewline() {
			p.pos++
		}
		return NewToken(KindComment, p.src[start:p.pos])
	case allowNewline && p.atNewline():
		start := p.pos
		for !p.eof() {
			switch {
			case p.peek() == '\n':
				p.pos++
			case p.hasPrefix("\r\n"):
				p.pos += 2
			default:
				return NewToken(KindNewline, p.src[start:p.pos])
			}
		}
		return NewToken(KindNewline, p.src[start:p.pos])
	default:
		return nil
	}
}

func (p *parser) whitespace() *Element {
	if c := p.peek(); c != ' ' && c != '\t' {
		return nil
	}
	return p.trivia(false)
}

func (p *parser) parseHeader() (*Element, error) {
	kind, open, closing := KindTableHeader, "[", "]"
	if p.hasPrefix("[[") {
		kind, open, closing = KindArrayHeader, "[[", "]]"
	}
	header := NewNode(kind, NewToken(KindBracketOpen, open))
	p.pos += len(open)

	if ws := p.whitespace(); ws != nil {
		header.Children = append(header.Children, ws)
	}
	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}
	header.Children = append(header.Children, key)
	if ws := p.whitespace(); ws != nil {
		header.Children = append(header.Children, ws)
	}

	if !p.hasPrefix(closing) {
		return nil, p.errorf(p.pos, "expected %q to close table header", closing)
	}
	header.Children = append(header.Children, NewToken(KindBracketClose, closing))
	p.pos += len(closing)

	return header, nil
}

func (p *parser) parseEntry() (*Element, error) {
	entry := NewNode(KindEntry)

	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}
	entry.Children = append(entry.Children, key)
	if ws := p.whitespace(); ws != nil {
		entry.Children = append(entry.Children, ws)
	}

	if p.peek() != '=' {
		return nil, p.errorf(p.pos, "expected '=' after key %q", KeyText(key))
	}
	entry.Children = append(entry.Children, NewToken(KindEquals, "="))
	p.pos++
	if ws := p.whitespace(); ws != nil {
		entry.Children = append(entry.Children, ws)
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	entry.Children = append(entry.Children, NewNode(KindValue, value))

	return entry, nil
}

func (p *parser) parseKey() (*Element, error) {
	key := NewNode(KindKey)

	part, err := p.parseKeyPart()
	if err != nil {
		return nil, err
	}
	key.Children = append(key.Children, part)

	for {
		mark := p.pos
		ws := p.whitespace()
		if p.peek() != '.' {
			// Whitespace after the last part belongs to the enclosing node.
			p.pos = mark
			return key, nil
		}
		if ws != nil {
			key.Children = append(key.Children, ws)
		}
		key.Children = append(key.Children, NewToken(KindPeriod, "."))
		p.pos++
		if ws := p.whitespace(); ws != nil {
			key.Children = append(key.Children, ws)
		}
		part, err := p.parseKeyPart()
		if err != nil {
			return nil, err
		}
		key.Children = append(key.Children, part)
	}
}

func (p *parser) parseKeyPart() (*Element, error) {
	switch c := p.peek(); {
	case c == '"':
		if p.hasPrefix(`"""`) {
			return nil, p.errorf(p.pos, "multi-line strings cannot be keys")
		}
		return p.parseBasicString()
	case c == '\'':
		if p.hasPrefix("'''") {
			return nil, p.errorf(p.pos, "multi-line strings cannot be keys")
		}
		return p.parseLiteralString()
	case isBareKeyChar(c):
		start := p.pos
		for !p.eof() && isBareKeyChar(p.peek()) {
			p.pos++
		}
		return NewToken(KindBareKey, p.src[start:p.pos]), nil
	default:
		return nil, p.errorf(p.pos, "expected a key")
	}
}

func (p *parser) parseValue() (*Element, error) {
	switch c := p.peek(); {
	case p.eof():
		return nil, p.errorf(p.pos, "expected a value")
	case p.hasPrefix(`"""`):
		return p.parseMultiLineString(`"""`, KindMultiLineBasicString)
	case c == '"':
		return p.parseBasicString()
	case p.hasPrefix("'''"):
		return p.parseMultiLineString("'''", KindMultiLineLiteralString)
	case c == '\'':
		return p.parseLiteralString()
	case c == '[':
		return p.parseArray()
	case c == '{':
		return p.parseInlineTable()
	case p.hasPrefix("true") && !isBareKeyChar(p.byteAt(p.pos+len("true"))):
		p.pos += len("true")
		return NewToken(KindBool, "true"), nil
	case p.hasPrefix("false") && !isBareKeyChar(p.byteAt(p.pos+len("false"))):
		p.pos += len("false")
		return NewToken(KindBool, "false"), nil
	default:
		return p.parseNumberOrDate()
	}
}

func (p *parser) byteAt(i int) byte {
	if i >= len(p.src) {
		return 0
	}
	return p.src[i]
}

func (p *parser) parseBasicString() (*Element, error) {
	start := p.pos
	p.pos++ // opening quote
	for {
		switch {
		case p.eof() || p.atNewline():
			return nil, p.errorf(start, "unterminated string")
		case p.peek() == '\\':
			p.pos += 2
		case p.peek() == '"':
			p.pos++
			return NewToken(KindBasicString, p.src[start:p.pos]), nil
		default:
			p.pos++
		}
	}
}

func (p *parser) parseLiteralString() (*Element, error) {
	start := p.pos
	p.pos++
	for {
		switch {
		case p.eof() || p.atNewline():
			return nil, p.errorf(start, "unterminated literal string")
		case p.peek() == '\'':
			p.pos++
			return NewToken(KindLiteralString, p.src[start:p.pos]), nil
		default:
			p.pos++
		}
	}
}

func (p *parser) parseMultiLineString(delim string, kind Kind) (*Element, error) {
	start := p.pos
	p.pos += len(delim)
	quote := delim[0]
	for {
		switch {
		case p.eof():
			return nil, p.errorf(start, "unterminated multi-line string")
		case quote == '"' && p.peek() == '\\':
			p.pos += 2
		case p.hasPrefix(delim):
			p.pos += len(delim)
			// Up to two quotes directly before the delimiter are content.
			for extra := 0; extra < 2 && p.peek() == quote; extra++ {
				p.pos++
			}
			return NewToken(kind, p.src[start:p.pos]), nil
		default:
			p.pos++
		}
	}
}

func (p *parser) parseNumberOrDate() (*Element, error) {
	start := p.pos
	p.scanScalarRun()

	// Local date-time with a space separator: "1979-05-27 07:32:00".
	if datePrefixPattern.MatchString(p.src[start:p.pos]) && p.peek() == ' ' &&
		isDigit(p.byteAt(p.pos+1)) && isDigit(p.byteAt(p.pos+2)) && p.byteAt(p.pos+3) == ':' {
		p.pos++
		p.scanScalarRun()
	}

	text := p.src[start:p.pos]
	switch {
	case text == "":
		return nil, p.errorf(start, "expected a value, found %q", p.peek())
	case integerPattern.MatchString(text):
		return NewToken(KindInteger, text), nil
	case floatPattern.MatchString(text):
		return NewToken(KindFloat, text), nil
	case dateTimePattern.MatchString(text):
		return NewToken(KindDateTime, text), nil
	default:
		return nil, p.errorf(start, "invalid value %q", text)
	}
}

func (p *parser) scanScalarRun() {
	for !p.eof() {
		c := p.peek()
		if isBareKeyChar(c) || c == '+' || c == '.' || c == ':' {
			p.pos++
			continue
		}
		return
	}
}

func (p *parser) parseArray() (*Element, error) {
	open := p.pos
	array := NewNode(KindArray, NewToken(KindBracketOpen, "["))
	p.pos++

	expectValue := true
	for {
		if trivia := p.trivia(true); trivia != nil {
			array.Children = append(array.Children, trivia)
			continue
		}
		switch {
		case p.eof():
			return nil, p.errorf(open, "unterminated array")
		case p.peek() == ']':
			array.Children = append(array.Children, NewToken(KindBracketClose, "]"))
			p.pos++
			return array, nil
		case p.peek() == ',':
			if expectValue {
				return nil, p.errorf(p.pos, "expected a value before ','")
			}
			array.Children = append(array.Children, NewToken(KindComma, ","))
			p.pos++
			expectValue = true
		default:
			if !expectValue {
				return nil, p.errorf(p.pos, "expected ',' or ']' in array")
			}
			value, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			array.Children = append(array.Children, NewNode(KindValue, value))
			expectValue = false
		}
	}
}

func (p *parser) parseInlineTable() (*Element, error) {
	open := p.pos
	table := NewNode(KindInlineTable, NewToken(KindBraceOpen, "{"))
	p.pos++

	expectEntry := true
	sawEntry := false
	for {
		if ws := p.whitespace(); ws != nil {
			table.Children = append(table.Children, ws)
			continue
		}
		switch {
		case p.eof():
			return nil, p.errorf(open, "unterminated inline table")
		case p.atNewline():
			return nil, p.errorf(p.pos, "newline inside inline table")
		case p.peek() == '}':
			if expectEntry && sawEntry {
				return nil, p.errorf(p.pos, "trailing comma in inline table")
			}
			table.Children = append(table.Children, NewToken(KindBraceClose, "}"))
			p.pos++
			return table, nil
		case p.peek() == ',':
			if expectEntry {
				return nil, p.errorf(p.pos, "expected a key before ','")
			}
			table.Children = append(table.Children, NewToken(KindComma, ","))
			p.pos++
			expectEntry = true
		default:
			if !expectEntry {
				return nil, p.errorf(p.pos, "expected ',' or '}' in inline table")
			}
			entry, err := p.parseEntry()
			if err != nil {
				return nil, err
			}
			table.Children = append(table.Children, entry)
			expectEntry = false
			sawEntry = true
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_' || c == '-'
}

func isKeyStart(c byte) bool {
	return isBareKeyChar(c) || c == '"' || c == '\''
}
