package tomlcst

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errNotString = errors.New("not a string token")

// StringValue decodes the content of a string token.
// Escape sequences are resolved for basic strings; the leading newline of
// multi-line strings is trimmed as TOML requires.
func StringValue(tok *Element) (string, error) {
	if tok == nil || !tok.Kind.IsString() {
		return "", errNotString
	}
	text := tok.Text
	switch tok.Kind {
	case KindBasicString:
		return unescape(text[1:len(text)-1], false)
	case KindLiteralString:
		return text[1 : len(text)-1], nil
	case KindMultiLineBasicString:
		return unescape(trimLeadingNewline(text[3:len(text)-3]), true)
	case KindMultiLineLiteralString:
		return trimLeadingNewline(text[3 : len(text)-3]), nil
	default:
		return "", errNotString
	}
}

// EscapeBasic escapes s for use inside a basic (double-quoted) string.
func EscapeBasic(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// QuoteBasic returns s as a basic string literal, including quotes.
func QuoteBasic(s string) string {
	return `"` + EscapeBasic(s) + `"`
}

// QuoteKey returns part as a key component: bare when every character is
// allowed in a bare key, a basic string otherwise.
func QuoteKey(part string) string {
	if part == "" {
		return `""`
	}
	for i := 0; i < len(part); i++ {
		if !isBareKeyChar(part[i]) {
			return QuoteBasic(part)
		}
	}
	return part
}

func trimLeadingNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}

func unescape(s string, multiline bool) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", errors.New("dangling escape")
		}
		switch s[i] {
		case 'b':
			sb.WriteByte('\b')
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'f':
			sb.WriteByte('\f')
		case 'r':
			sb.WriteByte('\r')
		case 'e':
			sb.WriteByte(0x1b)
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'x', 'u', 'U':
			width := escapeWidth(s[i])
			if i+1+width > len(s) {
				return "", errors.New("short unicode escape")
			}
			code, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(code)) {
				return "", fmt.Errorf("invalid unicode escape %q", s[i-1:i+1+width])
			}
			sb.WriteRune(rune(code))
			i += width
		case ' ', '\t', '\r', '\n':
			if !multiline {
				return "", fmt.Errorf("invalid escape %q", s[i-1:i+1])
			}
			// Line-ending backslash: skip all whitespace up to the next
			// non-whitespace character.
			j := i
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j < len(s) && s[j] != '\n' && s[j] != '\r' {
				return "", fmt.Errorf("invalid escape %q", s[i-1:i+1])
			}
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			i = j - 1
		default:
			return "", fmt.Errorf("invalid escape %q", s[i-1:i+1])
		}
	}
	return sb.String(), nil
}

func escapeWidth(c byte) int {
	switch c {
	case 'x':
		return 2
	case 'u':
		return 4
	default:
		return 8
	}
}
