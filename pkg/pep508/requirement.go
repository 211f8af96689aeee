package pep508

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidRequirement is wrapped by every parse failure.
var ErrInvalidRequirement = errors.New("invalid requirement")

// Specifier is a single version clause such as ">=1.5".
type Specifier struct {
	Operator string
	Version  string
}

func (s Specifier) String() string {
	return s.Operator + s.Version
}

// Requirement is a parsed dependency specifier.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers []Specifier
	URL        string
	Marker     *Marker
}

// String renders the requirement in canonical form: extras and specifiers
// sorted, no insignificant whitespace, markers re-spaced.
func (r *Requirement) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)

	if len(r.Extras) > 0 {
		extras := slices.Clone(r.Extras)
		slices.Sort(extras)
		extras = slices.Compact(extras)
		sb.WriteString("[" + strings.Join(extras, ",") + "]")
	}

	if len(r.Specifiers) > 0 {
		specs := make([]string, len(r.Specifiers))
		for i, spec := range r.Specifiers {
			specs[i] = spec.String()
		}
		slices.Sort(specs)
		sb.WriteString(strings.Join(specs, ","))
	}

	if r.URL != "" {
		sb.WriteString(" @ " + r.URL)
		if r.Marker != nil {
			sb.WriteString(" ")
		}
	}

	if r.Marker != nil {
		sb.WriteString("; " + r.Marker.String())
	}

	return sb.String()
}

// Normalize parses req and returns its canonical form. Unless
// keepFullVersion is set, trailing ".0" groups are dropped from ">=" and
// "==" versions.
func Normalize(req string, keepFullVersion bool) (string, error) {
	parsed, err := Parse(req)
	if err != nil {
		return "", err
	}
	parsed.Name = CanonicalName(parsed.Name)
	if !keepFullVersion {
		for i, spec := range parsed.Specifiers {
			if spec.Operator == ">=" || spec.Operator == "==" {
				parsed.Specifiers[i].Version = stripTrailingZeros(spec.Version)
			}
		}
	}
	return parsed.String(), nil
}

func stripTrailingZeros(version string) string {
	for strings.HasSuffix(version, ".0") {
		version = strings.TrimSuffix(version, ".0")
	}
	return version
}

// Parse parses a PEP 508 dependency specifier.
func Parse(req string) (*Requirement, error) {
	s := &scanner{src: req}
	r := &Requirement{}

	s.skipSpace()
	name := s.takeWhile(isNameChar)
	if !validName.MatchString(name) {
		return nil, s.errorf("expected a project name")
	}
	r.Name = name

	s.skipSpace()
	if s.peek() == '[' {
		extras, err := s.parseExtras()
		if err != nil {
			return nil, err
		}
		r.Extras = extras
		s.skipSpace()
	}

	switch {
	case s.peek() == '@':
		s.pos++
		s.skipSpace()
		r.URL = s.takeWhile(func(c byte) bool { return !isSpace(c) })
		if r.URL == "" {
			return nil, s.errorf("expected a URL after '@'")
		}
		// A marker after a URL must be separated by whitespace.
		if s.peek() == ';' {
			return nil, s.errorf("expected whitespace before ';' after URL")
		}
		s.skipSpace()
	case s.peek() == '(':
		s.pos++
		specs, err := s.parseSpecifiers()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.peek() != ')' {
			return nil, s.errorf("expected ')' to close specifiers")
		}
		s.pos++
		r.Specifiers = specs
		s.skipSpace()
	case isOperatorStart(s.peek()):
		specs, err := s.parseSpecifiers()
		if err != nil {
			return nil, err
		}
		r.Specifiers = specs
		s.skipSpace()
	}

	if s.peek() == ';' {
		s.pos++
		marker, err := parseMarker(s)
		if err != nil {
			return nil, err
		}
		r.Marker = marker
		s.skipSpace()
	}

	if !s.eof() {
		return nil, s.errorf("unexpected %q", s.src[s.pos:])
	}
	return r, nil
}

func (s *scanner) parseExtras() ([]string, error) {
	s.pos++ // '['
	var extras []string
	for {
		s.skipSpace()
		if s.peek() == ']' && len(extras) == 0 {
			s.pos++
			return extras, nil
		}
		extra := s.takeWhile(isNameChar)
		if !validName.MatchString(extra) {
			return nil, s.errorf("expected an extra name")
		}
		extras = append(extras, CanonicalName(extra))
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return extras, nil
		default:
			return nil, s.errorf("expected ',' or ']' in extras")
		}
	}
}

//nolint:gochecknoglobals // Longest operators first.
var versionOperators = []string{"===", "~=", "==", "!=", "<=", ">=", "<", ">"}

func (s *scanner) parseSpecifiers() ([]Specifier, error) {
	var specs []Specifier
	for {
		s.skipSpace()
		op := s.takeOperator(versionOperators)
		if op == "" {
			return nil, s.errorf("expected a version operator")
		}
		s.skipSpace()
		version := s.takeWhile(isVersionChar)
		if version == "" {
			return nil, s.errorf("expected a version after %q", op)
		}
		if strings.Contains(version, "*") && op != "==" && op != "!=" {
			return nil, s.errorf("wildcard versions require '==' or '!='")
		}
		specs = append(specs, Specifier{Operator: op, Version: version})

		mark := s.pos
		s.skipSpace()
		if s.peek() != ',' {
			s.pos = mark
			return specs, nil
		}
		s.pos++
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%w %q at position %d: %s", ErrInvalidRequirement, s.src, s.pos, fmt.Sprintf(format, args...))
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) takeWhile(pred func(byte) bool) string {
	start := s.pos
	for !s.eof() && pred(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) takeOperator(ops []string) string {
	for _, op := range ops {
		if strings.HasPrefix(s.src[s.pos:], op) {
			s.pos += len(op)
			return op
		}
	}
	return ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '.'
}

func isVersionChar(c byte) bool {
	return isNameChar(c) || c == '*' || c == '+' || c == '!'
}

func isOperatorStart(c byte) bool {
	return c == '<' || c == '>' || c == '=' || c == '!' || c == '~'
}
