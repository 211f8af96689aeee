package pep508

import (
	"strings"
)

// Marker is an environment marker expression tree.
type Marker struct {
	// Leaf comparison; set when Op is a comparison operator.
	Left, Op, Right string

	// Boolean combination; set when Op is "and" or "or".
	Children []*Marker

	// Parenthesized records that the expression was grouped in the source.
	Parenthesized bool
}

// String renders the marker with single spaces between tokens and
// double-quoted literals.
func (m *Marker) String() string {
	var out string
	if m.Op == "and" || m.Op == "or" {
		parts := make([]string, len(m.Children))
		for i, child := range m.Children {
			parts[i] = child.String()
		}
		out = strings.Join(parts, " "+m.Op+" ")
	} else {
		out = m.Left + " " + m.Op + " " + m.Right
	}
	if m.Parenthesized {
		return "(" + out + ")"
	}
	return out
}

//nolint:gochecknoglobals // Lookup tables.
var (
	markerVariables = map[string]string{
		"python_version":                 "python_version",
		"python_full_version":            "python_full_version",
		"os_name":                        "os_name",
		"sys_platform":                   "sys_platform",
		"platform_release":               "platform_release",
		"platform_system":                "platform_system",
		"platform_version":               "platform_version",
		"platform_machine":               "platform_machine",
		"platform_python_implementation": "platform_python_implementation",
		"implementation_name":            "implementation_name",
		"implementation_version":         "implementation_version",
		"extra":                          "extra",
		"dependency_groups":              "dependency_groups",
		"extras":                         "extras",
		// Legacy spellings.
		"os.name":                        "os_name",
		"sys.platform":                   "sys_platform",
		"platform.version":               "platform_version",
		"platform.machine":               "platform_machine",
		"platform.python_implementation": "platform_python_implementation",
		"python_implementation":          "platform_python_implementation",
	}
	markerOperators = []string{"===", "~=", "==", "!=", "<=", ">=", "<", ">"}
)

func parseMarker(s *scanner) (*Marker, error) {
	s.skipSpace()
	marker, err := parseMarkerOr(s)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	return marker, nil
}

func parseMarkerOr(s *scanner) (*Marker, error) {
	return parseMarkerBool(s, "or", parseMarkerAnd)
}

func parseMarkerAnd(s *scanner) (*Marker, error) {
	return parseMarkerBool(s, "and", parseMarkerAtom)
}

func parseMarkerBool(s *scanner, op string, next func(*scanner) (*Marker, error)) (*Marker, error) {
	first, err := next(s)
	if err != nil {
		return nil, err
	}
	children := []*Marker{first}
	for {
		mark := s.pos
		s.skipSpace()
		if !s.takeKeyword(op) {
			s.pos = mark
			break
		}
		child, err := next(s)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if len(children) == 1 {
		return first, nil
	}
	return &Marker{Op: op, Children: children}, nil
}

func parseMarkerAtom(s *scanner) (*Marker, error) {
	s.skipSpace()
	if s.peek() == '(' {
		s.pos++
		inner, err := parseMarkerOr(s)
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if s.peek() != ')' {
			return nil, s.errorf("expected ')' in marker")
		}
		s.pos++
		grouped := *inner
		grouped.Parenthesized = true
		return &grouped, nil
	}

	left, err := parseMarkerValue(s)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	op, err := parseMarkerOp(s)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	right, err := parseMarkerValue(s)
	if err != nil {
		return nil, err
	}
	return &Marker{Left: left, Op: op, Right: right}, nil
}

func parseMarkerOp(s *scanner) (string, error) {
	if op := s.takeOperator(markerOperators); op != "" {
		return op, nil
	}
	if s.takeKeyword("in") {
		return "in", nil
	}
	if s.takeKeyword("not") {
		s.skipSpace()
		if s.takeKeyword("in") {
			return "not in", nil
		}
	}
	return "", s.errorf("expected a marker operator")
}

func parseMarkerValue(s *scanner) (string, error) {
	switch quote := s.peek(); quote {
	case '"', '\'':
		s.pos++
		start := s.pos
		for !s.eof() && s.peek() != quote {
			s.pos++
		}
		if s.eof() {
			return "", s.errorf("unterminated string in marker")
		}
		value := s.src[start:s.pos]
		s.pos++
		if strings.Contains(value, `"`) {
			return "'" + value + "'", nil
		}
		return `"` + value + `"`, nil
	default:
		name := s.takeWhile(func(c byte) bool {
			return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '.'
		})
		variable, ok := markerVariables[name]
		if !ok {
			return "", s.errorf("unknown marker variable %q", name)
		}
		return variable, nil
	}
}

// takeKeyword consumes word when it is not followed by an identifier character.
func (s *scanner) takeKeyword(word string) bool {
	if !strings.HasPrefix(s.src[s.pos:], word) {
		return false
	}
	end := s.pos + len(word)
	if end < len(s.src) && isNameChar(s.src[end]) {
		return false
	}
	s.pos = end
	return true
}
