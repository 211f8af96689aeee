package normalize

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

const (
	pythonClassifierPrefix = "Programming Language :: Python :: "
	pythonOnlyClassifier   = pythonClassifierPrefix + "3 :: Only"
)

//nolint:gochecknoglobals // Compiled once.
var requiresPythonClause = regexp.MustCompile(`^(<|<=|==|!=|>=|>)3\.(\d+)`)

// pythonRange is the set of Python 3 minor versions a project supports.
type pythonRange struct {
	minMinor int
	maxMinor int
	omit     map[int]bool
}

// checkPythonVersions rejects configured versions outside Python 3.
func checkPythonVersions(versions ...config.PythonVersion) error {
	for _, version := range versions {
		if version.Major != 3 {
			return fmt.Errorf("%w: %s", ErrUnsupportedPython, version)
		}
	}
	return nil
}

// parseRequiresPython resolves a requires-python constraint. Clauses that do
// not name a Python 3 minor version are ignored; the defaults fill in
// missing bounds.
func parseRequiresPython(constraint string, minDefault, maxDefault config.PythonVersion) pythonRange {
	var mins, maxs []int
	omit := make(map[int]bool)

	compact := strings.Join(strings.Fields(constraint), "")
	for _, clause := range strings.Split(compact, ",") {
		match := requiresPythonClause.FindStringSubmatch(clause)
		if match == nil {
			continue
		}
		minor, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		switch match[1] {
		case "==":
			mins = append(mins, minor)
			maxs = append(maxs, minor)
		case ">=":
			mins = append(mins, minor)
		case ">":
			mins = append(mins, minor+1)
		case "<=":
			maxs = append(maxs, minor)
		case "<":
			maxs = append(maxs, minor-1)
		case "!=":
			omit[minor] = true
		}
	}

	result := pythonRange{minMinor: minDefault.Minor, maxMinor: maxDefault.Minor, omit: omit}
	if len(mins) > 0 {
		result.minMinor = lo.Max(mins)
	}
	if len(maxs) > 0 {
		result.maxMinor = lo.Min(maxs)
	}
	return result
}

// classifiers lists the required classifiers in ascending order.
func (r pythonRange) classifiers() []string {
	out := []string{pythonOnlyClassifier}
	for minor := r.minMinor; minor <= r.maxMinor; minor++ {
		if !r.omit[minor] {
			out = append(out, pythonClassifierPrefix+"3."+strconv.Itoa(minor))
		}
	}
	return out
}

// SynthesizeClassifiers makes the Python version classifiers of a [project]
// block match its requires-python constraint. Stale version classifiers are
// removed together with their comments and missing ones are appended; a
// classifiers array is created when the block has none.
func SynthesizeClassifiers(block *Block, minDefault, maxDefault config.PythonVersion) error {
	if err := checkPythonVersions(minDefault, maxDefault); err != nil {
		return err
	}

	var (
		constraint string
		entry      *tomlcst.Element
	)
	forEntries(block, func(key string, elem *tomlcst.Element) {
		switch key {
		case "requires-python":
			if text, ok := memberText(tomlcst.ValueOf(elem)); ok {
				constraint = text
			}
		case "classifiers":
			entry = elem
		}
	})
	required := parseRequiresPython(constraint, minDefault, maxDefault).classifiers()

	if entry == nil {
		block.Elements = appendEntry(block.Elements, tomlcst.NewArrayEntry("classifiers", required))
		return nil
	}
	if array := stringArray(tomlcst.ValueOf(entry)); array != nil {
		mergeClassifiers(array, required)
	}
	return nil
}

func mergeClassifiers(array *tomlcst.Element, required []string) {
	existing := make(map[string]bool)
	for _, member := range array.Children {
		if text, ok := memberText(member); ok {
			existing[text] = true
		}
	}
	stale := func(text string) bool {
		return strings.HasPrefix(text, pythonClassifierPrefix) && !lo.Contains(required, text)
	}

	var (
		out      []*tomlcst.Element
		deleting bool
	)
	for _, child := range array.Children {
		if deleting {
			switch child.Kind {
			case tomlcst.KindNewline:
				deleting = false
				continue
			case tomlcst.KindBracketClose, tomlcst.KindValue:
				deleting = false
			default:
				continue
			}
		}
		if child.Kind == tomlcst.KindValue {
			if text, ok := memberText(child); ok && stale(text) {
				out = out[:deleteStart(out)]
				deleting = true
				continue
			}
		}
		out = append(out, child)
	}

	missing := lo.Filter(required, func(classifier string, _ int) bool {
		return !existing[classifier]
	})
	if len(missing) > 0 {
		out = insertMembers(out, missing)
	}
	array.SetChildren(out)
}

// deleteStart returns where the removal of the member about to follow
// elements begins: after the line holding the previous comma, or after the
// bracket-open and its line break.
func deleteStart(elements []*tomlcst.Element) int {
	for i := len(elements) - 1; i >= 0; i-- {
		kind := elements[i].Kind
		if kind != tomlcst.KindComma && kind != tomlcst.KindBracketOpen {
			continue
		}
		for j := i + 1; j < len(elements); j++ {
			if elements[j].Kind == tomlcst.KindNewline {
				return j + 1
			}
		}
		return i + 1
	}
	return 0
}

// insertMembers appends string members after the last member of an array,
// adding the separating comma when it is missing.
func insertMembers(elements []*tomlcst.Element, values []string) []*tomlcst.Element {
	multiline := lo.ContainsBy(elements, func(elem *tomlcst.Element) bool {
		return elem.Kind == tomlcst.KindNewline
	})

	last := -1
	for i, elem := range elements {
		if elem.Kind == tomlcst.KindValue {
			last = i
		}
	}

	at := 1 // after the bracket-open
	if last >= 0 {
		at = last + 1
		for at < len(elements) && elements[at].Kind == tomlcst.KindWhitespace {
			at++
		}
		if at < len(elements) && elements[at].Kind == tomlcst.KindComma {
			at++
		} else {
			elements = slices.Insert(elements, last+1, tomlcst.NewComma())
			at = last + 2
		}
		for at < len(elements) && elements[at].Kind.IsTrivia() && elements[at].Kind != tomlcst.KindNewline {
			at++
		}
		if at < len(elements) && elements[at].Kind == tomlcst.KindNewline {
			at++
		}
	}

	var added []*tomlcst.Element
	for _, value := range values {
		added = append(added, tomlcst.NewNode(tomlcst.KindValue, tomlcst.NewBasicString(value)), tomlcst.NewComma())
		if multiline {
			added = append(added, tomlcst.NewNewline(1))
		}
	}
	return slices.Insert(elements, at, added...)
}
