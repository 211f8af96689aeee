// Package pep508 parses and normalizes Python dependency specifiers.
package pep508

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once.
var (
	nameSeparators = regexp.MustCompile(`[-_.]+`)
	validName      = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)
)

// CanonicalName lowercases name and collapses runs of '-', '_' and '.'
// into a single '-'.
func CanonicalName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(name), "-")
}

// RequirementName returns the canonical project name of a requirement.
// Strings that do not parse fall back to the canonicalized raw text so
// they still sort deterministically.
func RequirementName(req string) string {
	parsed, err := Parse(req)
	if err != nil {
		return CanonicalName(strings.TrimSpace(req))
	}
	return CanonicalName(parsed.Name)
}
