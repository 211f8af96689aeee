// Package normalize reorders and rewrites a pyproject.toml syntax tree into
// its canonical form. Comments and blank lines travel with the entries and
// array values they belong to.
package normalize

import (
	"errors"
)

var (
	// ErrParse is returned when the input is not a valid TOML document.
	ErrParse = errors.New("parse toml")

	// ErrUnsupportedPython is returned when a configured Python version
	// does not have major version 3.
	ErrUnsupportedPython = errors.New("only Python 3 is supported")

	// ErrInternal indicates a formatter defect: a synthesized fragment did
	// not parse or the formatted output is not valid TOML.
	ErrInternal = errors.New("internal formatter error")
)
