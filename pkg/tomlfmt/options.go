// Package tomlfmt prints a tomlcst tree in a canonical layout.
//
// The printer only changes layout: spacing around keys and values, array
// expansion, indentation, comment alignment and blank lines. It never
// reorders keys, tables or array values.
package tomlfmt

// Options configures the printer.
type Options struct {
	// AlignEntries pads keys of consecutive entries so their '=' line up.
	AlignEntries bool

	// AlignComments aligns trailing comments of consecutive lines one
	// column past the widest line.
	AlignComments bool

	// ArrayTrailingComma adds a comma after the last value of a multi-line array.
	ArrayTrailingComma bool

	// ArrayAutoExpand expands arrays that would exceed ColumnWidth.
	ArrayAutoExpand bool

	// ColumnWidth is the maximum line width before arrays are expanded.
	ColumnWidth int

	// AllowedBlankLines caps consecutive blank lines.
	AllowedBlankLines int

	// IndentString is the unit of indentation for multi-line arrays.
	IndentString string

	// TrailingNewline ends the output with a line break.
	TrailingNewline bool
}

// DefaultOptions returns the layout used for pyproject.toml files.
func DefaultOptions() Options {
	return Options{
		AlignEntries:       false,
		AlignComments:      true,
		ArrayTrailingComma: true,
		ArrayAutoExpand:    true,
		ColumnWidth:        1,
		AllowedBlankLines:  1,
		IndentString:       "  ",
		TrailingNewline:    true,
	}
}
