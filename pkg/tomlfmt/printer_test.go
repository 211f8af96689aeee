package tomlfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
	"github.com/yaklabco/pyprojectfmt/pkg/tomlfmt"
)

func format(t *testing.T, src string, opts tomlfmt.Options) string {
	t.Helper()

	root, err := tomlcst.Parse(src)
	require.NoError(t, err)
	return tomlfmt.Print(root, opts)
}

func TestPrint_Layout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "empty document",
			src:      "",
			expected: "\n",
		},
		{
			name:     "only blank lines",
			src:      "\n\n\n",
			expected: "\n",
		},
		{
			name:     "key spacing",
			src:      "a=\"b\"\nc   =    1",
			expected: "a = \"b\"\nc = 1\n",
		},
		{
			name:     "dotted keys and headers lose inner whitespace",
			src:      "[ tool . ruff ]\na . b = 1\n",
			expected: "[tool.ruff]\na.b = 1\n",
		},
		{
			name:     "leading blank lines dropped and blank runs capped",
			src:      "\n\n[a]\nb = 1\n\n\n\n[c]\n",
			expected: "[a]\nb = 1\n\n[c]\n",
		},
		{
			name:     "root indentation dropped",
			src:      "[a]\n    b = 1\n\tc = 2\n",
			expected: "[a]\nb = 1\nc = 2\n",
		},
		{
			name:     "empty array stays inline",
			src:      "a = []\n",
			expected: "a = []\n",
		},
		{
			name:     "array expands past column width",
			src:      "a = [\"x\", \"y\"]\n",
			expected: "a = [\n  \"x\",\n  \"y\",\n]\n",
		},
		{
			name:     "empty multi-line array",
			src:      "a = [\n]\n",
			expected: "a = [\n]\n",
		},
		{
			name:     "comment after open bracket becomes its own line",
			src:      "a = [ # comment\n  \"A\"\n]\n",
			expected: "a = [\n  # comment\n  \"A\",\n]\n",
		},
		{
			name:     "array comment stays after close bracket",
			src:      "a = [\"A\",\n] # array comment\n",
			expected: "a = [\n  \"A\",\n] # array comment\n",
		},
		{
			name:     "nested arrays",
			src:      "a = [[1, 2]]\n",
			expected: "a = [\n  [\n    1,\n    2,\n  ],\n]\n",
		},
		{
			name:     "inline table",
			src:      "a = {b=1,  c = \"d\"}\ne = {  }\n",
			expected: "a = { b = 1, c = \"d\" }\ne = {}\n",
		},
		{
			name:     "arrays inside inline tables stay inline",
			src:      "a = { b = [1,2] }\n",
			expected: "a = { b = [1, 2] }\n",
		},
		{
			name:     "strings are kept verbatim",
			src:      "a = 'lit'\nb = \"\"\"\nx\n  y\"\"\"\n",
			expected: "a = 'lit'\nb = \"\"\"\nx\n  y\"\"\"\n",
		},
		{
			name:     "array of tables header",
			src:      "[[ a.b ]]\nc = 1\n",
			expected: "[[a.b]]\nc = 1\n",
		},
		{
			name:     "crlf input",
			src:      "a = 1\r\n\r\nb = 2\r\n",
			expected: "a = 1\n\nb = 2\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := format(t, testCase.src, tomlfmt.DefaultOptions())
			assert.Equal(t, testCase.expected, got)
			assert.Equal(t, got, format(t, got, tomlfmt.DefaultOptions()), "printing is idempotent")
		})
	}
}

func TestPrint_CommentAlignment(t *testing.T) {
	t.Parallel()

	src := `[project]
classifiers = [
  # lead
  "License :: OSI Approved :: MIT License", # license
  "Programming Language :: Python :: 3 :: Only",
  # inline
  "Programming Language :: Python :: 3.10" # post
  # extra
]
a = 1 # one
bbb = 2 # two

c = 3 # three
`
	expected := `[project]
classifiers = [
  # lead
  "License :: OSI Approved :: MIT License",      # license
  "Programming Language :: Python :: 3 :: Only",
  # inline
  "Programming Language :: Python :: 3.10", # post
  # extra
]
a = 1   # one
bbb = 2 # two

c = 3 # three
`
	assert.Equal(t, expected, format(t, src, tomlfmt.DefaultOptions()))
}

func TestPrint_Options(t *testing.T) {
	t.Parallel()

	t.Run("wide column keeps short arrays inline", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.ColumnWidth = 40
		assert.Equal(t, "a = [\"x\", \"y\"]\n", format(t, "a = [ \"x\" , \"y\" ]\n", opts))
		assert.Equal(t,
			"a = [\n  \"a long value\",\n  \"another long value\",\n]\n",
			format(t, "a = [\"a long value\", \"another long value\"]\n", opts))
	})

	t.Run("column width counts display cells of the key", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.ColumnWidth = 14
		assert.Equal(t, "\"ééé\" = [\"a\"]\n", format(t, "\"ééé\" = [\"a\"]\n", opts))
		opts.ColumnWidth = 12
		assert.Equal(t, "\"ééé\" = [\n  \"a\",\n]\n", format(t, "\"ééé\" = [\"a\"]\n", opts))
	})

	t.Run("multi-line arrays never collapse", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.ColumnWidth = 120
		assert.Equal(t, "a = [\n  1,\n]\n", format(t, "a = [\n1]\n", opts))
	})

	t.Run("indent string", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.IndentString = "    "
		assert.Equal(t, "a = [\n    1,\n]\n", format(t, "a = [1]\n", opts))
	})

	t.Run("no trailing comma", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.ArrayTrailingComma = false
		assert.Equal(t, "a = [\n  1,\n  2\n]\n", format(t, "a = [1, 2,]\n", opts))
	})

	t.Run("align entries", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.AlignEntries = true
		assert.Equal(t, "a   = 1\nbbb = 2\n", format(t, "a = 1\nbbb = 2\n", opts))
	})

	t.Run("comments unaligned", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.AlignComments = false
		assert.Equal(t, "a = 1 # x\nbbb = 2 # y\n", format(t, "a = 1 # x\nbbb = 2      # y\n", opts))
	})

	t.Run("more blank lines", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.AllowedBlankLines = 2
		assert.Equal(t, "a = 1\n\n\nb = 2\n", format(t, "a = 1\n\n\n\n\nb = 2\n", opts))
	})

	t.Run("no trailing newline", func(t *testing.T) {
		t.Parallel()

		opts := tomlfmt.DefaultOptions()
		opts.TrailingNewline = false
		assert.Equal(t, "a = 1", format(t, "a = 1\n", opts))
	})
}
