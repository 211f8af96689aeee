package tomlcst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyprojectfmt/pkg/tomlcst"
)

func TestNewBasicString(t *testing.T) {
	t.Parallel()

	tok := tomlcst.NewBasicString(`say "hi"\now`)
	assert.Equal(t, tomlcst.KindBasicString, tok.Kind)
	assert.Equal(t, `"say \"hi\"\\now"`, tok.Text)

	value, err := tomlcst.StringValue(tok)
	require.NoError(t, err)
	assert.Equal(t, `say "hi"\now`, value)
}

func TestNewEntry(t *testing.T) {
	t.Parallel()

	entry := tomlcst.NewEntry(`scripts."a.b"`, tomlcst.NewBasicString("x"))
	assert.Equal(t, tomlcst.KindEntry, entry.Kind)
	assert.Equal(t, `scripts."a.b" = "x"`, entry.String())
	assert.Equal(t, []string{"scripts", "a.b"}, tomlcst.KeyParts(entry))
}

func TestNewArrayEntry(t *testing.T) {
	t.Parallel()

	entry := tomlcst.NewArrayEntry("classifiers", []string{"a", "b"})
	assert.Equal(t, "classifiers = [\n  \"a\",\n  \"b\",\n]", entry.String())

	array := tomlcst.Inner(tomlcst.ValueOf(entry))
	require.NotNil(t, array)
	assert.Equal(t, tomlcst.KindArray, array.Kind)
}

func TestNewTableHeader(t *testing.T) {
	t.Parallel()

	header := tomlcst.NewTableHeader("project")
	assert.Equal(t, tomlcst.KindTableHeader, header.Kind)
	assert.Equal(t, "[project]", header.String())
}

func TestNewNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n\n", tomlcst.NewNewline(2).Text)
	assert.Equal(t, "\n", tomlcst.NewNewline(0).Text)
}

func TestNewKey_PanicsOnInvalidFragment(t *testing.T) {
	t.Parallel()

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		fragErr, ok := recovered.(*tomlcst.FragmentError)
		require.True(t, ok, "panic value should be *FragmentError, got %T", recovered)
		assert.ErrorIs(t, fragErr, tomlcst.ErrSyntax)
	}()

	tomlcst.NewKey("not a key")
}

func TestQuoteKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		part     string
		expected string
	}{
		{part: "tox-uv", expected: "tox-uv"},
		{part: "under_score9", expected: "under_score9"},
		{part: "has.dot", expected: `"has.dot"`},
		{part: "with space", expected: `"with space"`},
		{part: "", expected: `""`},
		{part: `q"uote`, expected: `"q\"uote"`},
	}

	for _, testCase := range tests {
		t.Run(testCase.expected, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, tomlcst.QuoteKey(testCase.part))
		})
	}
}
