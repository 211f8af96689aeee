package pep508_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyprojectfmt/pkg/pep508"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      string
		keep     bool
		expected string
	}{
		{name: "strip micro", req: "maturin >= 1.5.0", expected: "maturin>=1.5"},
		{name: "keep micro", req: "maturin >= 1.5.0", keep: true, expected: "maturin>=1.5.0"},
		{name: "strip all zero groups", req: "a>=1.0.0", expected: "a>=1"},
		{name: "equals stripped", req: "d == 2.0.0", expected: "d==2"},
		{name: "other operators untouched", req: "d <= 2.0.0", expected: "d<=2.0.0"},
		{name: "canonical name", req: "b.c>=1.5.0", expected: "b-c>=1.5"},
		{name: "uppercase name", req: "Foo_Bar", expected: "foo-bar"},
		{name: "leading whitespace", req: " e >= 1.5.0", expected: "e>=1.5"},
		{name: "specifiers sorted", req: "x <3, >=1.2", expected: "x<3,>=1.2"},
		{name: "parenthesized specifiers", req: "x (>=1.2, <3)", expected: "x<3,>=1.2"},
		{name: "extras sorted", req: "pkg [tests, docs] >= 1", expected: "pkg[docs,tests]>=1"},
		{name: "wildcard", req: "x == 1.*", expected: "x==1.*"},
		{
			name:     "marker respaced",
			req:      `importlib-metadata>=7.0.0;python_version<"3.8"`,
			expected: `importlib-metadata>=7; python_version < "3.8"`,
		},
		{
			name:     "marker single quotes",
			req:      `a; sys_platform=='win32' and (python_version<'3.9' or extra == "x")`,
			expected: `a; sys_platform == "win32" and (python_version < "3.9" or extra == "x")`,
		},
		{
			name:     "marker not in",
			req:      `a ; "linux" not  in sys_platform`,
			expected: `a; "linux" not in sys_platform`,
		},
		{
			name:     "legacy marker variable",
			req:      `a; os.name == "nt"`,
			expected: `a; os_name == "nt"`,
		},
		{
			name:     "url",
			req:      "Pip@https://github.com/pypa/pip/archive/1.3.1.zip",
			expected: "pip @ https://github.com/pypa/pip/archive/1.3.1.zip",
		},
		{
			name:     "url with marker",
			req:      `pip @ https://example.com/pip.zip ; python_version>="3.8"`,
			expected: `pip @ https://example.com/pip.zip ; python_version >= "3.8"`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := pep508.Normalize(testCase.req, testCase.keep)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, got)

			again, err := pep508.Normalize(got, testCase.keep)
			require.NoError(t, err)
			assert.Equal(t, got, again, "normalization is idempotent")
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		">=1.0",
		"name >=",
		"name[extra",
		"name; bogus == '1'",
		"name; python_version",
		"name ~= 1.*",
		"name >=1 trailing",
	}

	for _, req := range tests {
		t.Run(req, func(t *testing.T) {
			t.Parallel()

			_, err := pep508.Normalize(req, false)
			require.ErrorIs(t, err, pep508.ErrInvalidRequirement)
		})
	}
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a-b-c", pep508.CanonicalName("a.b.c"))
	assert.Equal(t, "friendly-bard", pep508.CanonicalName("Friendly__..-Bard"))
}

func TestRequirementName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b-c", pep508.RequirementName("B.c>=1.5.0"))
	assert.Equal(t, "pkg", pep508.RequirementName("pkg[extra]; python_version<'3.8'"))
	assert.Equal(t, "not-a-req>>", pep508.RequirementName("  Not.A.Req>>"), "unparseable input falls back")
}
