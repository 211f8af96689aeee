package normalize

import (
	"cmp"

	"github.com/maruel/natural"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldCase returns the case-folded NFC form of s.
// A Caser holds state, so each call gets its own.
func foldCase(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// NaturalLess reports whether a sorts before b, ignoring case and comparing
// runs of ASCII digits by numeric value, so "a2" sorts before "a10".
func NaturalLess(a, b string) bool {
	return naturalCompare(foldCase(a), foldCase(b)) < 0
}

// naturalCompare orders folded keys. Digit runs are compared by natural.Less.
// Where a number starts on one side only, plain byte order decides, so
// "a-c" sorts before "a2".
func naturalCompare(a, b string) int {
	if a == b {
		return 0
	}
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	if i < len(a) && i < len(b) &&
		isASCIIDigit(a[i]) != isASCIIDigit(b[i]) &&
		(i == 0 || !isASCIIDigit(a[i-1])) {
		return cmp.Compare(a[i], b[i])
	}
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return 0
	}
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
