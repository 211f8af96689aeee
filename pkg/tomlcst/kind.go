package tomlcst

import "strconv"

// Kind classifies an element of the TOML syntax tree.
// Node kinds carry children; token kinds carry source text.
type Kind uint16

// Node kinds.
const (
	KindRoot Kind = iota
	KindTableHeader
	KindArrayHeader
	KindEntry
	KindKey
	KindValue
	KindArray
	KindInlineTable

	// Token kinds.
	KindBareKey
	KindBasicString
	KindLiteralString
	KindMultiLineBasicString
	KindMultiLineLiteralString
	KindInteger
	KindFloat
	KindBool
	KindDateTime
	KindComma
	KindPeriod
	KindEquals
	KindBracketOpen
	KindBracketClose
	KindBraceOpen
	KindBraceClose
	KindNewline
	KindWhitespace
	KindComment
)

// IsNode returns true if elements of this kind hold children instead of text.
func (k Kind) IsNode() bool {
	switch k {
	case KindRoot, KindTableHeader, KindArrayHeader, KindEntry, KindKey,
		KindValue, KindArray, KindInlineTable:
		return true
	default:
		return false
	}
}

// IsHeader returns true for table and array-of-tables headers.
func (k Kind) IsHeader() bool {
	return k == KindTableHeader || k == KindArrayHeader
}

// IsString returns true for all four TOML string flavours.
func (k Kind) IsString() bool {
	switch k {
	case KindBasicString, KindLiteralString, KindMultiLineBasicString, KindMultiLineLiteralString:
		return true
	default:
		return false
	}
}

// IsTrivia returns true for whitespace, line breaks and comments.
func (k Kind) IsTrivia() bool {
	switch k {
	case KindWhitespace, KindNewline, KindComment:
		return true
	default:
		return false
	}
}

// IsScalar returns true for token kinds that can be the sole content of a value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBasicString, KindLiteralString, KindMultiLineBasicString, KindMultiLineLiteralString,
		KindInteger, KindFloat, KindBool, KindDateTime:
		return true
	default:
		return false
	}
}

//nolint:gochecknoglobals // Lookup table for String.
var kindNames = [...]string{
	KindRoot:                   "Root",
	KindTableHeader:            "TableHeader",
	KindArrayHeader:            "ArrayHeader",
	KindEntry:                  "Entry",
	KindKey:                    "Key",
	KindValue:                  "Value",
	KindArray:                  "Array",
	KindInlineTable:            "InlineTable",
	KindBareKey:                "BareKey",
	KindBasicString:            "BasicString",
	KindLiteralString:          "LiteralString",
	KindMultiLineBasicString:   "MultiLineBasicString",
	KindMultiLineLiteralString: "MultiLineLiteralString",
	KindInteger:                "Integer",
	KindFloat:                  "Float",
	KindBool:                   "Bool",
	KindDateTime:               "DateTime",
	KindComma:                  "Comma",
	KindPeriod:                 "Period",
	KindEquals:                 "Equals",
	KindBracketOpen:            "BracketOpen",
	KindBracketClose:           "BracketClose",
	KindBraceOpen:              "BraceOpen",
	KindBraceClose:             "BraceClose",
	KindNewline:                "Newline",
	KindWhitespace:             "Whitespace",
	KindComment:                "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
