package lang

import (
	"strconv"
	"strings"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	// KindHeader is the header sentinel line.
	KindHeader Kind = iota

	// KindIndent opens every non-blank line. Level holds its depth.
	KindIndent

	// KindSectionOpen marks the start of a section header. Level holds its
	// evolution stage (1, 2 or 3).
	KindSectionOpen

	// KindSectionClose marks the end of a section header. Level holds its
	// evolution stage (1, 2 or 3).
	KindSectionClose

	// KindIdentifier is a key or section name.
	KindIdentifier

	// KindAssign is the assignment operator, e.g. ~~~~>.
	KindAssign

	// KindString is a double-quoted string. Literal holds the unquoted text.
	KindString

	// KindNumber is an integer or floating-point literal.
	KindNumber

	// KindBool is a boolean keyword. Literal holds "true" or "false".
	KindBool

	// KindNull is the null keyword.
	KindNull

	// KindArrayStart is the array opening delimiter.
	KindArrayStart

	// KindArrayEnd is the array closing delimiter.
	KindArrayEnd

	// KindComma separates array elements.
	KindComma

	// KindEOF terminates every token stream.
	KindEOF
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "Header"

	case KindIndent:
		return "Indent"

	case KindSectionOpen:
		return "SectionOpen"

	case KindSectionClose:
		return "SectionClose"

	case KindIdentifier:
		return "Identifier"

	case KindAssign:
		return "Assign"

	case KindString:
		return "String"

	case KindNumber:
		return "Number"

	case KindBool:
		return "Bool"

	case KindNull:
		return "Null"

	case KindArrayStart:
		return "ArrayStart"

	case KindArrayEnd:
		return "ArrayEnd"

	case KindComma:
		return "Comma"

	case KindEOF:
		return "EOF"

	default:
		return "Unknown"
	}
}

// Token is one lexical unit of BULBA source.
type Token struct {
	Kind    Kind
	Literal string // text content of the token, if any
	Line    int    // 1-based source line
	Level   int    // indent depth (Indent) or evolution stage (sections)
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	var sb strings.Builder

	sb.WriteString(strconv.Itoa(t.Line))
	sb.WriteString(":")
	sb.WriteString(t.Kind.String())

	switch t.Kind {
	case KindIndent, KindSectionOpen, KindSectionClose:
		sb.WriteString("(")
		sb.WriteString(strconv.Itoa(t.Level))
		sb.WriteString(")")

	case KindIdentifier, KindNumber, KindBool:
		sb.WriteString("(")
		sb.WriteString(t.Literal)
		sb.WriteString(")")

	case KindString:
		sb.WriteString("(")
		sb.WriteString(strconv.Quote(t.Literal))
		sb.WriteString(")")
	}

	return sb.String()
}
