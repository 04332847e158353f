package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// ErrorKind identifies one member of the closed set of parse failures.
type ErrorKind int

const (
	// KindNoError is the zero ErrorKind. It is carried by errors that are not
	// parse failures (I/O, query, formatting).
	KindNoError ErrorKind = iota

	// KindHeaderError: the first line is not exactly the header sentinel.
	KindHeaderError

	// KindTabError: a tab character appears in a leading-indentation run.
	KindTabError

	// KindIndentationError: indent is not a multiple of 4, a key line increases
	// depth without a section header, or a section header's indent does not
	// equal its stage minus one.
	KindIndentationError

	// KindBadgesError: a section of stage S is opened without all ancestor
	// stages 1..S-1 currently open.
	KindBadgesError

	// KindSyntaxError: a line matches no statement shape, or an expected
	// token is missing.
	KindSyntaxError

	// KindTypeError: a value does not resolve to any recognized literal form.
	KindTypeError

	// KindReservedKeyError: a key or section name equals [ReservedKey].
	KindReservedKeyError
)

// Message returns the fixed display text of the error kind. Callers match on
// this text, so it must never change.
func (k ErrorKind) Message() string {
	switch k {
	case KindHeaderError:
		return "Status: Fainted"
	case KindTabError:
		return "Poison Type: Tab character detected"
	case KindIndentationError:
		return "The attack missed!"
	case KindBadgesError:
		return "Not enough badges!"
	case KindSyntaxError:
		return "It hurt itself in its confusion!"
	case KindTypeError:
		return "Target is immune!"
	case KindReservedKeyError:
		return "It burns the bulb"
	default:
		return ""
	}
}

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindHeaderError:
		return "HeaderError"
	case KindTabError:
		return "TabError"
	case KindIndentationError:
		return "IndentationError"
	case KindBadgesError:
		return "BadgesError"
	case KindSyntaxError:
		return "SyntaxError"
	case KindTypeError:
		return "TypeError"
	case KindReservedKeyError:
		return "ReservedKeyError"
	default:
		return "NoError"
	}
}

// Predefined errors (sentinel values).
//
// Parse failures match their sentinel with [errors.Is] regardless of the line
// or attributes attached to them.
var (
	ErrHeader      = newKindError(KindHeaderError)
	ErrTab         = newKindError(KindTabError)
	ErrIndentation = newKindError(KindIndentationError)
	ErrBadges      = newKindError(KindBadgesError)
	ErrSyntax      = newKindError(KindSyntaxError)
	ErrType        = newKindError(KindTypeError)
	ErrReservedKey = newKindError(KindReservedKeyError)

	ErrReadInput = NewError("failed to read input")
	ErrQuery     = NewError("query failed")
	ErrFormat    = NewError("format failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  ErrorKind
	line  int // 1-based source line, 0 if unknown
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func newKindError(kind ErrorKind) *Error {
	return &Error{kind: kind, msg: kind.Message()}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a parse error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if e.kind != KindNoError || t.kind != KindNoError {
		return e.kind == t.kind
	}

	return e.msg != "" && e.msg == t.msg
}

// Kind returns the parse failure kind, or [KindNoError].
func (e *Error) Kind() ErrorKind { return e.kind }

// Line returns the 1-based source line the error refers to, or 0.
func (e *Error) Line() int { return e.line }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.kind != KindNoError {
		attrs = append(attrs, slog.String("kind", e.kind.String()))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := *e
	c.attrs = newAttrs

	return &c
}

// AtLine returns a copy of the error positioned at the given source line.
func (e *Error) AtLine(line int) *Error {
	c := *e
	c.line = line

	return &c
}

// Snippet renders the offending line of source with a marker beneath it.
// It returns an empty string if the error has no line or the line is out of
// range.
func (e *Error) Snippet(source string) string {
	lines := strings.Split(source, "\n")
	if e.line <= 0 || e.line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[e.line-1], "\r")

	var buf strings.Builder

	// Print the line with line number
	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(e.line))
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(e.line))+5)

	// Point at the first non-blank column.
	col := len(line) - len(strings.TrimLeft(line, " \t"))
	padding += strings.Repeat(" ", col)

	buf.WriteString(padding + "^\n")

	return buf.String()
}
