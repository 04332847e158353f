package lang

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Literals of the external BULBA format.
const (
	// Header must be the entire first line of every document.
	Header = "BULBA!"

	// CommentMarker starts a comment that runs to the end of the line.
	CommentMarker = "zZz"

	// ReservedKey may never be used as a key or section name.
	ReservedKey = "Charizard"

	KeywordTrue  = "SuperEffective"
	KeywordFalse = "NotVeryEffective"
	KeywordNull  = "MissingNo"

	ArrayOpen  = "<|"
	ArrayClose = "|>"

	// MaxStage is the deepest evolution stage a section may have.
	MaxStage = 3

	indentWidth = 4
)

// stageMarker maps each evolution stage to the marker that surrounds the
// section name, e.g. "(O) pool (O)".
var stageMarker = [MaxStage + 1]string{1: "(o)", 2: "(O)", 3: "(@)"}

// keyValuePattern matches: identifier, optional space, one or more '~'
// followed by '>', optional space, value.
var keyValuePattern = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*(~+>)\s*(.*)$`)

// lexer holds the tokenizer state of a single Tokenize call.
type lexer struct {
	tokens   []Token
	line     int
	maxDepth int
}

// Tokenize converts BULBA source text into a token stream terminated by a
// [KindEOF] token.
//
// The first failure aborts tokenization; no partial stream is returned.
func Tokenize(content string, opts ...Option) ([]Token, error) {
	o := makeOptions(opts...)

	lx := &lexer{
		tokens:   make([]Token, 0, strings.Count(content, "\n")*4+2),
		maxDepth: o.maxDepth,
	}

	err := lx.run(content)
	if err != nil {
		return nil, err
	}

	return lx.tokens, nil
}

func (lx *lexer) run(content string) error {
	lines := strings.Split(content, "\n")

	lx.line = 1
	if strings.TrimSuffix(lines[0], "\r") != Header {
		return ErrHeader.AtLine(lx.line).
			With(slog.String("expected", Header))
	}

	lx.emit(KindHeader, Header, 0)

	for _, line := range lines[1:] {
		lx.line++

		err := lx.scanLine(line)
		if err != nil {
			return err
		}
	}

	lx.emit(KindEOF, "", 0)

	return nil
}

func (lx *lexer) emit(kind Kind, literal string, level int) {
	lx.tokens = append(lx.tokens, Token{
		Kind:    kind,
		Literal: literal,
		Line:    lx.line,
		Level:   level,
	})
}

// scanLine tokenizes one physical line after the header.
func (lx *lexer) scanLine(line string) error {
	line = strings.TrimSuffix(line, "\r")

	if idx := strings.Index(line, CommentMarker); idx != -1 {
		line = line[:idx]
	}

	line = strings.TrimRightFunc(line, unicode.IsSpace)
	if line == "" {
		return nil
	}

	lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	text := strings.TrimLeftFunc(line[len(lead):], unicode.IsSpace)

	if strings.ContainsRune(lead, '\t') {
		return ErrTab.AtLine(lx.line)
	}

	// Indent in whole units of spaces.
	if len(lead)%indentWidth != 0 {
		return ErrIndentation.AtLine(lx.line).
			With(slog.Int("indent", len(lead)))
	}

	lx.emit(KindIndent, "", len(lead)/indentWidth)

	return lx.scanStatement(text)
}

// scanStatement classifies the indentation-free text of a line as either a
// section header or a key/value assignment.
func (lx *lexer) scanStatement(text string) error {
	if stage, name, ok := sectionHeader(text); ok {
		lx.emit(KindSectionOpen, stageMarker[stage], stage)
		lx.emit(KindIdentifier, name, 0)
		lx.emit(KindSectionClose, stageMarker[stage], stage)

		return nil
	}

	m := keyValuePattern.FindStringSubmatch(text)
	if m == nil {
		return ErrSyntax.AtLine(lx.line).
			With(slog.String("statement", text))
	}

	lx.emit(KindIdentifier, m[1], 0)
	lx.emit(KindAssign, m[2], 0)

	return lx.scanValue(m[3], 0)
}

// sectionHeader reports whether text is a section header and returns its
// stage and name. The name is everything between the markers, untrimmed.
func sectionHeader(text string) (stage int, name string, ok bool) {
	for stage = 1; stage <= MaxStage; stage++ {
		prefix := stageMarker[stage] + " "
		suffix := " " + stageMarker[stage]

		if len(text) > len(prefix)+len(suffix) &&
			strings.HasPrefix(text, prefix) &&
			strings.HasSuffix(text, suffix) {
			return stage, text[len(prefix) : len(text)-len(suffix)], true
		}
	}

	return 0, "", false
}

// scanValue tokenizes a value literal. Empty text produces no tokens.
func (lx *lexer) scanValue(text string, depth int) error {
	text = strings.TrimSpace(text)

	switch {
	case text == "":
		return nil

	case len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"':
		lx.emit(KindString, text[1:len(text)-1], 0)

		return nil

	case text == KeywordTrue:
		lx.emit(KindBool, "true", 0)

		return nil

	case text == KeywordFalse:
		lx.emit(KindBool, "false", 0)

		return nil

	case text == KeywordNull:
		lx.emit(KindNull, text, 0)

		return nil

	case len(text) >= len(ArrayOpen)+len(ArrayClose) &&
		strings.HasPrefix(text, ArrayOpen) &&
		strings.HasSuffix(text, ArrayClose):
		return lx.scanArray(text[len(ArrayOpen):len(text)-len(ArrayClose)], depth+1)
	}

	if _, ok := parseNumber(text); !ok {
		return ErrType.AtLine(lx.line).
			With(slog.String("value", text))
	}

	lx.emit(KindNumber, text, 0)

	return nil
}

// scanArray tokenizes the interior of an array literal.
func (lx *lexer) scanArray(inner string, depth int) error {
	if depth > lx.maxDepth {
		return ErrSyntax.AtLine(lx.line).
			With(slog.Int("max_depth", lx.maxDepth))
	}

	lx.emit(KindArrayStart, ArrayOpen, 0)

	if strings.TrimSpace(inner) != "" {
		for i, elem := range splitElements(inner) {
			if i > 0 {
				lx.emit(KindComma, ",", 0)
			}

			err := lx.scanValue(elem, depth)
			if err != nil {
				return err
			}
		}
	}

	lx.emit(KindArrayEnd, ArrayClose, 0)

	return nil
}

// splitElements splits array contents on top-level commas. Commas inside
// double-quoted strings or nested arrays do not split.
func splitElements(s string) []string {
	var (
		parts  []string
		start  int
		nest   int
		quoted bool
	)

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"':
			quoted = !quoted

		case quoted:

		case strings.HasPrefix(s[i:], ArrayOpen):
			nest++
			i++

		case nest > 0 && strings.HasPrefix(s[i:], ArrayClose):
			nest--
			i++

		case nest == 0 && s[i] == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}

// parseNumber parses an integer, falling back to a float. Non-finite
// spellings such as Inf and NaN are floats.
func parseNumber(s string) (*Value, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}

	return NewFloat(f), true
}
