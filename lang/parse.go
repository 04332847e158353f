package lang

import (
	"context"
	"io"
	"log/slog"
)

// ParseReader reads all of r and parses it as a BULBA document.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString tokenizes and parses a BULBA document.
func ParseString(ctx context.Context, s string, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	tokens, err := Tokenize(s, opts...)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "tokenize complete",
		slog.Int("source_bytes", len(s)),
		slog.Int("token_count", len(tokens)))

	doc, err := Parse(tokens, opts...)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("key_count", len(doc.Root)))

	return doc, nil
}

// frame is one open section on the parser's context stack.
type frame struct {
	node  Object
	level int
}

// parser holds the parser state of a single Parse call.
type parser struct {
	tokens   []Token
	pos      int
	stack    []frame
	level    int // indent level of the current statement block
	maxDepth int
}

// Parse builds a document from a token stream produced by [Tokenize].
//
// Sections nest by evolution stage: a stage-S section header must be indented
// S-1 levels and may only open while a stage S-1 section (or the root, for
// stage 1) is open. A leading [KindHeader] token is skipped. The first
// structural error aborts parsing; no partial document is returned.
func Parse(tokens []Token, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	root := make(Object)

	p := &parser{
		tokens:   tokens,
		stack:    []frame{{node: root, level: 0}},
		maxDepth: o.maxDepth,
	}

	if p.peek().Kind == KindHeader {
		p.pos++
	}

	for !p.eof() {
		tok := p.next()

		if tok.Kind != KindIndent {
			return nil, ErrSyntax.AtLine(tok.Line).
				With(slog.String("unexpected", tok.Kind.String()))
		}

		if tok.Level < 0 {
			return nil, ErrIndentation.AtLine(tok.Line).
				With(slog.Int("indent", tok.Level))
		}

		var err error

		switch next := p.peek(); next.Kind {
		case KindSectionOpen:
			err = p.parseSection(tok)

		case KindIdentifier:
			err = p.parseAssignment(tok)

		default:
			err = ErrSyntax.AtLine(next.Line).
				With(slog.String("unexpected", next.Kind.String()))
		}

		if err != nil {
			return nil, err
		}
	}

	return &Document{Root: root}, nil
}

// parseSection handles: SectionOpen Identifier SectionClose.
func (p *parser) parseSection(indent Token) error {
	open := p.next()
	stage := open.Level

	if stage < 1 || stage > MaxStage {
		return ErrSyntax.AtLine(open.Line).
			With(slog.Int("stage", stage))
	}

	if indent.Level != stage-1 {
		return ErrIndentation.AtLine(open.Line).
			With(slog.Int("indent", indent.Level), slog.Int("stage", stage))
	}

	// Every ancestor stage must be open before this one can evolve.
	if len(p.stack) < stage {
		return ErrBadges.AtLine(open.Line).
			With(slog.Int("stage", stage), slog.Int("open", len(p.stack)-1))
	}

	name := p.next()
	if name.Kind != KindIdentifier {
		return ErrSyntax.AtLine(name.Line).
			With(slog.String("expected", KindIdentifier.String()))
	}

	err := checkKey(name)
	if err != nil {
		return err
	}

	if closing := p.next(); closing.Kind != KindSectionClose || closing.Level != stage {
		return ErrSyntax.AtLine(closing.Line).
			With(slog.String("expected", stageMarker[stage]))
	}

	p.stack = p.stack[:stage]

	section := make(Object)
	p.top()[name.Literal] = NewObject(section)

	p.stack = append(p.stack, frame{node: section, level: stage})
	p.level = stage

	return nil
}

// parseAssignment handles: Identifier Assign Value.
func (p *parser) parseAssignment(indent Token) error {
	if indent.Level != p.level {
		if indent.Level > p.level {
			// Keys cannot increase depth without a section header.
			return ErrIndentation.AtLine(indent.Line).
				With(slog.Int("indent", indent.Level), slog.Int("expected", p.level))
		}

		p.stack = p.stack[:indent.Level+1]
		p.level = indent.Level
	}

	key := p.next()

	err := checkKey(key)
	if err != nil {
		return err
	}

	if assign := p.next(); assign.Kind != KindAssign {
		return ErrSyntax.AtLine(assign.Line).
			With(slog.String("expected", KindAssign.String()), slog.String("key", key.Literal))
	}

	val, next, err := parseValue(p.tokens, p.pos, 0, p.maxDepth)
	if err != nil {
		return err
	}

	p.pos = next

	if end := p.peek(); end.Kind != KindIndent && end.Kind != KindEOF {
		return ErrSyntax.AtLine(end.Line).
			With(slog.String("unexpected", end.Kind.String()), slog.String("key", key.Literal))
	}

	p.top()[key.Literal] = val

	return nil
}

// parseValue parses one value starting at tokens[pos] and returns it with the
// position following it.
func parseValue(tokens []Token, pos, depth, maxDepth int) (*Value, int, error) {
	if pos >= len(tokens) {
		line := 0
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}

		return nil, pos, ErrSyntax.AtLine(line).
			With(slog.String("expected", "value"))
	}

	tok := tokens[pos]

	switch tok.Kind {
	case KindString:
		return NewString(tok.Literal), pos + 1, nil

	case KindNumber:
		val, ok := parseNumber(tok.Literal)
		if !ok {
			return nil, pos, ErrType.AtLine(tok.Line).
				With(slog.String("value", tok.Literal))
		}

		return val, pos + 1, nil

	case KindBool:
		return NewBool(tok.Literal == "true"), pos + 1, nil

	case KindNull:
		return NewNull(), pos + 1, nil

	case KindArrayStart:
		if depth >= maxDepth {
			return nil, pos, ErrSyntax.AtLine(tok.Line).
				With(slog.Int("max_depth", maxDepth))
		}

		elems := []*Value{}

		curr := pos + 1
		for curr < len(tokens) {
			switch tokens[curr].Kind {
			case KindArrayEnd:
				return NewArray(elems...), curr + 1, nil

			case KindComma:
				curr++

				continue

			case KindIndent, KindEOF:
				return nil, curr, ErrSyntax.AtLine(tokens[curr].Line).
					With(slog.String("expected", ArrayClose))
			}

			val, next, err := parseValue(tokens, curr, depth+1, maxDepth)
			if err != nil {
				return nil, curr, err
			}

			elems = append(elems, val)
			curr = next
		}

		return nil, curr, ErrSyntax.AtLine(tok.Line).
			With(slog.String("expected", ArrayClose))

	case KindIndent, KindEOF:
		// The statement ended where a value was required.
		return nil, pos, ErrSyntax.AtLine(tok.Line).
			With(slog.String("expected", "value"))

	default:
		return nil, pos, ErrType.AtLine(tok.Line).
			With(slog.String("unexpected", tok.Kind.String()))
	}
}

// checkKey rejects the reserved key.
func checkKey(tok Token) error {
	if tok.Literal == ReservedKey {
		return ErrReservedKey.AtLine(tok.Line).
			With(slog.String("key", tok.Literal))
	}

	return nil
}

func (p *parser) top() Object { return p.stack[len(p.stack)-1].node }

// eof reports whether the stream is exhausted. A missing EOF token is treated
// as end of input.
func (p *parser) eof() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Kind == KindEOF
}

// peek returns the current token, or an EOF token past the end.
func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		line := 0
		if len(p.tokens) > 0 {
			line = p.tokens[len(p.tokens)-1].Line
		}

		return Token{Kind: KindEOF, Line: line}
	}

	return p.tokens[p.pos]
}

// next returns the current token and advances past it.
func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}
