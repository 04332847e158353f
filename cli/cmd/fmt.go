package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/bulba/lang"
)

// Fmt parses a source and renders the document in the chosen format.
type Fmt struct {
	Tree   Tree   `cmd:"" default:"withargs" help:"Format as an indented key/value tree (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	TOML   TOML   `cmd:""                    help:"Format as TOML."`
	Tokens Tokens `cmd:""                    help:"List the lexer tokens of the source."`
}

// SourceArg is the optional positional source shared by the fmt subcommands.
type SourceArg struct {
	Source string `arg:"" help:"Source input file or '-' for stdin. Defaults to the first --source." name:"source" optional:""`
}

// Tree formats the document as an indented tree.
type Tree struct {
	SourceArg
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, sourceOrDefault(ctx, t.Source))
	if err != nil {
		return err
	}

	if err := doc.Format(ctx, outputFrom(ctx)); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("format", "tree"))
	}

	return nil
}

// JSON formats the document as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output, 0 for compact output." short:"i"`

	SourceArg
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, sourceOrDefault(ctx, j.Source))
	if err != nil {
		return err
	}

	if err := doc.FormatJSON(ctx, outputFrom(ctx), j.Indent); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("format", "json"))
	}

	return nil
}

// YAML formats the document as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output, 0 for flow style." short:"i"`

	SourceArg
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, sourceOrDefault(ctx, y.Source))
	if err != nil {
		return err
	}

	if err := doc.FormatYAML(ctx, outputFrom(ctx), y.Indent); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("format", "yaml"))
	}

	return nil
}

// TOML formats the document as TOML.
type TOML struct {
	Indent int `default:"2" help:"Indent width of nested TOML tables." short:"i"`

	SourceArg
}

// Run executes the toml command.
func (t *TOML) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, sourceOrDefault(ctx, t.Source))
	if err != nil {
		return err
	}

	if err := doc.FormatTOML(ctx, outputFrom(ctx), t.Indent); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("format", "toml"))
	}

	return nil
}

// Tokens prints one lexer token per line as "LINE:KIND(literal)".
type Tokens struct {
	SourceArg
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	source := sourceOrDefault(ctx, t.Source)

	content, err := readSource(ctx, source)
	if err != nil {
		return err
	}

	tokens, err := lang.Tokenize(content)
	if err != nil {
		return parseError(source, content, err)
	}

	w := outputFrom(ctx)

	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return ErrWrite.Wrap(err).With(slog.String("format", "tokens"))
		}
	}

	return nil
}
