package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/ardnew/bulba/lang"
	"github.com/ardnew/bulba/log"
)

// Eval evaluates an expression against a document.
//
// Top-level keys are variables and sections are maps, e.g.
//
//	bulba eval 'database.pool.max_connections * 2' -f app.bulba
type Eval struct {
	Expression string `arg:"" help:"Expression to evaluate, in expr-lang syntax." name:"expression"`
	Indent     int    `       help:"Indent width of JSON output for maps and lists, 0 for compact output." default:"0" short:"i"`
	Source     string `       help:"Source input file or '-' for stdin. Defaults to the first --source." name:"file" short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	source := sourceOrDefault(ctx, e.Source)

	doc, err := loadDocument(ctx, source)
	if err != nil {
		return err
	}

	result, err := lang.Query(ctx, doc, e.Expression,
		lang.WithLogger(log.With(slog.String("source", source))))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	out := fmt.Sprint(result)

	switch reflect.ValueOf(result).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		out, err = marshalJSON(result, e.Indent)
		if err != nil {
			return ErrWrite.Wrap(err).With(slog.String("command", "eval"))
		}

	case reflect.Invalid:
		out = "null"
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), out); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("command", "eval"))
	}

	return nil
}
