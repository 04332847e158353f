package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/bulba/lang"
)

// maxSuggestions limits the "did you mean" list of an unknown key path.
const maxSuggestions = 3

// Get prints the value stored at a key path.
type Get struct {
	Path   string `arg:"" help:"Dot-separated key path, e.g. database.pool.max_connections." name:"path"`
	Indent int    `       help:"Indent width of JSON output for sections and arrays, 0 for compact output." default:"0" short:"i"`
	Source string `       help:"Source input file or '-' for stdin. Defaults to the first --source." name:"file" short:"f"`
}

// Run executes the get command.
//
// Scalars are written as the tree printer shows them. Sections and arrays are
// written as JSON.
func (g *Get) Run(ctx context.Context) error {
	source := sourceOrDefault(ctx, g.Source)

	doc, err := loadDocument(ctx, source)
	if err != nil {
		return err
	}

	val, ok := doc.Lookup(g.Path)
	if !ok {
		e := ErrKeyNotFound.With(
			slog.String("source", source),
			slog.String("path", g.Path),
		)

		if s := suggest(g.Path, doc.Paths()); len(s) > 0 {
			e = e.Wrap(fmt.Errorf("did you mean %s?", strings.Join(s, ", ")))
		}

		return e
	}

	out, err := renderValue(val, g.Indent)
	if err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", g.Path))
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), out); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", g.Path))
	}

	return nil
}

// renderValue returns the scalar text of val, or its JSON encoding if it is a
// section or array.
func renderValue(val *lang.Value, indent int) (string, error) {
	if val.IsScalar() {
		return val.String(), nil
	}

	return marshalJSON(val.ToNative(), indent)
}

func marshalJSON(v any, indent int) (string, error) {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	return string(data), err
}

// suggest returns the paths that best fuzzy-match path, best first.
func suggest(path string, paths []string) []string {
	matches := fuzzy.Find(path, paths)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
