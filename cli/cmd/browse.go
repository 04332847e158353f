package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/bulba/cli/cmd/browse"
	"github.com/ardnew/bulba/lang"
	"github.com/ardnew/bulba/log"
	"github.com/ardnew/bulba/pkg"
)

// Browse opens an interactive fuzzy finder over the key paths of a document
// and prints the selected "path = value".
type Browse struct {
	History bool `default:"true" help:"Rank recently selected key paths first and remember the selection." negatable:""`

	SourceArg
}

// Run executes the browse command. The finder is drawn on stderr so the
// selection can be piped.
func (b *Browse) Run(ctx context.Context) error {
	source := sourceOrDefault(ctx, b.Source)

	doc, err := loadDocument(ctx, source)
	if err != nil {
		return err
	}

	logger := log.With(slog.String("source", source))

	opts := []browse.Option{
		browse.WithOutput(os.Stderr),
		browse.WithLogger(logger),
	}

	if source == stdinSource {
		opts = append(opts, browse.WithInputTTY())
	}

	if b.History {
		h := browse.NewHistory(filepath.Join(pkg.CacheDir(), browse.BaseHistory))
		if err := h.Load(); err != nil {
			logger.WarnContext(ctx, "browse history not loaded",
				slog.Any("error", err))
		}

		opts = append(opts, browse.WithHistory(h))
	}

	entry, err := browse.Run(ctx, doc, opts...)
	if err != nil {
		return ErrBrowse.Wrap(err).With(slog.String("source", source))
	}

	if entry == nil {
		return nil
	}

	return writeEntry(ctx, entry.Path, entry.Value)
}

// writeEntry prints "path = value", with sections and arrays as compact JSON.
func writeEntry(ctx context.Context, path string, val *lang.Value) error {
	out, err := renderValue(val, 0)
	if err == nil {
		_, err = fmt.Fprintf(outputFrom(ctx), "%s = %s\n", path, out)
	}

	if err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	return nil
}
