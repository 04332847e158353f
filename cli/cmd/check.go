package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/bulba/lang"
	"github.com/ardnew/bulba/log"
)

// Check parses each source and reports whether it is a valid document.
type Check struct {
	Sources []string `arg:"" help:"Source input files or '-' for stdin. Defaults to every --source." name:"source" optional:""`
}

// Run executes the check command. Every source is checked even after a
// failure; the command fails if any source does.
func (c *Check) Run(ctx context.Context) error {
	sources := c.Sources
	if len(sources) == 0 {
		sources = sourceFilesFrom(ctx)
	}

	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	w := outputFrom(ctx)
	failed := 0

	for _, source := range sources {
		ok, err := checkSource(ctx, w, source)
		if err != nil {
			return err
		}

		if !ok {
			failed++
		}
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("failed", failed),
			slog.Int("total", len(sources)),
		)
	}

	return nil
}

// checkSource writes the result for one source. It returns false if the
// source could not be read or parsed, and an error only if writing fails.
func checkSource(ctx context.Context, w io.Writer, source string) (bool, error) {
	var report string

	content, err := readSource(ctx, source)
	if err == nil {
		_, err = lang.ParseString(ctx, content,
			lang.WithLogger(log.With(slog.String("source", source))))
	}

	switch perr := (*lang.Error)(nil); {
	case err == nil:
		report = fmt.Sprintf("%s: ok\n", source)

	case errors.As(err, &perr) && perr.Line() > 0:
		report = fmt.Sprintf("%s:%d: %s\n%s", source, perr.Line(), perr, perr.Snippet(content))

	default:
		report = fmt.Sprintf("%s: %s\n", source, err)
	}

	if _, werr := io.WriteString(w, report); werr != nil {
		return false, ErrWrite.Wrap(werr).With(slog.String("source", source))
	}

	if err != nil {
		log.DebugContext(ctx, "check failed",
			slog.String("source", source), slog.Any("error", err))
	}

	return err == nil, nil
}
