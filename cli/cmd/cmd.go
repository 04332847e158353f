package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/bulba/lang"
	"github.com/ardnew/bulba/log"
)

// stdinSource is the source name that reads standard input.
const stdinSource = "-"

type (
	contextKey     struct{}
	sourceFilesKey struct{}
	inputKey       struct{}
	outputKey      struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// WithInput returns a context whose commands read "-" sources from r instead
// of [os.Stdin].
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithOutput returns a context whose commands write their results to w
// instead of [os.Stdout].
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// WithSourceFiles returns a context holding the global --source files. They
// are used by commands that are not given a source of their own.
//
// The list is deduplicated by resolving symlinks and comparing device and
// inode numbers. Any number of "-" entries collapse to a single stdin source
// placed last.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, uniqueSources(sources))
}

func sourceFilesFrom(ctx context.Context) []string {
	s, _ := ctx.Value(sourceFilesKey{}).([]string)

	return s
}

// sourceOrDefault returns source if set, else the first global source, else
// stdin.
func sourceOrDefault(ctx context.Context, source string) string {
	if source != "" {
		return source
	}

	if global := sourceFilesFrom(ctx); len(global) > 0 {
		return global[0]
	}

	return stdinSource
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueSources removes duplicate paths from sources, keeping the first
// occurrence. Paths that cannot be resolved are kept verbatim so that opening
// them reports the error.
func uniqueSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}

	var (
		unique   = make([]string, 0, len(sources))
		seen     = make(map[fileKey]struct{})
		literal  = make(map[string]struct{})
		hasStdin bool
	)

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		key, ok := statKey(src)
		if !ok {
			if _, dup := literal[src]; !dup {
				literal[src] = struct{}{}
				unique = append(unique, src)
			}

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		unique = append(unique, src)
	}

	if hasStdin {
		unique = append(unique, stdinSource)
	}

	return unique
}

// statKey resolves path through symlinks and returns its device/inode key.
func statKey(path string) (fileKey, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// readSource returns the full content of a source file, or of the context's
// input for "-".
func readSource(ctx context.Context, source string) (string, error) {
	var (
		data []byte
		err  error
	)

	if source == stdinSource {
		data, err = io.ReadAll(inputFrom(ctx))
	} else {
		data, err = os.ReadFile(source)
	}

	if err != nil {
		return "", ErrReadSource.Wrap(err).
			With(slog.String("source", source))
	}

	return string(data), nil
}

// loadDocument reads and parses a source. Parse failures are returned as
// [ErrParse] wrapping the [*lang.Error], annotated with the source name and
// the offending line.
func loadDocument(ctx context.Context, source string) (*lang.Document, error) {
	content, err := readSource(ctx, source)
	if err != nil {
		return nil, err
	}

	doc, err := lang.ParseString(ctx, content,
		lang.WithLogger(log.With(slog.String("source", source))))
	if err != nil {
		return nil, parseError(source, content, err)
	}

	return doc, nil
}

func parseError(source, content string, err error) *Error {
	e := ErrParse.Wrap(err).With(slog.String("source", source))

	if perr := lang.WrapError(err); perr.Line() > 0 {
		e = e.With(
			slog.Int("line", perr.Line()),
			slog.String("kind", perr.Kind().String()),
			slog.String("snippet", perr.Snippet(content)),
		)
	}

	return e
}
