package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/bulba/lang"
	"github.com/ardnew/bulba/log"
)

// flagSeparator joins section names and keys into flag names.
const flagSeparator = "-"

// loadBULBA returns a [kong.ConfigurationLoader] that parses config files
// written in BULBA itself.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadBULBA(ctx), "/path/to/config.bulba")
//
// Sections are joined to their keys with hyphens to form flag names, so
//
//	BULBA!
//	(o) log (o)
//	    level ~> "debug"
//	    pretty ~> NotVeryEffective
//	source ~> <| "app.bulba", "base.bulba" |>
//
// is applied to Kong flags as
//
//	--log-level=debug
//	--log-pretty=false
//	--source=app.bulba,base.bulba
//
// Keys may use underscores in place of hyphens. A config file that does not
// parse is logged and ignored. Command-line flags override config file values.
func loadBULBA(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := lang.ParseReader(ctx, r, lang.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "config ignored",
				slog.String("format", "bulba"), slog.Any("error", err))

			return config{}, nil
		}

		return flatten(doc.ToMap()), nil
	}
}

// loadYAML returns a [kong.ConfigurationLoader] that parses YAML config
// files. Nested mappings are joined to their keys with hyphens, like the
// sections of [loadBULBA].
func loadYAML(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var m map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &m)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "config ignored",
				slog.String("format", "yaml"), slog.Any("error", err))

			return config{}, nil
		}

		return flatten(m), nil
	}
}

// config implements [kong.Resolver] for flattened configuration maps.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config identifiers
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten converts a nested map into a config keyed by hyphen-joined paths.
// Null values are dropped.
func flatten(m map[string]any) config {
	result := make(config)

	flattenInto(result, "", m)

	return result
}

func flattenInto(result config, prefix string, m map[string]any) {
	for key, val := range m {
		name := prefix + key

		if sub, ok := val.(map[string]any); ok {
			flattenInto(result, name+flagSeparator, sub)

			continue
		}

		if flag, ok := flagValue(val); ok {
			result[name] = flag
		}
	}
}

// flagValue converts a config value into a form Kong can decode. Kong
// requires numbers as strings, and decodes slices from comma-separated
// strings.
func flagValue(val any) (any, bool) {
	switch v := val.(type) {
	case nil:
		return nil, false

	case string, bool:
		return v, true

	case int64:
		return strconv.FormatInt(v, 10), true

	case uint64:
		return strconv.FormatUint(v, 10), true

	case int:
		return strconv.Itoa(v), true

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true

	case []any:
		elems := make([]string, 0, len(v))

		for _, e := range v {
			if s, ok := flagValue(e); ok {
				elems = append(elems, fmt.Sprint(s))
			}
		}

		return strings.Join(elems, ","), true

	default:
		return fmt.Sprint(v), true
	}
}
