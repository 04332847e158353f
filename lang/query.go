package lang

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query evaluates an expr-lang expression against the document. Top-level
// keys are variables; sections are maps, so nested values are reachable with
// member access, e.g. `database.pool.max_connections > 50`.
func Query(ctx context.Context, doc *Document, source string, opts ...Option) (any, error) {
	o := makeOptions(opts...)

	env := doc.ToMap()

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrQuery.Wrap(err).
			With(slog.String("source", source))
	}

	o.logger.TraceContext(ctx, "query compiled",
		slog.String("source", source))

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}
