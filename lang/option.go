package lang

import "github.com/ardnew/bulba/log"

// DefaultMaxDepth is the default maximum nesting depth of array literals.
// Section nesting is always limited to [MaxStage].
const DefaultMaxDepth = 64

// options holds the configuration of a single tokenize or parse call.
type options struct {
	maxDepth int
	logger   log.Logger
}

// Option configures tokenizing and parsing behavior.
type Option func(*options)

// WithMaxDepth sets the maximum nesting depth of array literals.
// Values less than 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// makeOptions applies functional options over the defaults.
func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
