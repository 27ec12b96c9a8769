package conf

import "github.com/ardnew/ngxconf/log"

// DefaultMaxDepth is the block nesting limit applied when none is configured.
const DefaultMaxDepth = 256

// Option configures parsing.
type Option func(*options)

type options struct {
	logger   log.Logger
	source   string
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger that receives trace and debug records while
// parsing. The zero Logger, the default, discards them.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxDepth limits block nesting. Values less than 1 restore
// [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}

// WithSource names the input in error messages, typically a file path.
func WithSource(name string) Option {
	return func(o *options) { o.source = name }
}
