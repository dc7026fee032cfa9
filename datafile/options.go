package datafile

import (
	"log/slog"

	"github.com/carbyne/bvdf/codec"
)

type options struct {
	logger   *slog.Logger
	maxDepth int
}

type Option func(*options)

// WithLogger sets the logger used to report recoverable framing problems.
// A nil logger means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxDepth bounds the nesting of embedded trees.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

func makeOptions(opts []Option) *options {
	o := &options{maxDepth: codec.DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
