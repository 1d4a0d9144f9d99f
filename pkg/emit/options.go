package emit

import (
	"github.com/agentstation/councilvotes/pkg/constants"
)

// Options is the configuration for an Emitter.
type Options struct {
	truncate int
	summary  bool
}

// Truncate returns the rune limit for descriptive text in list documents.
func (o *Options) Truncate() int {
	return o.truncate
}

// Summary reports whether summary.md is written.
func (o *Options) Summary() bool {
	return o.summary
}

// Defaults returns the default emitter options.
func Defaults() *Options {
	return &Options{
		truncate: constants.DefaultTruncateLength,
		summary:  false,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures emitter options.
type Option func(*Options)

// WithTruncateLength sets the rune limit for descriptive text in list
// documents. Values below 1 keep the default.
func WithTruncateLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.truncate = n
		}
	}
}

// WithSummary enables the markdown summary document.
func WithSummary(enabled bool) Option {
	return func(o *Options) {
		o.summary = enabled
	}
}
