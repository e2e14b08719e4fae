// Package laplacian: functional configuration for Condition.
// Defaults are documented constants; WithX constructors panic only on
// nonsensical values (programmer error), mirroring the numeric policy used
// across the module.
package laplacian

// DefaultFixDiagonal controls whether Condition overwrites the diagonal.
// The overwrite is the common case; callers whose Laplacian is already
// correctly scaled disable it with WithoutDiagonalFix.
const DefaultFixDiagonal = true

const panicBandLimitInvalid = "laplacian: WithBandLimit: limit must be >= 1"

// Option mutates the conditioner configuration. Safe to apply repeatedly.
type Option func(*options)

type options struct {
	fixDiagonal bool // DefaultFixDiagonal
	bandLimit   int  // DefaultBandLimit
}

// WithoutDiagonalFix keeps the input diagonal untouched; Condition then only
// performs layout selection.
func WithoutDiagonalFix() Option {
	return func(o *options) { o.fixDiagonal = false }
}

// WithBandLimit overrides the distinct-diagonal threshold below which the
// banded (DIA) layout is selected. Panics if limit < 1.
func WithBandLimit(limit int) Option {
	if limit < 1 {
		panic(panicBandLimitInvalid)
	}

	return func(o *options) { o.bandLimit = limit }
}

// gatherOptions resolves defaults then applies setters in order.
func gatherOptions(opts ...Option) options {
	o := options{
		fixDiagonal: DefaultFixDiagonal,
		bandLimit:   DefaultBandLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
