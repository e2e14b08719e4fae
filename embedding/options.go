// Package embedding: functional configuration for the pipeline.
// Defaults are documented constants; WithX constructors panic only on
// nonsensical values (programmer error).
package embedding

import (
	"log"

	"github.com/katalvlaran/spectral/eigen"
)

// Defaults — single source of truth for zero-value behavior.
const (
	// DefaultDropFirst discards the trivial constant eigenvector. Keep it
	// for spectral embedding; disable for spectral clustering, which wants
	// the first eigenvector retained.
	DefaultDropFirst = true

	// DefaultDiagonalValue is the value written over the Laplacian diagonal
	// when WithDiagonalFix enables the conditioning step.
	DefaultDiagonalValue = 1.0
)

// topologyWarning is the single non-fatal diagnostic the pipeline can emit.
const topologyWarning = "embedding: graph is not fully connected, spectral embedding may not work as expected"

// Option mutates the pipeline configuration.
type Option func(*options)

type options struct {
	solver    eigen.Solver
	seed      uint64
	tol       float64
	maxIter   int
	dropFirst bool
	diagFix   bool
	diagValue float64
	onWarning func(string)
}

// WithSolver selects the eigen-decomposition strategy (default Auto).
func WithSolver(s eigen.Solver) Option {
	return func(o *options) { o.solver = s }
}

// WithSeed fixes the pseudo-random seed threaded by value into the solver.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithTolerance sets the solver residual tolerance; zero keeps the solver
// default.
func WithTolerance(tol float64) Option {
	return func(o *options) { o.tol = tol }
}

// WithMaxIter overrides the solver iteration budget.
func WithMaxIter(budget int) Option {
	return func(o *options) { o.maxIter = budget }
}

// WithDropFirst controls whether the trivial constant eigenvector is dropped.
func WithDropFirst(drop bool) Option {
	return func(o *options) { o.dropFirst = drop }
}

// WithDiagonalFix enables the conditioning overwrite of the Laplacian
// diagonal with value before decomposition. Off by default: a correctly
// scaled Laplacian needs no fixing.
func WithDiagonalFix(value float64) Option {
	return func(o *options) {
		o.diagFix = true
		o.diagValue = value
	}
}

// WithWarningHandler redirects the non-fatal topology warning. The default
// handler writes through the stdlib log package.
func WithWarningHandler(fn func(msg string)) Option {
	return func(o *options) {
		if fn != nil {
			o.onWarning = fn
		}
	}
}

// gatherOptions resolves defaults then applies setters in order.
func gatherOptions(opts ...Option) options {
	o := options{
		solver:    eigen.Auto,
		seed:      eigen.DefaultSeed,
		dropFirst: DefaultDropFirst,
		diagValue: DefaultDiagonalValue,
		onWarning: func(msg string) { log.Print(msg) },
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
