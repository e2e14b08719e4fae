// Package eigen: functional configuration for Decompose.
package eigen

// Defaults — single source of truth for zero-value behavior.
const (
	// DefaultDenseCutoff is the largest order for which Auto still picks the
	// exact dense path; above it the O(N³) cost starts to dominate.
	DefaultDenseCutoff = 200

	// DefaultTolerance is the residual tolerance used when WithTolerance is
	// absent or zero (zero means "solver default", as in the ARPACK idiom).
	DefaultTolerance = 1e-8

	// DefaultSeed seeds the iterative solvers' start vectors when WithSeed
	// is absent. Any fixed value keeps results reproducible.
	DefaultSeed uint64 = 1

	// DefaultLanczosBudget bounds the Krylov subspace when WithMaxIter is
	// absent: min(n, max(4k+20, DefaultLanczosBudget)).
	DefaultLanczosBudget = 40

	// DefaultShiftScale sets the Lanczos spectrum shift σ as a fraction of
	// the operator's diagonal scale. Small enough to keep the inverted low
	// end well separated, large enough that the shifted operator stays
	// comfortably positive definite for the inner solves.
	DefaultShiftScale = 1e-4

	// DefaultLOBPCGBudget bounds LOBPCG outer iterations when WithMaxIter is
	// absent.
	DefaultLOBPCGBudget = 200
)

const (
	panicToleranceInvalid = "eigen: WithTolerance: tol must be >= 0"
	panicMaxIterInvalid   = "eigen: WithMaxIter: budget must be >= 1"
)

// Option mutates the decomposition configuration.
type Option func(*options)

type options struct {
	solver  Solver  // Auto
	seed    uint64  // DefaultSeed
	tol     float64 // 0 ⇒ DefaultTolerance
	maxIter int     // 0 ⇒ per-solver default budget
}

// WithSolver selects the decomposition strategy explicitly.
func WithSolver(s Solver) Option {
	return func(o *options) { o.solver = s }
}

// WithSeed fixes the pseudo-random seed for iterative start vectors.
// The seed travels by value; no ambient random state is consulted.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithTolerance sets the residual tolerance for iterative solvers; zero keeps
// the solver default. Panics on negative tol (programmer error).
func WithTolerance(tol float64) Option {
	if tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithMaxIter overrides the iteration budget: the Krylov subspace bound for
// Lanczos, the outer-iteration bound for LOBPCG. Panics if budget < 1.
func WithMaxIter(budget int) Option {
	if budget < 1 {
		panic(panicMaxIterInvalid)
	}

	return func(o *options) { o.maxIter = budget }
}

// gatherOptions resolves defaults then applies setters in order.
func gatherOptions(opts ...Option) options {
	o := options{
		solver: Auto,
		seed:   DefaultSeed,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tol == 0 {
		o.tol = DefaultTolerance
	}

	return o
}
