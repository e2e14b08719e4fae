// Package eigen dispatches eigen-decomposition of a conditioned graph
// Laplacian to a closed set of solver variants and returns the k
// smallest-magnitude eigenpairs, eigenvalues ascending.
//
// What:
//
//   - Decompose(op, k, opts...) over any Operator (Dim + MatVec).
//   - Solvers: Auto, Dense (exact, gonum EigenSym), Lanczos (shift-inverted
//     iteration with full reorthogonalization — the ARPACK role; the spectrum
//     shift is internal and removed before returning), LOBPCG (block
//     iteration with a Jacobi preconditioner), AMG (multigrid-preconditioned;
//     not built into this library).
//   - Auto picks the exact dense path for small problems and Lanczos for
//     large sparse ones.
//
// Why:
//
//   - Spectral embedding needs the low-frequency modes only; iterative
//     solvers reach them in O(iterations·nnz) instead of O(N³).
//   - Each variant owns its iteration and convergence state privately; the
//     caller sees one contract.
//
// Determinism:
//
//   - The start vectors of the iterative solvers are drawn from an explicit
//     seed (WithSeed); there is no global random state anywhere.
//   - Fixed loop orders make repeated calls bit-identical for a fixed seed.
//
// Errors:
//
//   - ErrBadRank: k < 1 or k ≥ N (configuration, never retried).
//   - ErrSolverUnavailable: the AMG variant (configuration, never retried).
//   - ErrNotConverged: iteration budget exhausted (numerical, retryable).
package eigen
