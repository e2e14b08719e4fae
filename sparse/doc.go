// Package sparse provides the square-matrix storage layouts used by the
// spectral embedding pipeline: coordinate (COO), compressed sparse row (CSR)
// and diagonal (DIA) formats, plus a thin adapter over gonum's dense matrix.
//
// What:
//
//   - COO is the ingestion format: append (i, j, v) triplets in any order.
//   - CSR offers the fastest general matrix-vector product and is the layout
//     handed to iterative eigen solvers.
//   - DIA stores a small set of non-zero diagonals and beats CSR on matvec
//     throughput for banded matrices (grid-like affinity graphs).
//   - Dense wraps a *mat.Dense so dense and sparse inputs share one
//     capability surface.
//
// Why:
//
//   - Iterative eigen solvers are dominated by repeated y = A·x; the layout
//     choice is a throughput decision, never a correctness one.
//   - The conditioning step needs to rewrite the diagonal and count distinct
//     non-zero diagonals cheaply; COO makes both trivial.
//
// Capability surface (the Matrix interface):
//
//   - Dim() — matrix order N (all layouts are square).
//   - MatVec(dst, x) — dst = A·x; panics on length mismatch (programmer error).
//   - Diagonal(dst) — copy of the main diagonal.
//   - NonZeros(fn) — deterministic visit of all structurally non-zero entries.
//
// Complexity:
//
//   - COO.Append: O(1) amortized; COO.ToCSR: O(nnz log nnz); COO.ToDIA: O(d·N).
//   - MatVec: O(nnz) for COO/CSR, O(d·N) for DIA, O(N²) for Dense.
//
// Errors:
//
//   - ErrBadDim: non-positive matrix order.
//   - ErrOutOfRange: triplet index outside [0, N).
//   - ErrNaNInf: NaN or ±Inf value at ingestion.
//   - ErrNonSquare: a rectangular matrix where a square one is required.
//   - ErrDimensionMismatch: slice length does not match Dim.
package sparse
