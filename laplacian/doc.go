// Package laplacian conditions a graph Laplacian for numerically stable
// eigen-decomposition: it can pin the diagonal to a target value and it
// selects the storage layout that maximizes matvec throughput for the
// iterative solvers downstream.
//
// What:
//
//   - Condition wraps any sparse.Matrix into a Conditioned operator tagged
//     KindDense, KindBanded or KindCSR.
//   - The diagonal overwrite is configurable: spectra that are already
//     correctly scaled skip it with WithoutDiagonalFix.
//   - Sparse inputs with at most DefaultBandLimit distinct non-zero diagonals
//     (grid-like affinity graphs) go to DIA storage; everything else to CSR.
//     Dense inputs are mutated in place and tagged KindDense.
//
// Why:
//
//   - Iterative eigen solvers spend almost all their time in y = A·x; a
//     banded matrix multiplied through DIA lanes beats CSR's indirect loads.
//   - The layout choice is performance-only: results are identical across
//     layouts, and downstream code sees only the MatVec capability.
//
// Complexity:
//
//   - Condition: O(nnz log nnz) worst case (COO re-sort on conversion),
//     O(N) for dense input.
//
// Errors:
//
//   - ErrNilMatrix: nil input operator.
package laplacian
