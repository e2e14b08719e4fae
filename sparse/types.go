// Package sparse: the shared capability surface implemented by every layout.
// Downstream packages (laplacian, eigen, embedding) consume this interface
// only; concrete layouts are inspected exactly once, by the conditioner.
package sparse

// Matrix is the uniform capability surface of all square layouts (COO, CSR,
// DIA, Dense). Implementations are deterministic: NonZeros visits entries in
// a fixed order, MatVec accumulates in a fixed loop order.
type Matrix interface {
	// Dim returns the matrix order N.
	// Complexity: O(1).
	Dim() int

	// MatVec computes dst = A·x.
	// Panics if len(dst) != Dim() or len(x) != Dim() (programmer error).
	// Complexity: layout-dependent; see package doc.
	MatVec(dst, x []float64)

	// Diagonal writes the main diagonal into dst (allocating when dst is nil
	// or too short) and returns it. Structurally absent entries read as 0.
	// Complexity: O(N) for Dense/DIA, O(nnz) for COO, O(nnz/N) per row for CSR.
	Diagonal(dst []float64) []float64

	// NonZeros calls fn for every structurally non-zero entry (i, j, v) in a
	// deterministic, layout-defined order. Entries with v == 0 are skipped.
	NonZeros(fn func(i, j int, v float64))
}

// checkVec panics when a kernel receives slices of the wrong length.
// Kernels are hot loops; returning errors here would be dead weight, and a
// mismatched length is always a programmer error.
func checkVec(n int, dst, x []float64) {
	if len(dst) != n || len(x) != n {
		panic(ErrDimensionMismatch)
	}
}
