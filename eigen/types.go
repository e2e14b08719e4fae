// Package eigen: contract types and sentinel errors.
package eigen

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrBadRank indicates a requested rank outside [1, N).
	ErrBadRank = errors.New("eigen: rank must satisfy 1 <= k < n")

	// ErrSolverUnavailable indicates a solver variant that is not built into
	// this library (the AMG-preconditioned path). A configuration error.
	ErrSolverUnavailable = errors.New("eigen: solver not available in this build")

	// ErrNotConverged indicates the iterative solver exhausted its budget
	// before meeting the tolerance. Retryable with a larger budget or a more
	// robust solver.
	ErrNotConverged = errors.New("eigen: decomposition did not converge")
)

// Operator is the minimal capability the solvers need: a square linear map.
// laplacian.Conditioned satisfies it; so does any sparse.Matrix.
type Operator interface {
	// Dim returns the operator order N.
	Dim() int
	// MatVec computes dst = A·x.
	MatVec(dst, x []float64)
}

// DenseCopier is implemented by operators that can materialize themselves
// densely; the exact solver path uses it to skip N probing matvecs.
type DenseCopier interface {
	DenseCopy() *mat.Dense
}

// Solver selects the decomposition strategy. The set is closed: there is no
// registration mechanism, and unknown values are rejected.
type Solver int

const (
	// Auto picks Dense below DefaultDenseCutoff and Lanczos above it.
	Auto Solver = iota
	// Dense is the exact path: materialize, symmetrize, full decomposition.
	Dense
	// Lanczos is the sparse iterative path with full reorthogonalization.
	Lanczos
	// LOBPCG is the block preconditioned iterative path.
	LOBPCG
	// AMG is the algebraic-multigrid-preconditioned path. Not built in:
	// selecting it returns ErrSolverUnavailable.
	AMG
)

// String implements fmt.Stringer for diagnostics and error text.
func (s Solver) String() string {
	switch s {
	case Auto:
		return "auto"
	case Dense:
		return "dense"
	case Lanczos:
		return "lanczos"
	case LOBPCG:
		return "lobpcg"
	case AMG:
		return "amg"
	default:
		return fmt.Sprintf("Solver(%d)", int(s))
	}
}

// Decomposition holds k eigenpairs of the operator: Values sorted ascending
// (the k smallest-magnitude eigenvalues) and the matching eigenvectors as
// columns of an N×k dense matrix.
type Decomposition struct {
	Values  []float64
	Vectors *mat.Dense
}
