// Package eigen: the dispatcher and the eigenpair selection shared by all
// solver variants.
package eigen

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Decompose returns the k smallest-magnitude eigenpairs of op, eigenvalues
// ascending, eigenvectors as columns of an N×k matrix.
//
// Stage 1 (Validate): rank must satisfy 1 ≤ k < N; AMG is rejected as
// unavailable; unknown solver values are rejected.
// Stage 2 (Dispatch): Auto resolves to Dense for N ≤ DefaultDenseCutoff and
// to Lanczos otherwise; the chosen variant runs to completion.
// Stage 3 (Finalize): every variant returns through the same deterministic
// smallest-magnitude selection and ascending ordering.
//
// Failure split: ErrNotConverged is numerical and retryable; ErrBadRank and
// ErrSolverUnavailable are configuration errors and must not be retried.
func Decompose(op Operator, k int, opts ...Option) (*Decomposition, error) {
	o := gatherOptions(opts...)
	n := op.Dim()
	if k < 1 || k >= n {
		return nil, fmt.Errorf("Decompose: k=%d, n=%d: %w", k, n, ErrBadRank)
	}

	s := o.solver
	if s == Auto {
		if n <= DefaultDenseCutoff {
			s = Dense
		} else {
			s = Lanczos
		}
	}

	switch s {
	case Dense:
		return denseEigen(op, k)
	case Lanczos:
		return lanczosEigen(op, k, o)
	case LOBPCG:
		return lobpcgEigen(op, k, o)
	case AMG:
		return nil, fmt.Errorf("Decompose: solver %s: %w", s, ErrSolverUnavailable)
	default:
		return nil, fmt.Errorf("Decompose: solver %s: %w", s, ErrSolverUnavailable)
	}
}

// materialize probes op column by column with unit vectors. Fallback for
// operators that do not implement DenseCopier.
// Complexity: O(N·matvec).
func materialize(op Operator) *mat.Dense {
	n := op.Dim()
	out := mat.NewDense(n, n, nil)
	e := make([]float64, n)
	col := make([]float64, n)
	for j := 0; j < n; j++ {
		e[j] = 1
		op.MatVec(col, e)
		e[j] = 0
		for i := 0; i < n; i++ {
			out.Set(i, j, col[i])
		}
	}

	return out
}

// selectPairs picks the k smallest-magnitude eigenvalues from vals and
// returns their indices sorted ascending by value.
// Deterministic: ties broken by value, then by index.
func selectPairs(vals []float64, k int) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ma, mb := math.Abs(vals[idx[a]]), math.Abs(vals[idx[b]])
		if ma != mb {
			return ma < mb
		}
		if vals[idx[a]] != vals[idx[b]] {
			return vals[idx[a]] < vals[idx[b]]
		}

		return idx[a] < idx[b]
	})
	kept := idx[:k]
	sort.SliceStable(kept, func(a, b int) bool {
		if vals[kept[a]] != vals[kept[b]] {
			return vals[kept[a]] < vals[kept[b]]
		}

		return kept[a] < kept[b]
	})

	return kept
}

// assemble builds a Decomposition from full (vals, vecs) by eigenpair index.
// vecs holds eigenvectors as columns aligned with vals.
func assemble(vals []float64, vecs *mat.Dense, keep []int) *Decomposition {
	n, _ := vecs.Dims()
	out := &Decomposition{
		Values:  make([]float64, len(keep)),
		Vectors: mat.NewDense(n, len(keep), nil),
	}
	for c, j := range keep {
		out.Values[c] = vals[j]
		for i := 0; i < n; i++ {
			out.Vectors.Set(i, c, vecs.At(i, j))
		}
	}

	return out
}
