// Package eigen: LOBPCG — locally optimal block preconditioned conjugate
// gradient. Iterates a k-column block and performs Rayleigh–Ritz extraction
// on the subspace spanned by the block, the preconditioned residuals and the
// previous search directions.
package eigen

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Diagonaler is implemented by operators exposing their diagonal; LOBPCG uses
// it to build a Jacobi preconditioner. Without it the residuals pass through
// unpreconditioned.
type Diagonaler interface {
	Diagonal(dst []float64) []float64
}

// lobpcgEigen runs block iteration until every Ritz residual meets the
// tolerance or the budget is exhausted.
//
// Stage 1 (Init): seeded random block, orthonormalized via QR.
// Stage 2 (Iterate): residuals → Jacobi preconditioning → Rayleigh–Ritz on
// [X | W | P] → new block and directions.
// Stage 3 (Finalize): ascending eigenpairs from the converged block.
//
// The block needs subspace headroom: when 3k > N the variant degrades to the
// exact dense path, which is always correct and cheap at that size.
//
// Complexity: O(iter·(k·matvec + (3k)²·N)) time, O(k·N) memory.
func lobpcgEigen(op Operator, k int, o options) (*Decomposition, error) {
	n := op.Dim()
	if 3*k > n {
		return denseEigen(op, k)
	}
	maxIter := o.maxIter
	if maxIter == 0 {
		maxIter = DefaultLOBPCGBudget
	}
	rng := rand.New(rand.NewSource(int64(o.seed)))

	// Jacobi preconditioner from the operator diagonal when available.
	var invDiag []float64
	if dg, ok := op.(Diagonaler); ok {
		d := dg.Diagonal(nil)
		invDiag = make([]float64, n)
		for i, v := range d {
			if math.Abs(v) > breakdownEps {
				invDiag[i] = 1 / v
			} else {
				invDiag[i] = 1
			}
		}
	}

	x := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
	}
	x = orth(x)
	var p *mat.Dense

	ax := mat.NewDense(n, k, nil)
	w := mat.NewDense(n, k, nil)
	theta := make([]float64, k)
	xcol := make([]float64, n)
	rcol := make([]float64, n)

	converged := false
	for iter := 0; iter < maxIter && !converged; iter++ {
		applyOp(op, ax, x)

		// Ritz values of the current block and residuals r_j = A·x_j − θ_j·x_j.
		converged = true
		for j := 0; j < k; j++ {
			mat.Col(xcol, j, x)
			mat.Col(rcol, j, ax)
			theta[j] = floats.Dot(xcol, rcol)
			floats.AddScaled(rcol, -theta[j], xcol)
			if floats.Norm(rcol, 2) > o.tol*math.Max(1, math.Abs(theta[j])) {
				converged = false
			}
			if invDiag != nil {
				for i := range rcol {
					rcol[i] *= invDiag[i]
				}
			}
			w.SetCol(j, rcol)
		}
		if converged {
			break
		}

		// Rayleigh–Ritz on the stacked subspace [X | W | P].
		cols := 2 * k
		if p != nil && 3*k <= n {
			cols = 3 * k
		}
		s := mat.NewDense(n, cols, nil)
		s.Slice(0, n, 0, k).(*mat.Dense).Copy(x)
		s.Slice(0, n, k, 2*k).(*mat.Dense).Copy(w)
		if cols == 3*k {
			s.Slice(0, n, 2*k, 3*k).(*mat.Dense).Copy(p)
		}
		q := orth(s)

		aq := mat.NewDense(n, cols, nil)
		applyOp(op, aq, q)
		var tRaw mat.Dense
		tRaw.Mul(q.T(), aq)
		t := mat.NewSymDense(cols, nil)
		for i := 0; i < cols; i++ {
			for j := i; j < cols; j++ {
				t.SetSym(i, j, (tRaw.At(i, j)+tRaw.At(j, i))/2)
			}
		}
		var eig mat.EigenSym
		if !eig.Factorize(t, true) {
			return nil, fmt.Errorf("lobpcgEigen: Rayleigh-Ritz factorization failed: %w", ErrNotConverged)
		}
		var svecs mat.Dense
		eig.VectorsTo(&svecs)

		// New block from the k lowest Ritz vectors; P keeps the step taken.
		var xNew mat.Dense
		xNew.Mul(q, svecs.Slice(0, cols, 0, k))
		p = mat.NewDense(n, k, nil)
		p.Sub(&xNew, x)
		x = mat.DenseCopyOf(&xNew)
	}
	if !converged {
		return nil, fmt.Errorf("lobpcgEigen: budget %d exhausted: %w", maxIter, ErrNotConverged)
	}

	return assemble(theta, x, selectPairs(theta, k)), nil
}

// orth returns an orthonormal basis for the columns of a via Householder QR.
func orth(a *mat.Dense) *mat.Dense {
	var qr mat.QR
	qr.Factorize(a)
	var q mat.Dense
	qr.QTo(&q)
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(q.Slice(0, r, 0, c))

	return out
}

// applyOp computes dst = A·src column by column.
func applyOp(op Operator, dst, src *mat.Dense) {
	n, c := src.Dims()
	x := make([]float64, n)
	y := make([]float64, n)
	for j := 0; j < c; j++ {
		mat.Col(x, j, src)
		op.MatVec(y, x)
		dst.SetCol(j, y)
	}
}
