// Package eigen: Lanczos iteration with full reorthogonalization — the
// sparse iterative path filling the ARPACK role. The Krylov process runs in
// shift-inverted form: iterating on (A + σI)⁻¹ maps the smallest eigenvalues
// of a PSD operator onto the well-separated top of the inverted spectrum, so
// they converge within a subspace far smaller than N. The shift is removed
// when Ritz values are mapped back; convergence is verified with a direct
// residual on A itself, never on the inverted surrogate.
package eigen

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// breakdownEps marks a Krylov breakdown: the residual norm below which the
// current subspace is treated as invariant and the iteration restarts with a
// fresh random direction. Restarting is what resolves eigenvalue
// multiplicities (disconnected graphs have a multiple zero eigenvalue that a
// single Krylov sequence cannot see).
const breakdownEps = 1e-12

// cgRelTol is the relative residual target of the inner conjugate-gradient
// solves. Inner-solve noise floors the achievable Ritz residual, so the
// target sits well below DefaultTolerance.
const cgRelTol = 1e-12

// lanczosEigen runs the shift-inverted Lanczos process to a bounded subspace
// dimension and extracts the k smallest-magnitude eigenpairs.
//
// Stage 1 (Budget): subspace bound m = min(n, max(4k+20, budget)).
// Stage 2 (Shift): σ = DefaultShiftScale·mean|diag|, estimated by power
// iteration when the operator hides its diagonal. B = A + σI is positive
// definite for a PSD input, so B⁻¹·x is computable by conjugate gradients.
// Stage 3 (Iterate): three-term recurrence on B⁻¹ with full
// reorthogonalization against every stored basis vector; breakdown restarts
// with a random direction orthogonal to the basis.
// Stage 4 (Ritz): eigendecomposition of the m×m tridiagonal via EigenSym;
// Ritz values μ map back through λ = 1/μ − σ.
// Stage 5 (Verify): per-pair direct residual ‖A·y − λ·y‖ must meet the
// tolerance, else ErrNotConverged (retryable).
//
// Complexity: O(m·(solve + m·N)) time, O(m·N) memory, where solve is one
// inner CG run of at most 4N matvecs.
func lanczosEigen(op Operator, k int, o options) (*Decomposition, error) {
	n := op.Dim()
	m := o.maxIter
	if m == 0 {
		m = 4*k + 20
		if m < DefaultLanczosBudget {
			m = DefaultLanczosBudget
		}
	}
	if m < k+1 {
		m = k + 1
	}
	if m > n {
		m = n
	}

	rng := rand.New(rand.NewSource(int64(o.seed)))
	inv := newShiftInvert(op, shiftSigma(op, rng))

	basis := make([][]float64, 0, m)
	alpha := make([]float64, 0, m)
	beta := make([]float64, 0, m) // beta[j] couples basis[j] and basis[j+1]
	basis = append(basis, randUnit(rng, n, nil, basis))

	w := make([]float64, n)
	for j := 0; j < m; j++ {
		inv.apply(w, basis[j])
		a := floats.Dot(w, basis[j])
		alpha = append(alpha, a)
		floats.AddScaled(w, -a, basis[j])
		if j > 0 && beta[j-1] != 0 {
			floats.AddScaled(w, -beta[j-1], basis[j-1])
		}
		// Full reorthogonalization: cheap at these subspace sizes and it
		// keeps the basis orthogonal to machine precision.
		for _, vi := range basis {
			floats.AddScaled(w, -floats.Dot(w, vi), vi)
		}
		b := floats.Norm(w, 2)
		if j+1 == m {
			break
		}
		next := make([]float64, n)
		if b <= breakdownEps {
			next = randUnit(rng, n, next, basis)
			beta = append(beta, 0)
		} else {
			copy(next, w)
			floats.Scale(1/b, next)
			beta = append(beta, b)
		}
		basis = append(basis, next)
	}

	// Tridiagonal Rayleigh quotient T of the inverted operator: alpha on the
	// diagonal, beta on the first off-diagonals (zeros at restart boundaries
	// keep T block form).
	t := mat.NewSymDense(m, nil)
	for j := 0; j < m; j++ {
		t.SetSym(j, j, alpha[j])
		if j+1 < m {
			t.SetSym(j, j+1, beta[j])
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(t, true) {
		return nil, fmt.Errorf("lanczosEigen: tridiagonal factorization failed: %w", ErrNotConverged)
	}
	mu := eig.Values(nil)
	var tvecs mat.Dense
	eig.VectorsTo(&tvecs)

	// Undo the shift: μ = 1/(λ+σ) ⇒ λ = 1/μ − σ. A non-positive μ only
	// arises from inner-solve noise on a pair nowhere near convergence;
	// pushing it to +Inf keeps it out of the smallest-magnitude selection.
	lam := make([]float64, m)
	for j, v := range mu {
		if v > 0 {
			lam[j] = 1/v - inv.sigma
		} else {
			lam[j] = math.Inf(1)
		}
	}

	keep := selectPairs(lam, k)
	dec := &Decomposition{
		Values:  make([]float64, k),
		Vectors: mat.NewDense(n, k, nil),
	}
	y := make([]float64, n)
	ay := make([]float64, n)
	for c, idx := range keep {
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < m; j++ {
				sum += basis[j][i] * tvecs.At(j, idx)
			}
			y[i] = sum
		}
		if nrm := floats.Norm(y, 2); nrm > 0 {
			floats.Scale(1/nrm, y)
		}
		op.MatVec(ay, y)
		floats.AddScaled(ay, -lam[idx], y)
		if res := floats.Norm(ay, 2); res > o.tol*math.Max(1, math.Abs(lam[idx])) {
			return nil, fmt.Errorf("lanczosEigen: residual %.3g on pair %d exceeds tol %.3g: %w",
				res, c, o.tol, ErrNotConverged)
		}
		dec.Values[c] = lam[idx]
		for i := 0; i < n; i++ {
			dec.Vectors.Set(i, c, y[i])
		}
	}

	return dec, nil
}

// shiftInvert applies (A + σI)⁻¹ by conjugate gradients. Scratch buffers are
// reused across calls; the solve is deterministic (fixed loop order, zero
// start vector every call).
type shiftInvert struct {
	op    Operator
	sigma float64
	r     []float64
	p     []float64
	ap    []float64
}

func newShiftInvert(op Operator, sigma float64) *shiftInvert {
	n := op.Dim()

	return &shiftInvert{
		op:    op,
		sigma: sigma,
		r:     make([]float64, n),
		p:     make([]float64, n),
		ap:    make([]float64, n),
	}
}

// apply solves (A + σI)·dst = q to cgRelTol relative residual, capped at 4N
// iterations. An indefinite direction (pᵀBp ≤ 0, possible only on a non-PSD
// input) stops the solve early; the direct residual check downstream turns
// the resulting inaccuracy into ErrNotConverged.
func (si *shiftInvert) apply(dst, q []float64) {
	n := si.op.Dim()
	for i := range dst {
		dst[i] = 0
	}
	copy(si.r, q)
	copy(si.p, si.r)
	rs := floats.Dot(si.r, si.r)
	qn := floats.Norm(q, 2)
	if qn == 0 {
		return
	}
	for it := 0; it < 4*n && math.Sqrt(rs) > cgRelTol*qn; it++ {
		si.op.MatVec(si.ap, si.p)
		floats.AddScaled(si.ap, si.sigma, si.p)
		pap := floats.Dot(si.p, si.ap)
		if pap <= 0 {
			break
		}
		a := rs / pap
		floats.AddScaled(dst, a, si.p)
		floats.AddScaled(si.r, -a, si.ap)
		rsNew := floats.Dot(si.r, si.r)
		floats.Scale(rsNew/rs, si.p)
		floats.Add(si.p, si.r)
		rs = rsNew
	}
}

// shiftSigma picks the spectrum shift σ: a small fraction of the operator's
// scale, read from the diagonal when exposed and estimated by a short power
// iteration otherwise. Too large a σ flattens the inverted spectrum; too
// small a σ inflates the inner-solve condition number.
func shiftSigma(op Operator, rng *rand.Rand) float64 {
	n := op.Dim()
	scale := 0.0
	if dg, ok := op.(Diagonaler); ok {
		for _, v := range dg.Diagonal(nil) {
			scale += math.Abs(v)
		}
		scale /= float64(n)
	} else {
		v := randUnit(rng, n, nil, nil)
		w := make([]float64, n)
		for it := 0; it < 8; it++ {
			op.MatVec(w, v)
			nrm := floats.Norm(w, 2)
			if nrm <= breakdownEps {
				break
			}
			scale = nrm
			copy(v, w)
			floats.Scale(1/nrm, v)
		}
	}
	if scale <= 0 {
		scale = 1
	}

	return DefaultShiftScale * scale
}

// randUnit fills dst with a unit-norm random direction orthogonal to every
// vector in basis. Draws again on the (measure-zero) chance the projection
// annihilates the draw.
func randUnit(rng *rand.Rand, n int, dst []float64, basis [][]float64) []float64 {
	if dst == nil {
		dst = make([]float64, n)
	}
	for {
		for i := range dst {
			dst[i] = rng.NormFloat64()
		}
		for _, vi := range basis {
			floats.AddScaled(dst, -floats.Dot(dst, vi), vi)
		}
		if nrm := floats.Norm(dst, 2); nrm > 1e-8 {
			floats.Scale(1/nrm, dst)

			return dst
		}
	}
}
