// Package eigen_test validates the dispatcher contract and the agreement of
// every solver variant with the exact dense path: identical eigenvalues,
// identical eigenvectors up to per-vector sign, ascending order, and the
// configuration/numerical error split.
package eigen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spectral/eigen"
	"github.com/katalvlaran/spectral/sparse"
)

// pathGraph returns the order-n path-graph Laplacian (simple spectrum:
// eigenvalues 2−2cos(kπ/n), all distinct) in CSR form.
func pathGraph(t *testing.T, n int) *sparse.CSR {
	t.Helper()
	c, err := sparse.NewCOO(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		deg := 2.0
		if i == 0 || i == n-1 {
			deg = 1.0
		}
		require.NoError(t, c.Append(i, i, deg))
		if i+1 < n {
			require.NoError(t, c.Append(i, i+1, -1))
			require.NoError(t, c.Append(i+1, i, -1))
		}
	}

	return c.ToCSR()
}

// doubleClique returns the Laplacian of two disjoint size-half cliques:
// the zero eigenvalue has multiplicity two.
func doubleClique(t *testing.T, half int) *sparse.CSR {
	t.Helper()
	n := 2 * half
	c, err := sparse.NewCOO(n)
	require.NoError(t, err)
	for block := 0; block < 2; block++ {
		lo := block * half
		for i := lo; i < lo+half; i++ {
			require.NoError(t, c.Append(i, i, float64(half-1)))
			for j := lo; j < lo+half; j++ {
				if i != j {
					require.NoError(t, c.Append(i, j, -1))
				}
			}
		}
	}

	return c.ToCSR()
}

func pathEigenvalue(k, n int) float64 {
	return 2 - 2*math.Cos(float64(k)*math.Pi/float64(n))
}

func TestDecompose_BadRank(t *testing.T) {
	l := pathGraph(t, 5)
	_, err := eigen.Decompose(l, 0)
	require.ErrorIs(t, err, eigen.ErrBadRank)
	_, err = eigen.Decompose(l, 5)
	require.ErrorIs(t, err, eigen.ErrBadRank)
	_, err = eigen.Decompose(l, 7)
	require.ErrorIs(t, err, eigen.ErrBadRank)
}

func TestDecompose_AMGUnavailable(t *testing.T) {
	_, err := eigen.Decompose(pathGraph(t, 8), 2, eigen.WithSolver(eigen.AMG))
	require.ErrorIs(t, err, eigen.ErrSolverUnavailable)
}

func TestDecompose_Dense_PathSpectrum(t *testing.T) {
	const n, k = 12, 4
	dec, err := eigen.Decompose(pathGraph(t, n), k, eigen.WithSolver(eigen.Dense))
	require.NoError(t, err)
	require.Len(t, dec.Values, k)
	r, c := dec.Vectors.Dims()
	require.Equal(t, n, r)
	require.Equal(t, k, c)

	// Analytic path-graph spectrum, ascending.
	for i := 0; i < k; i++ {
		require.InDelta(t, pathEigenvalue(i, n), dec.Values[i], 1e-10)
	}
	// Trivial mode: eigenvalue 0, constant eigenvector.
	require.InDelta(t, 0, dec.Values[0], 1e-10)
	first := dec.Vectors.At(0, 0)
	for i := 1; i < n; i++ {
		require.InDelta(t, first, dec.Vectors.At(i, 0), 1e-8)
	}
}

func TestDecompose_Dense_MaterializeFallback(t *testing.T) {
	// CSR implements Operator but not DenseCopier: exercises unit-vector
	// probing. Same spectrum as the DenseCopy route.
	dec, err := eigen.Decompose(pathGraph(t, 10), 3, eigen.WithSolver(eigen.Dense))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.InDelta(t, pathEigenvalue(i, 10), dec.Values[i], 1e-10)
	}
}

// sameUpToSign asserts two column vectors agree entry-wise after aligning the
// global sign of each.
func sameUpToSign(t *testing.T, want, got []float64, tol float64) {
	t.Helper()
	sign := 1.0
	if want[0]*got[0] < 0 || (want[0] == 0 && want[1]*got[1] < 0) {
		sign = -1
	}
	for i := range want {
		require.InDelta(t, want[i], sign*got[i], tol)
	}
}

func TestDecompose_Lanczos_AgreesWithDense(t *testing.T) {
	const n, k = 30, 3
	l := pathGraph(t, n)
	exact, err := eigen.Decompose(l, k, eigen.WithSolver(eigen.Dense))
	require.NoError(t, err)
	iter, err := eigen.Decompose(l, k, eigen.WithSolver(eigen.Lanczos), eigen.WithSeed(7))
	require.NoError(t, err)

	for i := 0; i < k; i++ {
		require.InDelta(t, exact.Values[i], iter.Values[i], 1e-7)
		we := make([]float64, n)
		wi := make([]float64, n)
		for r := 0; r < n; r++ {
			we[r] = exact.Vectors.At(r, i)
			wi[r] = iter.Vectors.At(r, i)
		}
		sameUpToSign(t, we, wi, 1e-6)
	}
}

// TestDecompose_Lanczos_Multiplicity: the double zero eigenvalue of a
// disconnected graph requires the breakdown restart to be found.
func TestDecompose_Lanczos_Multiplicity(t *testing.T) {
	const half = 8
	dec, err := eigen.Decompose(doubleClique(t, half), 2,
		eigen.WithSolver(eigen.Lanczos), eigen.WithSeed(3))
	require.NoError(t, err)
	require.InDelta(t, 0, dec.Values[0], 1e-8)
	require.InDelta(t, 0, dec.Values[1], 1e-8)

	// every null-space vector is constant within each clique
	for j := 0; j < 2; j++ {
		for _, lo := range []int{0, half} {
			base := dec.Vectors.At(lo, j)
			for i := lo + 1; i < lo+half; i++ {
				require.InDelta(t, base, dec.Vectors.At(i, j), 1e-7)
			}
		}
	}
}

// TestDecompose_Lanczos_SmallSubspace: the low end of a large PSD operator
// must converge inside a Krylov subspace far smaller than N — here the
// default budget of 40 against N = 500, where the smallest eigenvalues are
// clustered within 1e-3 of each other. The shift-inverted iteration is what
// makes this regime work; without it the low end never meets the tolerance
// and every large sparse decomposition would pay the dense fallback.
func TestDecompose_Lanczos_SmallSubspace(t *testing.T) {
	const n, k = 500, 4
	dec, err := eigen.Decompose(pathGraph(t, n), k,
		eigen.WithSolver(eigen.Lanczos), eigen.WithSeed(5))
	require.NoError(t, err)

	for i := 0; i < k; i++ {
		require.InDelta(t, pathEigenvalue(i, n), dec.Values[i], 1e-7)
	}

	// second mode against the analytic eigenvector cos(π(j+1/2)/n)
	want := make([]float64, n)
	var nrm float64
	for j := 0; j < n; j++ {
		want[j] = math.Cos(math.Pi * (float64(j) + 0.5) / float64(n))
		nrm += want[j] * want[j]
	}
	nrm = math.Sqrt(nrm)
	got := make([]float64, n)
	for j := 0; j < n; j++ {
		want[j] /= nrm
		got[j] = dec.Vectors.At(j, 1)
	}
	sameUpToSign(t, want, got, 1e-3)
}

func TestDecompose_LOBPCG_AgreesWithDense(t *testing.T) {
	const n, k = 40, 3
	l := pathGraph(t, n)
	exact, err := eigen.Decompose(l, k, eigen.WithSolver(eigen.Dense))
	require.NoError(t, err)
	iter, err := eigen.Decompose(l, k,
		eigen.WithSolver(eigen.LOBPCG), eigen.WithSeed(11), eigen.WithTolerance(1e-6))
	require.NoError(t, err)

	for i := 0; i < k; i++ {
		require.InDelta(t, exact.Values[i], iter.Values[i], 1e-5)
	}
}

func TestDecompose_LOBPCG_SmallFallsBackExact(t *testing.T) {
	// 3k > N: the block cannot fit; the variant degrades to the exact path.
	dec, err := eigen.Decompose(pathGraph(t, 5), 2, eigen.WithSolver(eigen.LOBPCG))
	require.NoError(t, err)
	require.InDelta(t, pathEigenvalue(0, 5), dec.Values[0], 1e-10)
	require.InDelta(t, pathEigenvalue(1, 5), dec.Values[1], 1e-10)
}

func TestDecompose_Determinism(t *testing.T) {
	l := pathGraph(t, 25)
	a, err := eigen.Decompose(l, 3, eigen.WithSolver(eigen.Lanczos), eigen.WithSeed(42))
	require.NoError(t, err)
	b, err := eigen.Decompose(l, 3, eigen.WithSolver(eigen.Lanczos), eigen.WithSeed(42))
	require.NoError(t, err)

	require.Equal(t, a.Values, b.Values)
	require.Equal(t, a.Vectors.RawMatrix().Data, b.Vectors.RawMatrix().Data)
}

func TestDecompose_Lanczos_TightBudgetNotConverged(t *testing.T) {
	// A starved Krylov budget on a larger graph must surface the retryable
	// non-convergence error, not a silently degraded result.
	c, err := sparse.NewCOO(400)
	require.NoError(t, err)
	for i := 0; i < 400; i++ {
		deg := 2.0
		if i == 0 || i == 399 {
			deg = 1.0
		}
		require.NoError(t, c.Append(i, i, deg))
		if i+1 < 400 {
			require.NoError(t, c.Append(i, i+1, -1))
			require.NoError(t, c.Append(i+1, i, -1))
		}
	}
	_, err = eigen.Decompose(c.ToCSR(), 4,
		eigen.WithSolver(eigen.Lanczos), eigen.WithMaxIter(6), eigen.WithTolerance(1e-12))
	require.ErrorIs(t, err, eigen.ErrNotConverged)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { eigen.WithTolerance(-1) })
	require.Panics(t, func() { eigen.WithMaxIter(0) })
}
