package embedding_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/embedding"
	"github.com/katalvlaran/spectral/sparse"
)

// degrees returns row sums of an affinity matrix.
func degrees(a sparse.Matrix) []float64 {
	deg := make([]float64, a.Dim())
	a.NonZeros(func(i, _ int, v float64) { deg[i] += v })

	return deg
}

func TestRadiusGeometry_Affinity(t *testing.T) {
	// three 1-D points: two close, one far beyond the kernel support
	points := mat.NewDense(3, 1, []float64{0, 0.1, 5})
	geo, err := embedding.NewRadiusGeometry(points, 1)
	require.NoError(t, err)

	aff, err := geo.AffinityMatrix()
	require.NoError(t, err)
	require.Equal(t, 3, aff.Dim())

	d, ok := aff.(*sparse.Dense)
	require.True(t, ok)
	raw := d.Raw()
	for i := 0; i < 3; i++ {
		require.Equal(t, 1.0, raw.At(i, i))
	}
	require.InDelta(t, math.Exp(-0.01), raw.At(0, 1), 1e-15)
	require.Equal(t, raw.At(0, 1), raw.At(1, 0))
	// distance 5 exceeds the 3·r support: truncated to exact zero
	require.Equal(t, 0.0, raw.At(0, 2))
	require.Equal(t, 0.0, raw.At(2, 0))

	// second call reuses the cached affinity
	again, err := geo.AffinityMatrix()
	require.NoError(t, err)
	require.Same(t, aff, again)
}

func TestRadiusGeometry_DefaultRadius(t *testing.T) {
	// radius 0 picks 1/d; with d=1 that is bandwidth 1, so the affinity of
	// two points at distance 1 is exp(−1).
	points := mat.NewDense(2, 1, []float64{0, 1})
	geo, err := embedding.NewRadiusGeometry(points, 0)
	require.NoError(t, err)
	aff, err := geo.AffinityMatrix()
	require.NoError(t, err)
	raw := aff.(*sparse.Dense).Raw()
	require.InDelta(t, math.Exp(-1), raw.At(0, 1), 1e-15)
}

func TestRadiusGeometry_Validation(t *testing.T) {
	points := mat.NewDense(2, 2, []float64{0, 0, 1, 1})

	_, err := embedding.NewRadiusGeometry(nil, 1)
	require.ErrorIs(t, err, embedding.ErrNilPoints)

	_, err = embedding.NewRadiusGeometry(points, -1)
	require.ErrorIs(t, err, embedding.ErrBadRadius)

	_, err = embedding.NewRadiusGeometry(points, math.NaN())
	require.ErrorIs(t, err, embedding.ErrBadRadius)

	_, err = embedding.NewRadiusGeometry(points, 1,
		embedding.WithNeighborBackend(embedding.Indexed))
	require.ErrorIs(t, err, embedding.ErrBackendUnavailable)
}

func TestPrecomputedGeometry_NilAffinity(t *testing.T) {
	_, err := embedding.NewPrecomputedGeometry(nil)
	require.ErrorIs(t, err, embedding.ErrGeometryMatrix)
}

func TestPrecomputedGeometry_LaplacianOverride(t *testing.T) {
	aff := cliqueDense(t, 4)
	lap, err := sparse.FromDense(mat.NewDense(4, 4, nil))
	require.NoError(t, err)

	geo, err := embedding.NewPrecomputedGeometry(aff, embedding.WithLaplacian(lap))
	require.NoError(t, err)
	got, err := geo.LaplacianMatrix()
	require.NoError(t, err)
	require.Same(t, sparse.Matrix(lap), got)
}

// TestLaplacian_NullVector checks the defining null space of each variant:
// the all-ones vector for D − A, and D^{1/2}·1 for the normalized forms
// (with the Geometric degrees taken from the renormalized kernel).
func TestLaplacian_NullVector(t *testing.T) {
	affs := map[string]sparse.Matrix{
		"dense":  twoCliquesDense(t, 4),
		"sparse": toCOO(t, twoCliquesDense(t, 4)),
	}
	for name, aff := range affs {
		t.Run(name, func(t *testing.T) {
			n := aff.Dim()
			deg := degrees(aff)

			null := func(norm embedding.Normalization) []float64 {
				v := make([]float64, n)
				switch norm {
				case embedding.Unnormalized:
					for i := range v {
						v[i] = 1
					}
				case embedding.SymmetricNormalized:
					for i := range v {
						v[i] = math.Sqrt(deg[i])
					}
				case embedding.Geometric:
					renorm := make([]float64, n)
					aff.NonZeros(func(i, j int, w float64) {
						renorm[i] += w / (deg[i] * deg[j])
					})
					for i := range v {
						v[i] = math.Sqrt(renorm[i])
					}
				}

				return v
			}

			for _, norm := range []embedding.Normalization{
				embedding.Unnormalized,
				embedding.SymmetricNormalized,
				embedding.Geometric,
			} {
				geo, err := embedding.NewPrecomputedGeometry(aff,
					embedding.WithNormalization(norm))
				require.NoError(t, err)
				lap, err := geo.LaplacianMatrix()
				require.NoError(t, err)
				require.Equal(t, n, lap.Dim())

				dst := make([]float64, n)
				lap.MatVec(dst, null(norm))
				for i, got := range dst {
					require.InDeltaf(t, 0, got, 1e-12, "norm=%d row=%d", norm, i)
				}
			}
		})
	}
}

// TestLaplacian_DenseSparseAgree builds both representations of the same
// affinity and compares the assembled Laplacians entrywise.
func TestLaplacian_DenseSparseAgree(t *testing.T) {
	dense := twoCliquesDense(t, 3)
	coo := toCOO(t, dense)

	for _, norm := range []embedding.Normalization{
		embedding.Unnormalized,
		embedding.SymmetricNormalized,
		embedding.Geometric,
	} {
		gd, err := embedding.NewPrecomputedGeometry(dense, embedding.WithNormalization(norm))
		require.NoError(t, err)
		gs, err := embedding.NewPrecomputedGeometry(coo, embedding.WithNormalization(norm))
		require.NoError(t, err)

		ld, err := gd.LaplacianMatrix()
		require.NoError(t, err)
		ls, err := gs.LaplacianMatrix()
		require.NoError(t, err)

		n := dense.Dim()
		md := make([]float64, n*n)
		ld.NonZeros(func(i, j int, v float64) { md[i*n+j] += v })
		ms := make([]float64, n*n)
		ls.NonZeros(func(i, j int, v float64) { ms[i*n+j] += v })
		for idx := range md {
			require.InDeltaf(t, md[idx], ms[idx], 1e-14, "norm=%d entry=%d", norm, idx)
		}
	}
}
