// File: sparse/bench_test.go
// Benchmarks compare matvec throughput across layouts on a banded matrix,
// the workload that dominates iterative eigen solvers.
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/spectral/sparse"
)

// benchTridiag builds the order-n path Laplacian without test assertions.
func benchTridiag(n int) *sparse.COO {
	c, _ := sparse.NewCOO(n)
	for i := 0; i < n; i++ {
		deg := 2.0
		if i == 0 || i == n-1 {
			deg = 1.0
		}
		_ = c.Append(i, i, deg)
		if i+1 < n {
			_ = c.Append(i, i+1, -1)
			_ = c.Append(i+1, i, -1)
		}
	}

	return c
}

func benchMatVec(b *testing.B, m sparse.Matrix) {
	n := m.Dim()
	x := make([]float64, n)
	dst := make([]float64, n)
	for i := range x {
		x[i] = float64(i % 7)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.MatVec(dst, x)
	}
}

func BenchmarkMatVec_CSR(b *testing.B) { benchMatVec(b, benchTridiag(4096).ToCSR()) }
func BenchmarkMatVec_DIA(b *testing.B) { benchMatVec(b, benchTridiag(4096).ToDIA()) }
func BenchmarkMatVec_COO(b *testing.B) { benchMatVec(b, benchTridiag(4096)) }
