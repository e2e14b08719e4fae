package embedding_test

import (
	"testing"

	"github.com/katalvlaran/spectral/eigen"
	"github.com/katalvlaran/spectral/embedding"
	"github.com/katalvlaran/spectral/sparse"
)

// benchPath builds the path adjacency without the testing.T helpers.
func benchPath(n int) *sparse.COO {
	c, err := sparse.NewCOO(n)
	if err != nil {
		panic(err)
	}
	for i := 0; i+1 < n; i++ {
		if err := c.Append(i, i+1, 1); err != nil {
			panic(err)
		}
		if err := c.Append(i+1, i, 1); err != nil {
			panic(err)
		}
	}

	return c
}

func benchGeometry(b *testing.B, n int) embedding.Geometry {
	b.Helper()
	geo, err := embedding.NewPrecomputedGeometry(benchPath(n))
	if err != nil {
		b.Fatal(err)
	}

	return geo
}

func BenchmarkEmbed_DensePath(b *testing.B) {
	geo := benchGeometry(b, 128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := embedding.Embed(geo, 2, embedding.WithSolver(eigen.Dense)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmbed_LanczosPath(b *testing.B) {
	geo := benchGeometry(b, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := embedding.Embed(geo, 2, embedding.WithSolver(eigen.Lanczos)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmbed_LOBPCGPath(b *testing.B) {
	geo := benchGeometry(b, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		opts := []embedding.Option{
			embedding.WithSolver(eigen.LOBPCG),
			embedding.WithTolerance(1e-6),
		}
		if _, err := embedding.Embed(geo, 2, opts...); err != nil {
			b.Fatal(err)
		}
	}
}
