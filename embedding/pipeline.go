// Package embedding: the pipeline itself — from Geometry to N×k embedding.
package embedding

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
	"github.com/katalvlaran/spectral/laplacian"
)

// Embed projects the geometry's N samples onto the k low-frequency
// eigenvectors of its graph Laplacian.
//
// Stage 1 (Validate): geometry must be non-nil and provide both matrices;
// the rank must fit, including the spare mode when the trivial eigenvector
// is dropped. Configuration errors, surfaced immediately.
// Stage 2 (Diagnose): connectivity check on the affinity. A disconnected
// graph triggers the single non-fatal topology warning; the computation
// proceeds unchanged.
// Stage 3 (Condition): the degree vector is captured from the Laplacian
// diagonal, then the conditioner selects the matvec layout (and overwrites
// the diagonal only when WithDiagonalFix asked for it).
// Stage 4 (Decompose): k+1 eigenpairs are requested when dropping the
// trivial mode, else k. On eigen.ErrNotConverged the pipeline retries
// exactly once through the exact dense solver; a second failure surfaces.
// Stage 5 (Reconstruct): each eigenvector is rescaled elementwise by the
// degree vector, recovering eigenvectors of the true (possibly asymmetric)
// Laplacian from the symmetrized surrogate handed to the solver. Columns are
// kept in ascending-eigenvalue order, minus the trivial mode when dropped.
//
// The returned matrix is N×k with rows in input sample order.
func Embed(g Geometry, k int, opts ...Option) (*mat.Dense, error) {
	o := gatherOptions(opts...)
	if g == nil {
		return nil, fmt.Errorf("Embed: %w", ErrNilGeometry)
	}
	aff, err := g.AffinityMatrix()
	if err != nil {
		return nil, fmt.Errorf("Embed: affinity: %w", err)
	}
	lap, err := g.LaplacianMatrix()
	if err != nil {
		return nil, fmt.Errorf("Embed: laplacian: %w", err)
	}
	if aff == nil || lap == nil {
		return nil, fmt.Errorf("Embed: %w", ErrGeometryMatrix)
	}

	n := lap.Dim()
	req := k
	if o.dropFirst {
		req = k + 1
	}
	if k < 1 || k >= n || req >= n {
		return nil, fmt.Errorf("Embed: k=%d, n=%d, dropFirst=%t: %w", k, n, o.dropFirst, ErrBadRank)
	}

	if !IsConnected(aff) {
		o.onWarning(topologyWarning)
	}

	// Degree vector before conditioning: the dense conditioner mutates the
	// Laplacian diagonal in place.
	dd := lap.Diagonal(nil)

	condOpts := []laplacian.Option{}
	if !o.diagFix {
		condOpts = append(condOpts, laplacian.WithoutDiagonalFix())
	}
	cond, err := laplacian.Condition(lap, o.diagValue, condOpts...)
	if err != nil {
		return nil, fmt.Errorf("Embed: %w", err)
	}

	dec, err := decomposeWithRetry(cond, req, o)
	if err != nil {
		return nil, fmt.Errorf("Embed: %w", err)
	}

	start := 0
	if o.dropFirst {
		start = 1
	}
	out := mat.NewDense(n, k, nil)
	for c := 0; c < k; c++ {
		for i := 0; i < n; i++ {
			out.Set(i, c, dec.Vectors.At(i, start+c)*dd[i])
		}
	}

	return out, nil
}

// decomposeWithRetry runs the configured solver and falls back once to the
// exact dense path on numerical non-convergence. Configuration errors are
// never retried.
func decomposeWithRetry(op eigen.Operator, k int, o options) (*eigen.Decomposition, error) {
	eopts := []eigen.Option{
		eigen.WithSolver(o.solver),
		eigen.WithSeed(o.seed),
	}
	if o.tol > 0 {
		eopts = append(eopts, eigen.WithTolerance(o.tol))
	}
	if o.maxIter > 0 {
		eopts = append(eopts, eigen.WithMaxIter(o.maxIter))
	}

	dec, err := eigen.Decompose(op, k, eopts...)
	if err == nil || !errors.Is(err, eigen.ErrNotConverged) {
		return dec, err
	}

	dec, retryErr := eigen.Decompose(op, k,
		eigen.WithSolver(eigen.Dense), eigen.WithSeed(o.seed))
	if retryErr != nil {
		return nil, fmt.Errorf("retry after %v: %w", err, retryErr)
	}

	return dec, nil
}
