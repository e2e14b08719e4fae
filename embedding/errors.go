// Package embedding: sentinel error set. All are configuration errors;
// numerical failures surface as eigen.ErrNotConverged.
package embedding

import "errors"

var (
	// ErrNilGeometry indicates a nil Geometry was handed to the pipeline.
	ErrNilGeometry = errors.New("embedding: geometry is nil")

	// ErrGeometryMatrix indicates the geometry failed to provide an affinity
	// or Laplacian matrix.
	ErrGeometryMatrix = errors.New("embedding: geometry did not provide a matrix")

	// ErrBadRank indicates a target dimensionality outside [1, N), or one
	// that leaves no spare mode when the trivial eigenvector is dropped.
	ErrBadRank = errors.New("embedding: rank must satisfy 1 <= k < n")

	// ErrNilPoints indicates a nil input matrix on the estimator surface.
	ErrNilPoints = errors.New("embedding: points matrix is nil")

	// ErrBadRadius indicates a non-positive kernel bandwidth.
	ErrBadRadius = errors.New("embedding: radius must be > 0")

	// ErrBackendUnavailable indicates the accelerated nearest-neighbor
	// backend was requested but is not built into this library.
	ErrBackendUnavailable = errors.New("embedding: neighbor backend not available in this build")
)
