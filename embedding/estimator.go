// Package embedding: the estimator facade — a reusable, parameterized
// transform object over the pipeline, with sklearn-style Fit and
// FitTransform lifecycle.
package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/eigen"
	"github.com/katalvlaran/spectral/sparse"
)

// DefaultComponents is the target dimensionality when none is configured.
const DefaultComponents = 2

const panicComponentsInvalid = "embedding: Components: count must be >= 1"

// EstimatorOption configures a SpectralEmbedding estimator at construction.
type EstimatorOption func(*SpectralEmbedding)

// Components sets the target dimensionality. Panics if count < 1.
func Components(count int) EstimatorOption {
	if count < 1 {
		panic(panicComponentsInvalid)
	}

	return func(s *SpectralEmbedding) { s.nComponents = count }
}

// PrecomputedAffinity makes Fit interpret its input as an N×N affinity
// matrix instead of an N×d point cloud.
func PrecomputedAffinity() EstimatorOption {
	return func(s *SpectralEmbedding) { s.precomputed = true }
}

// Radius sets the heat-kernel bandwidth for point-cloud input; zero keeps
// the 1/d default.
func Radius(r float64) EstimatorOption {
	return func(s *SpectralEmbedding) { s.radius = r }
}

// Seed fixes the pseudo-random seed handed to the solver.
func Seed(seed uint64) EstimatorOption {
	return func(s *SpectralEmbedding) { s.seed = seed }
}

// SolverChoice selects the eigen-decomposition strategy.
func SolverChoice(solver eigen.Solver) EstimatorOption {
	return func(s *SpectralEmbedding) { s.solver = solver }
}

// Backend selects the neighbor-search backend for point-cloud input.
func Backend(b NeighborBackend) EstimatorOption {
	return func(s *SpectralEmbedding) { s.backend = b }
}

// Normalize selects the Laplacian variant derived from the affinity.
func Normalize(n Normalization) EstimatorOption {
	return func(s *SpectralEmbedding) { s.norm = n }
}

// KeepFirst retains the trivial constant eigenvector (spectral clustering
// wants it; spectral embedding drops it).
func KeepFirst() EstimatorOption {
	return func(s *SpectralEmbedding) { s.keepFirst = true }
}

// SpectralEmbedding is the reusable estimator: configure once, Fit per
// dataset. Not safe for concurrent Fit calls on the same instance; each
// call owns its matrices exclusively for its duration.
type SpectralEmbedding struct {
	nComponents int
	precomputed bool
	radius      float64
	seed        uint64
	solver      eigen.Solver
	backend     NeighborBackend
	norm        Normalization
	keepFirst   bool

	embedding *mat.Dense
	affinity  sparse.Matrix
}

// New builds an estimator with the given options over documented defaults.
func New(opts ...EstimatorOption) *SpectralEmbedding {
	s := &SpectralEmbedding{
		nComponents: DefaultComponents,
		seed:        eigen.DefaultSeed,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fit builds a Geometry from x per the configured parameters, runs the
// pipeline, and stores the embedding.
//
// x is N×d points, or N×N affinity when PrecomputedAffinity was set.
func (s *SpectralEmbedding) Fit(x *mat.Dense, opts ...Option) error {
	if x == nil {
		return fmt.Errorf("Fit: %w", ErrNilPoints)
	}
	geo, aff, err := s.buildGeometry(x)
	if err != nil {
		return fmt.Errorf("Fit: %w", err)
	}

	runOpts := append([]Option{
		WithSolver(s.solver),
		WithSeed(s.seed),
		WithDropFirst(!s.keepFirst),
	}, opts...)
	emb, err := Embed(geo, s.nComponents, runOpts...)
	if err != nil {
		return fmt.Errorf("Fit: %w", err)
	}
	s.embedding = emb
	s.affinity = aff

	return nil
}

// FitTransform chains Fit and returns the stored embedding.
func (s *SpectralEmbedding) FitTransform(x *mat.Dense, opts ...Option) (*mat.Dense, error) {
	if err := s.Fit(x, opts...); err != nil {
		return nil, err
	}

	return s.embedding, nil
}

// Embedding returns the result of the last successful Fit (nil before any).
func (s *SpectralEmbedding) Embedding() *mat.Dense { return s.embedding }

// AffinityMatrix returns the affinity used by the last successful Fit.
func (s *SpectralEmbedding) AffinityMatrix() sparse.Matrix { return s.affinity }

// buildGeometry maps the configured parameters onto a concrete Geometry.
func (s *SpectralEmbedding) buildGeometry(x *mat.Dense) (Geometry, sparse.Matrix, error) {
	if s.precomputed {
		aff, err := sparse.FromDense(x)
		if err != nil {
			return nil, nil, err
		}
		geo, err := NewPrecomputedGeometry(aff, WithNormalization(s.norm))
		if err != nil {
			return nil, nil, err
		}

		return geo, aff, nil
	}

	geo, err := NewRadiusGeometry(x, s.radius,
		WithNormalization(s.norm), WithNeighborBackend(s.backend))
	if err != nil {
		return nil, nil, err
	}
	aff, err := geo.AffinityMatrix()
	if err != nil {
		return nil, nil, err
	}

	return geo, aff, nil
}
