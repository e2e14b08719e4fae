// Package embedding: Geometry collaborators — the providers of affinity and
// Laplacian matrices. The pipeline consumes the interface only; the concrete
// geometries here cover the precomputed-affinity case and brute-force
// heat-kernel construction from a point cloud.
package embedding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectral/sparse"
)

// Geometry provides the affinity matrix and the graph Laplacian over the
// same N samples with matching indexing.
type Geometry interface {
	// AffinityMatrix returns the symmetric non-negative similarity matrix.
	AffinityMatrix() (sparse.Matrix, error)
	// LaplacianMatrix returns the Laplacian derived from the affinity.
	LaplacianMatrix() (sparse.Matrix, error)
}

// Normalization selects the Laplacian variant a geometry derives from its
// affinity matrix.
type Normalization int

const (
	// Unnormalized is the combinatorial Laplacian D − A.
	Unnormalized Normalization = iota
	// SymmetricNormalized is I − D^{-1/2}·A·D^{-1/2}, the symmetrized
	// surrogate of the random-walk Laplacian.
	SymmetricNormalized
	// Geometric first renormalizes the kernel by the degree on both sides
	// (removing sampling-density bias), then builds the symmetric-normalized
	// Laplacian of the renormalized kernel.
	Geometric
)

// NeighborBackend selects how a point-cloud geometry finds neighbors.
type NeighborBackend int

const (
	// BruteForce scans all N² pairs. Always available.
	BruteForce NeighborBackend = iota
	// Indexed delegates to an accelerated spatial index. Not built into
	// this library: selecting it is a configuration error.
	Indexed
)

// kernelCutoff is the hard support of the heat kernel in bandwidth units:
// pairs farther than kernelCutoff·radius get affinity exactly 0.
const kernelCutoff = 3.0

// GeometryOption configures the concrete geometries.
type GeometryOption func(*geoOptions)

type geoOptions struct {
	norm    Normalization
	backend NeighborBackend
	laplace sparse.Matrix // caller-supplied Laplacian override
}

// WithNormalization selects the derived Laplacian variant.
func WithNormalization(n Normalization) GeometryOption {
	return func(o *geoOptions) { o.norm = n }
}

// WithNeighborBackend selects the neighbor-search backend.
func WithNeighborBackend(b NeighborBackend) GeometryOption {
	return func(o *geoOptions) { o.backend = b }
}

// WithLaplacian supplies a precomputed Laplacian; the geometry then returns
// it verbatim instead of deriving one.
func WithLaplacian(l sparse.Matrix) GeometryOption {
	return func(o *geoOptions) { o.laplace = l }
}

func gatherGeoOptions(opts ...GeometryOption) geoOptions {
	var o geoOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// PrecomputedGeometry serves a caller-supplied affinity matrix and derives
// (or passes through) its Laplacian.
type PrecomputedGeometry struct {
	affinity sparse.Matrix
	opts     geoOptions
}

// NewPrecomputedGeometry wraps an existing affinity matrix.
func NewPrecomputedGeometry(affinity sparse.Matrix, opts ...GeometryOption) (*PrecomputedGeometry, error) {
	if affinity == nil {
		return nil, fmt.Errorf("NewPrecomputedGeometry: %w", ErrGeometryMatrix)
	}

	return &PrecomputedGeometry{affinity: affinity, opts: gatherGeoOptions(opts...)}, nil
}

// AffinityMatrix returns the wrapped affinity.
func (p *PrecomputedGeometry) AffinityMatrix() (sparse.Matrix, error) {
	return p.affinity, nil
}

// LaplacianMatrix returns the supplied Laplacian, or derives one from the
// affinity per the configured normalization.
func (p *PrecomputedGeometry) LaplacianMatrix() (sparse.Matrix, error) {
	if p.opts.laplace != nil {
		return p.opts.laplace, nil
	}

	return buildLaplacian(p.affinity, p.opts.norm)
}

// RadiusGeometry builds a heat-kernel affinity from an N×d point matrix:
// a[i,j] = exp(−‖xi−xj‖²/r²), truncated to 0 beyond kernelCutoff·r.
type RadiusGeometry struct {
	points *mat.Dense
	radius float64
	opts   geoOptions

	affinity *sparse.Dense // built lazily, reused across calls
}

// NewRadiusGeometry validates the inputs up front. A zero radius picks the
// default bandwidth 1/d (one over the feature count).
func NewRadiusGeometry(points *mat.Dense, radius float64, opts ...GeometryOption) (*RadiusGeometry, error) {
	if points == nil {
		return nil, fmt.Errorf("NewRadiusGeometry: %w", ErrNilPoints)
	}
	_, d := points.Dims()
	if radius == 0 {
		radius = 1 / float64(d)
	}
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("NewRadiusGeometry(radius=%g): %w", radius, ErrBadRadius)
	}
	o := gatherGeoOptions(opts...)
	if o.backend == Indexed {
		return nil, fmt.Errorf("NewRadiusGeometry: indexed backend: %w", ErrBackendUnavailable)
	}

	return &RadiusGeometry{points: points, radius: radius, opts: o}, nil
}

// AffinityMatrix builds (once) the dense heat-kernel affinity.
// Complexity: O(N²·d).
func (g *RadiusGeometry) AffinityMatrix() (sparse.Matrix, error) {
	if g.affinity != nil {
		return g.affinity, nil
	}
	n, d := g.points.Dims()
	cut2 := kernelCutoff * kernelCutoff * g.radius * g.radius
	r2 := g.radius * g.radius

	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
		for j := i + 1; j < n; j++ {
			var dist2 float64
			for c := 0; c < d; c++ {
				diff := g.points.At(i, c) - g.points.At(j, c)
				dist2 += diff * diff
			}
			if dist2 > cut2 {
				continue
			}
			v := math.Exp(-dist2 / r2)
			a.Set(i, j, v)
			a.Set(j, i, v)
		}
	}
	wrapped, err := sparse.FromDense(a)
	if err != nil {
		return nil, fmt.Errorf("RadiusGeometry: %w", err)
	}
	g.affinity = wrapped

	return wrapped, nil
}

// LaplacianMatrix derives the Laplacian from the affinity per the configured
// normalization.
func (g *RadiusGeometry) LaplacianMatrix() (sparse.Matrix, error) {
	aff, err := g.AffinityMatrix()
	if err != nil {
		return nil, err
	}

	return buildLaplacian(aff, g.opts.norm)
}

// buildLaplacian derives the selected Laplacian variant from an affinity
// matrix. Dense affinity yields a dense Laplacian; sparse affinity yields
// COO (the conditioner picks the final layout).
//
// Stage 1 (Degrees): d_i = Σ_j a_ij; isolated vertices keep degree 1 in the
// normalized variants so the division stays defined (their Laplacian row is
// zero either way).
// Stage 2 (Kernel): the Geometric variant renormalizes a'_ij = a_ij/(d_i·d_j)
// and recomputes degrees.
// Stage 3 (Assemble): D − A, or I − D^{-1/2}·A·D^{-1/2}.
//
// Complexity: O(nnz) sparse, O(N²) dense.
func buildLaplacian(aff sparse.Matrix, norm Normalization) (sparse.Matrix, error) {
	n := aff.Dim()

	deg := make([]float64, n)
	aff.NonZeros(func(i, _ int, v float64) { deg[i] += v })

	// Geometric: divide the kernel by the degree on both sides, then treat
	// the renormalized kernel exactly like the symmetric-normalized case.
	scale := func(i, j int, v float64) float64 { return v }
	if norm == Geometric {
		w := deg
		deg = make([]float64, n)
		aff.NonZeros(func(i, j int, v float64) {
			deg[i] += v / (safe(w[i]) * safe(w[j]))
		})
		scale = func(i, j int, v float64) float64 {
			return v / (safe(w[i]) * safe(w[j]))
		}
	}

	if d, ok := aff.(*sparse.Dense); ok {
		return denseLaplacian(d, deg, norm, scale)
	}

	out, err := sparse.NewCOO(n)
	if err != nil {
		return nil, fmt.Errorf("buildLaplacian: %w", err)
	}
	diag := make([]float64, n)
	var appendErr error
	aff.NonZeros(func(i, j int, v float64) {
		if appendErr != nil {
			return
		}
		v = scale(i, j, v)
		switch {
		case i == j:
			// folded into the diagonal below
			if norm == Unnormalized {
				diag[i] -= v // D − A subtracts the self-affinity
			} else {
				diag[i] -= v / safe(deg[i])
			}
		case norm == Unnormalized:
			appendErr = out.Append(i, j, -v)
		default:
			appendErr = out.Append(i, j, -v/math.Sqrt(safe(deg[i])*safe(deg[j])))
		}
	})
	if appendErr != nil {
		return nil, fmt.Errorf("buildLaplacian: %w", appendErr)
	}
	for i := 0; i < n; i++ {
		if norm == Unnormalized {
			diag[i] += deg[i]
		} else {
			diag[i]++
		}
		if err := out.Append(i, i, diag[i]); err != nil {
			return nil, fmt.Errorf("buildLaplacian: %w", err)
		}
	}

	return out, nil
}

// denseLaplacian is the dense assembly path of buildLaplacian.
func denseLaplacian(d *sparse.Dense, deg []float64, norm Normalization, scale func(i, j int, v float64) float64) (sparse.Matrix, error) {
	n := d.Dim()
	raw := d.Raw()
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := scale(i, j, raw.At(i, j))
			switch {
			case norm == Unnormalized && i == j:
				out.Set(i, i, deg[i]-v)
			case norm == Unnormalized:
				out.Set(i, j, -v)
			case i == j:
				out.Set(i, i, 1-v/safe(deg[i]))
			default:
				out.Set(i, j, -v/math.Sqrt(safe(deg[i])*safe(deg[j])))
			}
		}
	}

	return sparse.FromDense(out)
}

// safe guards degree divisions for isolated vertices.
func safe(d float64) float64 {
	if d == 0 {
		return 1
	}

	return d
}
