// Package sparse: Dense — adapter over gonum's *mat.Dense so dense inputs
// share the capability surface of the sparse layouts. The adapter does not
// copy; it mutates and reads the caller's matrix directly.
package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense wraps a square *mat.Dense behind the Matrix interface.
type Dense struct {
	m *mat.Dense
	n int
}

// FromDense wraps m, which must be square, without copying.
// Complexity: O(1).
func FromDense(m *mat.Dense) (*Dense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("FromDense(%dx%d): %w", r, c, ErrNonSquare)
	}
	if r == 0 {
		return nil, fmt.Errorf("FromDense: %w", ErrBadDim)
	}

	return &Dense{m: m, n: r}, nil
}

// Raw returns the wrapped *mat.Dense (shared storage, not a copy).
func (d *Dense) Raw() *mat.Dense { return d.m }

// Dim returns the matrix order N. Complexity: O(1).
func (d *Dense) Dim() int { return d.n }

// MatVec computes dst = A·x through gonum's dense kernel.
// Complexity: O(N²).
func (d *Dense) MatVec(dst, x []float64) {
	checkVec(d.n, dst, x)
	v := mat.NewVecDense(d.n, x)
	out := mat.NewVecDense(d.n, dst)
	out.MulVec(d.m, v)
}

// Diagonal writes the main diagonal into dst and returns it.
// Complexity: O(N).
func (d *Dense) Diagonal(dst []float64) []float64 {
	dst = growZero(dst, d.n)
	for i := 0; i < d.n; i++ {
		dst[i] = d.m.At(i, i)
	}

	return dst
}

// NonZeros visits non-zero entries row-major.
// Complexity: O(N²).
func (d *Dense) NonZeros(fn func(i, j int, v float64)) {
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			if v := d.m.At(i, j); v != 0 {
				fn(i, j, v)
			}
		}
	}
}

// SetDiag overwrites every diagonal entry with v, in place.
// Complexity: O(N).
func (d *Dense) SetDiag(v float64) {
	for i := 0; i < d.n; i++ {
		d.m.Set(i, i, v)
	}
}

// DenseCopy returns a fresh dense copy of the wrapped matrix. Used by the
// exact eigen path, which must not share storage with the caller.
// Complexity: O(N²).
func (d *Dense) DenseCopy() *mat.Dense {
	out := mat.NewDense(d.n, d.n, nil)
	out.Copy(d.m)

	return out
}
