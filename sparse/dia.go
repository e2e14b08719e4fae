// Package sparse: DIA (diagonal) layout — optimized for banded matrices where
// only a handful of diagonals carry non-zeros, as in grid-like affinity
// graphs. MatVec walks contiguous lanes, which is friendlier to the cache
// than CSR's indirect column loads.
package sparse

// DIA stores one length-N lane per non-empty diagonal. Lane k holds the
// diagonal at offset offsets[k] = j−i, indexed by column j: the entry
// A[j−off, j] lives at data[k][j]. Offsets are sorted ascending.
type DIA struct {
	n       int         // matrix order
	offsets []int       // distinct diagonal offsets (j−i), ascending
	data    [][]float64 // lane per offset, each of length n, indexed by column
}

// Dim returns the matrix order N. Complexity: O(1).
func (m *DIA) Dim() int { return m.n }

// NumDiagonals returns the number of stored diagonal lanes. Complexity: O(1).
func (m *DIA) NumDiagonals() int { return len(m.offsets) }

// MatVec computes dst = A·x lane by lane.
// Complexity: O(d·N), d = number of stored diagonals.
func (m *DIA) MatVec(dst, x []float64) {
	checkVec(m.n, dst, x)
	for i := range dst {
		dst[i] = 0
	}
	for k, off := range m.offsets {
		lane := m.data[k]
		// row i = j − off must stay inside [0, n)
		jLo, jHi := 0, m.n
		if off > 0 {
			jLo = off
		} else {
			jHi = m.n + off
		}
		for j := jLo; j < jHi; j++ {
			dst[j-off] += lane[j] * x[j]
		}
	}
}

// Diagonal writes the main diagonal into dst and returns it.
// Complexity: O(d + N).
func (m *DIA) Diagonal(dst []float64) []float64 {
	dst = growZero(dst, m.n)
	for k, off := range m.offsets {
		if off == 0 {
			copy(dst, m.data[k])

			break
		}
	}

	return dst
}

// NonZeros visits entries lane by lane (offsets ascending, columns ascending
// within a lane), skipping exact zeros.
func (m *DIA) NonZeros(fn func(i, j int, v float64)) {
	for k, off := range m.offsets {
		lane := m.data[k]
		jLo, jHi := 0, m.n
		if off > 0 {
			jLo = off
		} else {
			jHi = m.n + off
		}
		for j := jLo; j < jHi; j++ {
			if lane[j] != 0 {
				fn(j-off, j, lane[j])
			}
		}
	}
}

// ToCOO expands stored lanes back into triplet form (lane-major order).
// Complexity: O(d·N).
func (m *DIA) ToCOO() *COO {
	c := &COO{n: m.n}
	m.NonZeros(func(i, j int, v float64) {
		c.rows = append(c.rows, i)
		c.cols = append(c.cols, j)
		c.vals = append(c.vals, v)
	})

	return c
}
