// Package sparse: COO (coordinate) layout — the append-oriented ingestion
// format. Conversions to CSR and DIA live here; both are deterministic.
package sparse

import (
	"fmt"
	"math"
	"sort"
)

// COO is a square matrix stored as parallel (row, col, val) triplets.
// Triplets may arrive in any order; duplicates are summed on conversion.
type COO struct {
	n    int       // matrix order
	rows []int     // row index per triplet
	cols []int     // column index per triplet
	vals []float64 // value per triplet
}

// NewCOO creates an empty n×n coordinate matrix.
// Stage 1 (Validate): n must be positive.
// Stage 2 (Finalize): return the empty container.
// Complexity: O(1).
func NewCOO(n int) (*COO, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewCOO(%d): %w", n, ErrBadDim)
	}

	return &COO{n: n}, nil
}

// Append records the triplet (i, j, v). Zero values are kept structurally;
// callers that want them pruned should simply not append them.
// Returns ErrOutOfRange for bad indices, ErrNaNInf for non-finite values.
// Complexity: O(1) amortized.
func (c *COO) Append(i, j int, v float64) error {
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		return fmt.Errorf("COO.Append(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("COO.Append(%d,%d): %w", i, j, ErrNaNInf)
	}
	c.rows = append(c.rows, i)
	c.cols = append(c.cols, j)
	c.vals = append(c.vals, v)

	return nil
}

// Dim returns the matrix order N. Complexity: O(1).
func (c *COO) Dim() int { return c.n }

// NNZ returns the number of stored triplets (duplicates counted).
// Complexity: O(1).
func (c *COO) NNZ() int { return len(c.vals) }

// NonZeros visits the stored triplets in insertion order, skipping exact
// zeros. Duplicate coordinates are visited as-is (not merged).
func (c *COO) NonZeros(fn func(i, j int, v float64)) {
	for t := range c.vals {
		if c.vals[t] != 0 {
			fn(c.rows[t], c.cols[t], c.vals[t])
		}
	}
}

// Diagonal accumulates the main diagonal into dst and returns it.
// Duplicate diagonal triplets are summed, matching conversion semantics.
// Complexity: O(nnz).
func (c *COO) Diagonal(dst []float64) []float64 {
	dst = growZero(dst, c.n)
	for t := range c.vals {
		if c.rows[t] == c.cols[t] {
			dst[c.rows[t]] += c.vals[t]
		}
	}

	return dst
}

// MatVec computes dst = A·x directly over the triplets.
// Complexity: O(nnz).
func (c *COO) MatVec(dst, x []float64) {
	checkVec(c.n, dst, x)
	for i := range dst {
		dst[i] = 0
	}
	for t := range c.vals {
		dst[c.rows[t]] += c.vals[t] * x[c.cols[t]]
	}
}

// SetDiag overwrites every diagonal entry with v: existing diagonal triplets
// are rewritten in place (first one keeps v, duplicates collapse to 0), and
// rows without a structural diagonal entry gain one.
// Complexity: O(nnz + N).
func (c *COO) SetDiag(v float64) {
	seen := make([]bool, c.n)
	for t := range c.vals {
		if i := c.rows[t]; i == c.cols[t] {
			if seen[i] {
				c.vals[t] = 0 // duplicate diagonal triplet; must not double v
			} else {
				c.vals[t] = v
				seen[i] = true
			}
		}
	}
	for i := 0; i < c.n; i++ {
		if !seen[i] {
			c.rows = append(c.rows, i)
			c.cols = append(c.cols, i)
			c.vals = append(c.vals, v)
		}
	}
}

// NumDiagonals counts the distinct diagonals (offsets i−j) carrying at least
// one non-zero triplet. A small count marks the matrix as effectively banded.
// Complexity: O(nnz).
func (c *COO) NumDiagonals() int {
	offsets := make(map[int]struct{}, 8)
	for t := range c.vals {
		if c.vals[t] != 0 {
			offsets[c.rows[t]-c.cols[t]] = struct{}{}
		}
	}

	return len(offsets)
}

// ToCSR converts the triplets into compressed sparse row form.
// Stage 1 (Order): sort triplet permutation row-major, columns ascending.
// Stage 2 (Merge): sum duplicate coordinates into one slot.
// Stage 3 (Finalize): build indptr/indices/data.
// Deterministic: identical input triplets yield identical CSR arrays.
// Complexity: O(nnz log nnz).
func (c *COO) ToCSR() *CSR {
	perm := make([]int, len(c.vals))
	for t := range perm {
		perm[t] = t
	}
	sort.SliceStable(perm, func(a, b int) bool {
		ta, tb := perm[a], perm[b]
		if c.rows[ta] != c.rows[tb] {
			return c.rows[ta] < c.rows[tb]
		}

		return c.cols[ta] < c.cols[tb]
	})

	m := &CSR{
		n:       c.n,
		indptr:  make([]int, c.n+1),
		indices: make([]int, 0, len(c.vals)),
		data:    make([]float64, 0, len(c.vals)),
	}
	prevRow, prevCol := -1, -1
	for _, t := range perm {
		i, j, v := c.rows[t], c.cols[t], c.vals[t]
		if i == prevRow && j == prevCol {
			m.data[len(m.data)-1] += v // duplicate coordinate: sum

			continue
		}
		m.indices = append(m.indices, j)
		m.data = append(m.data, v)
		prevRow, prevCol = i, j
		m.indptr[i+1] = len(m.data)
	}
	// indptr must be monotone even across empty rows
	for i := 1; i <= c.n; i++ {
		if m.indptr[i] < m.indptr[i-1] {
			m.indptr[i] = m.indptr[i-1]
		}
	}

	return m
}

// ToDIA converts the triplets into diagonal storage.
// Stage 1 (Scan): collect distinct offsets among non-zero triplets.
// Stage 2 (Fill): one length-N lane per offset, indexed by column; duplicate
// coordinates sum into the same slot.
// Complexity: O(nnz + d·N) time, O(d·N) memory (d = distinct diagonals).
func (c *COO) ToDIA() *DIA {
	offSet := make(map[int]int, 8) // offset (j−i) → lane index
	var offsets []int
	for t := range c.vals {
		if c.vals[t] == 0 {
			continue
		}
		off := c.cols[t] - c.rows[t]
		if _, ok := offSet[off]; !ok {
			offSet[off] = 0
			offsets = append(offsets, off)
		}
	}
	sort.Ints(offsets)
	for lane, off := range offsets {
		offSet[off] = lane
	}

	m := &DIA{n: c.n, offsets: offsets, data: make([][]float64, len(offsets))}
	for lane := range m.data {
		m.data[lane] = make([]float64, c.n)
	}
	for t := range c.vals {
		if c.vals[t] == 0 {
			continue
		}
		lane := offSet[c.cols[t]-c.rows[t]]
		m.data[lane][c.cols[t]] += c.vals[t]
	}

	return m
}

// growZero returns dst resized to n and zeroed, allocating when needed.
func growZero(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = 0
	}

	return dst
}
