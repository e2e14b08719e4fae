// Package sparse: CSR (compressed sparse row) layout — the general-purpose
// format for iterative solvers; matvec touches each stored entry exactly once.
package sparse

// CSR is a square matrix in compressed sparse row form: row i owns the slice
// indices[indptr[i]:indptr[i+1]] (columns ascending) with matching data.
type CSR struct {
	n       int       // matrix order
	indptr  []int     // length n+1, monotone non-decreasing
	indices []int     // column index per stored entry
	data    []float64 // value per stored entry
}

// Dim returns the matrix order N. Complexity: O(1).
func (m *CSR) Dim() int { return m.n }

// NNZ returns the number of stored entries. Complexity: O(1).
func (m *CSR) NNZ() int { return len(m.data) }

// MatVec computes dst = A·x with one pass over the stored entries.
// Complexity: O(nnz).
func (m *CSR) MatVec(dst, x []float64) {
	checkVec(m.n, dst, x)
	for i := 0; i < m.n; i++ {
		var sum float64
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			sum += m.data[p] * x[m.indices[p]]
		}
		dst[i] = sum
	}
}

// Diagonal writes the main diagonal into dst and returns it.
// Complexity: O(nnz) worst case (binary search per row is not worth it for
// the row lengths seen in affinity graphs).
func (m *CSR) Diagonal(dst []float64) []float64 {
	dst = growZero(dst, m.n)
	for i := 0; i < m.n; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			if m.indices[p] == i {
				dst[i] = m.data[p]

				break
			}
		}
	}

	return dst
}

// NonZeros visits stored entries row-major, columns ascending, skipping
// exact zeros.
func (m *CSR) NonZeros(fn func(i, j int, v float64)) {
	for i := 0; i < m.n; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			if m.data[p] != 0 {
				fn(i, m.indices[p], m.data[p])
			}
		}
	}
}

// SetDiag overwrites every diagonal entry with v. Rows that already store a
// structural diagonal are rewritten in place; only when some rows lack one
// does a single splice pass rebuild the arrays, keeping columns ascending.
// Complexity: O(nnz) in place, O(nnz + N) when diagonals must be inserted.
func (m *CSR) SetDiag(v float64) {
	missing := 0
	for i := 0; i < m.n; i++ {
		found := false
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			if m.indices[p] == i {
				m.data[p] = v
				found = true

				break
			}
		}
		if !found {
			missing++
		}
	}
	if missing == 0 {
		return
	}

	indices := make([]int, 0, len(m.indices)+missing)
	data := make([]float64, 0, len(m.data)+missing)
	indptr := make([]int, m.n+1)
	for i := 0; i < m.n; i++ {
		inserted := false
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			j := m.indices[p]
			if !inserted && j > i {
				indices = append(indices, i)
				data = append(data, v)
				inserted = true
			}
			if j == i {
				inserted = true
			}
			indices = append(indices, j)
			data = append(data, m.data[p])
		}
		if !inserted {
			indices = append(indices, i)
			data = append(data, v)
		}
		indptr[i+1] = len(data)
	}
	m.indices, m.data, m.indptr = indices, data, indptr
}

// ToCOO expands the stored entries back into triplet form, preserving
// row-major order. Used by the conditioner when the diagonal must be rewritten
// on a matrix whose structural diagonal may be incomplete.
// Complexity: O(nnz).
func (m *CSR) ToCOO() *COO {
	c := &COO{
		n:    m.n,
		rows: make([]int, 0, len(m.data)),
		cols: make([]int, 0, len(m.data)),
		vals: make([]float64, 0, len(m.data)),
	}
	for i := 0; i < m.n; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			c.rows = append(c.rows, i)
			c.cols = append(c.cols, m.indices[p])
			c.vals = append(c.vals, m.data[p])
		}
	}

	return c
}

// NumDiagonals counts distinct diagonals (offsets i−j) carrying non-zeros.
// Complexity: O(nnz).
func (m *CSR) NumDiagonals() int {
	offsets := make(map[int]struct{}, 8)
	m.NonZeros(func(i, j int, _ float64) {
		offsets[i-j] = struct{}{}
	})

	return len(offsets)
}
