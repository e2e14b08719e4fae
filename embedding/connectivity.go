// Package embedding: graph connectivity diagnosis. A pure query used only to
// decide whether the pipeline emits its non-fatal topology warning; it never
// alters control flow.
package embedding

import "github.com/katalvlaran/spectral/sparse"

// IsConnected reports whether the affinity matrix describes a single
// connected component. Non-zero entries are edges; values are ignored.
//
// Dense layout: breadth-first frontier expansion from node 0 — a boolean
// reached set, grown by one sweep per round until a fixed point, bounded by
// N rounds since each productive round adds at least one node.
// Sparse layouts: component labeling by BFS over adjacency lists built once
// from the non-zero structure.
//
// Complexity: O(N²·rounds) dense worst case, O(N + nnz) sparse.
func IsConnected(g sparse.Matrix) bool {
	if d, ok := g.(*sparse.Dense); ok {
		return denseConnected(d)
	}

	return componentCount(g) == 1
}

// denseConnected expands a reached set from node 0 until no row scan adds a
// new node.
func denseConnected(d *sparse.Dense) bool {
	n := d.Dim()
	raw := d.Raw()
	reached := make([]bool, n)
	reached[0] = true
	total := 1
	for round := 0; round < n; round++ {
		added := 0
		for i := 0; i < n; i++ {
			if !reached[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if !reached[j] && raw.At(i, j) != 0 {
					reached[j] = true
					added++
				}
			}
		}
		if added == 0 {
			break // fixed point
		}
		total += added
	}

	return total == n
}

// componentCount labels connected components over the non-zero structure.
// Edges are treated as undirected: affinity matrices are symmetric by
// contract, and an asymmetric stray entry must not split a component.
func componentCount(g sparse.Matrix) int {
	n := g.Dim()
	adj := make([][]int, n)
	g.NonZeros(func(i, j int, _ float64) {
		if i != j {
			adj[i] = append(adj[i], j)
			adj[j] = append(adj[j], i)
		}
	})

	seen := make([]bool, n)
	var comps int
	queue := make([]int, 0, n)
	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		comps++
		queue = append(queue[:0], s)
		seen[s] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, v := range adj[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
	}

	return comps
}
