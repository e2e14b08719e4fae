// Package spectral is an in-memory toolkit for spectral embedding — the
// non-linear dimensionality reduction that projects N samples onto the
// low-frequency eigenvectors of a graph Laplacian.
//
// 🚀 What is spectral?
//
//	A deterministic, test-first library that brings together:
//		• Sparse layouts: COO, CSR and diagonal (DIA) storage with uniform MatVec
//		• Laplacian conditioning: diagonal fixing + bandwidth-aware layout choice
//		• Eigen solvers: exact dense path plus Lanczos and LOBPCG iterations
//		• Embedding pipeline: connectivity diagnosis, degree rescaling,
//		  trivial-mode dropping, stable eigenpair ordering
//		• Estimator facade: Fit / FitTransform lifecycle over raw point clouds
//		  or precomputed affinity matrices
//
// ✨ Why choose spectral?
//
//   - Deterministic – explicit seeds, fixed loop orders, no global state
//   - Rock-solid guarantees – sentinel errors, errors.Is everywhere, no panics
//     on user input
//   - Mostly pure Go – gonum for dense kernels, nothing hidden behind cgo
//   - Extensible – Geometry and Operator are small interfaces; bring your own
//     affinity construction or eigen backend
//
// Under the hood, everything is organized under four subpackages:
//
//	sparse/    — COO/CSR/DIA matrices + dense adapter, shared MatVec capability
//	laplacian/ — LaplacianConditioner: diagonal fixing, banded-vs-CSR selection
//	eigen/     — eigen-decomposition dispatcher over a closed solver set
//	embedding/ — connectivity checker, embedding pipeline, estimator facade
//
// Quick ASCII example:
//
//	    0───1        4───5
//	    │ ╳ │        │ ╳ │
//	    2───3        6───7
//
//	two disjoint 4-cliques: the Laplacian has a double-zero eigenvalue and
//	its null-space eigenvectors place each clique at its own point.
//
// Dive into each package's doc.go for contracts, complexity and error sets.
//
//	go get github.com/katalvlaran/spectral
package spectral
