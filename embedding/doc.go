// Package embedding orchestrates the spectral embedding pipeline: graph
// connectivity diagnosis, Laplacian conditioning, eigen-decomposition
// dispatch, and reconstruction of the final N×k embedding from raw
// eigenpairs. It also ships the Geometry collaborators and the estimator
// facade (Fit / FitTransform).
//
// What:
//
//   - IsConnected diagnoses whether an affinity matrix is one connected
//     component (BFS labeling for sparse layouts, frontier fixpoint for
//     dense).
//   - Embed runs the full pipeline over any Geometry: warn on disconnected
//     input, condition the Laplacian, request the low eigenpairs, rescale by
//     the degree vector, drop the trivial constant mode, return rows in
//     input order.
//   - Geometry is the affinity/Laplacian provider boundary. Two concrete
//     geometries are included: PrecomputedGeometry (affinity given) and
//     RadiusGeometry (heat-kernel affinity from a point cloud).
//   - SpectralEmbedding is the reusable, parameterized estimator facade.
//
// Why:
//
//   - The low-frequency eigenvectors of a graph Laplacian encode cluster and
//     manifold structure; projecting samples onto them is a non-linear
//     dimensionality reduction (Laplacian eigenmaps / diffusion maps).
//
// Degree rescaling:
//
//	The Laplacian handed to the solver may be a symmetrized surrogate
//	L* = D^{-1/2}·S·D^{-1/2} of the true, non-symmetric L = D^{-1}·S.
//	Both share a spectrum; eigenvectors of L are recovered by multiplying
//	each returned eigenvector elementwise by the degree vector taken from
//	the Laplacian diagonal before conditioning.
//
// Disconnected graphs:
//
//	A disconnected graph is numerically valid input: the trivial eigenvalue
//	gains one multiplicity per component and the leading eigenvectors
//	uncover the components instead of manifold structure. The pipeline
//	emits a single non-fatal warning and computes the embedding anyway;
//	dropping only one trivial mode then leaves block-constant structure in
//	the first retained dimension. Accepted, documented, not corrected.
//
// Errors:
//
//   - ErrNilGeometry, ErrGeometryMatrix, ErrBadRank, ErrNilPoints,
//     ErrBadRadius, ErrBackendUnavailable — configuration, never retried.
//   - eigen.ErrNotConverged — numerical; the pipeline retries exactly once
//     through the exact dense solver before surfacing it.
package embedding
