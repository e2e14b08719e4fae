// Package sparse: sentinel error set.
// All constructors and ingestion paths MUST return these sentinels and tests
// MUST check them via errors.Is. Panics are reserved for programmer errors
// (mismatched slice lengths on hot-loop kernels), never for user data.
package sparse

import "errors"

var (
	// ErrBadDim indicates a non-positive matrix order was requested.
	ErrBadDim = errors.New("sparse: matrix order must be > 0")

	// ErrOutOfRange indicates a row or column index outside [0, Dim).
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrNonSquare signals that a square matrix was required but the input
	// wasn't.
	ErrNonSquare = errors.New("sparse: matrix is not square")

	// ErrDimensionMismatch indicates a slice length incompatible with Dim.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")
)
