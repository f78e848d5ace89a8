package sparse

import "errors"

// ErrInvalidDimensions indicates a non-positive matrix dimension.
var ErrInvalidDimensions = errors.New("sparse: dimensions must be > 0")

// ErrIndexOutOfBounds indicates a row or column index outside [0, N).
var ErrIndexOutOfBounds = errors.New("sparse: index out of bounds")
