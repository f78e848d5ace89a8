package heom

import "errors"

// Sentinel errors for the heom package. The validation errors are returned
// synchronously at call boundaries before any computation begins;
// ErrResidualTooLarge is returned after the steady-state solve.
var (
	// ErrInvalidParity indicates a parity value outside {none, even, odd},
	// or a fermionic/mixed construction requesting parity=none.
	ErrInvalidParity = errors.New("heom: invalid parity")

	// ErrDimMismatch indicates Hsys, a jump operator, or a bath coupling
	// operator disagrees with the declared system dimension d.
	ErrDimMismatch = errors.New("heom: dimension mismatch")

	// ErrEmptyBathList indicates a construction call received zero baths
	// where at least one is required.
	ErrEmptyBathList = errors.New("heom: empty bath list")

	// ErrAdoMismatch indicates an ADO's NAdo/parity disagrees with M's.
	ErrAdoMismatch = errors.New("heom: ADO shape/parity mismatch")

	// ErrNegativeTier indicates a negative tier argument.
	ErrNegativeTier = errors.New("heom: negative tier")

	// ErrResidualTooLarge indicates the steady-state solve's residual
	// exceeded the configured tolerance; the wrapping error carries the
	// final residual for the caller.
	ErrResidualTooLarge = errors.New("heom: steady-state residual above tolerance")
)
