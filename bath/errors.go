package bath

import "errors"

// Sentinel errors for the bath package.
var (
	// ErrEmptyBath indicates a Bath with zero terms was supplied where at
	// least one term is required.
	ErrEmptyBath = errors.New("bath: empty term list")

	// ErrDimMismatch indicates a coupling operator's dimension disagrees
	// with the Bath's declared d, or with another Bath being combined.
	ErrDimMismatch = errors.New("bath: coupling operator dimension mismatch")

	// ErrNilOp indicates a term was constructed with a nil coupling operator.
	ErrNilOp = errors.New("bath: nil coupling operator")

	// ErrUnknownKind indicates a Kind value outside the declared enumeration.
	ErrUnknownKind = errors.New("bath: unknown term kind")

	// ErrMissingPartner indicates a fermionic absorb/emit term was built
	// without its cross-referenced partner coefficient.
	ErrMissingPartner = errors.New("bath: fermionic term missing absorb/emit partner coefficient")
)
