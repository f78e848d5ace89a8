package label

import "errors"

// Sentinel errors for the label package. Wrapped with context via fmt.Errorf
// and %w at call boundaries; never panicked on caller-supplied input.
var (
	// ErrNoTerms indicates K=0: an enumeration over zero expansion terms.
	ErrNoTerms = errors.New("label: zero expansion terms (K=0)")

	// ErrNegativeTier indicates a negative total excitation tier.
	ErrNegativeTier = errors.New("label: negative tier")

	// ErrDimsMismatch indicates a dims[] entry is non-positive.
	ErrDimsMismatch = errors.New("label: non-positive per-mode dimension")

	// ErrUnknownLabel indicates a label not present in a Table's index.
	ErrUnknownLabel = errors.New("label: unknown label")
)
