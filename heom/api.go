package heom

import (
	"fmt"

	"github.com/heomkit/heom/ado"
	"github.com/heomkit/heom/bath"
	"github.com/heomkit/heom/parity"
	"gonum.org/v1/gonum/mat"
)

// MakeHeomBoson assembles a purely bosonic Heom matrix. Bosonic matrices
// always carry parity.None.
func MakeHeomBoson(hsys *mat.CDense, tier int, baths []*bath.Bath, opts ...Option) (*Heom, error) {
	if len(baths) == 0 {
		return nil, ErrEmptyBathList
	}
	if tier < 0 {
		return nil, fmt.Errorf("MakeHeomBoson: tier=%d: %w", tier, ErrNegativeTier)
	}
	combined, err := bath.Combine(baths...)
	if err != nil {
		return nil, fmt.Errorf("MakeHeomBoson: %w", err)
	}

	cfg := newConfig(opts...)

	return assemble(hsys, combined.Terms, nil, tier, 0, parity.None, cfg)
}

// MakeHeomFermion assembles a purely fermionic Heom matrix with the given
// ADO grading.
func MakeHeomFermion(hsys *mat.CDense, tier int, baths []*bath.Bath, p parity.Parity, opts ...Option) (*Heom, error) {
	if len(baths) == 0 {
		return nil, ErrEmptyBathList
	}
	if tier < 0 {
		return nil, fmt.Errorf("MakeHeomFermion: tier=%d: %w", tier, ErrNegativeTier)
	}
	combined, err := bath.Combine(baths...)
	if err != nil {
		return nil, fmt.Errorf("MakeHeomFermion: %w", err)
	}

	cfg := newConfig(opts...)

	return assemble(hsys, nil, combined.Terms, 0, tier, p, cfg)
}

// MakeHeomBosonFermion assembles a mixed Heom matrix: bosonic and
// fermionic baths sharing one Hsys, combined via the Cartesian product of
// their label tables.
func MakeHeomBosonFermion(hsys *mat.CDense, tierB, tierF int, bbaths, fbaths []*bath.Bath, p parity.Parity, opts ...Option) (*Heom, error) {
	if len(bbaths) == 0 && len(fbaths) == 0 {
		return nil, ErrEmptyBathList
	}
	if tierB < 0 || tierF < 0 {
		return nil, fmt.Errorf("MakeHeomBosonFermion: tierB=%d tierF=%d: %w", tierB, tierF, ErrNegativeTier)
	}

	var bosonTerms, fermionTerms []*bath.Term
	if len(bbaths) > 0 {
		cb, err := bath.Combine(bbaths...)
		if err != nil {
			return nil, fmt.Errorf("MakeHeomBosonFermion: boson: %w", err)
		}
		bosonTerms = cb.Terms
	}
	if len(fbaths) > 0 {
		cf, err := bath.Combine(fbaths...)
		if err != nil {
			return nil, fmt.Errorf("MakeHeomBosonFermion: fermion: %w", err)
		}
		fermionTerms = cf.Terms
	}

	cfg := newConfig(opts...)

	return assemble(hsys, bosonTerms, fermionTerms, tierB, tierF, p, cfg)
}

// GetRho returns the reduced density matrix (block 0) of an ADO vector.
func GetRho(v *ado.Vector) (*mat.CDense, error) {
	return v.GetRho()
}

// Expect returns Tr(O·GetRho(v)).
func Expect(o *mat.CDense, v *ado.Vector) (complex128, error) {
	rho, err := v.GetRho()
	if err != nil {
		return 0, err
	}

	return ado.Expect(o, rho), nil
}
