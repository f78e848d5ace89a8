package bath

import (
	"fmt"

	"github.com/heomkit/heom/superop"
	"gonum.org/v1/gonum/mat"
)

// Kind tags the statistical/analytic flavor of a bath expansion term.
// Expressed as a tagged-variant enumeration with per-variant behavior
// carried by Term's methods rather than an inheritance hierarchy.
type Kind int

const (
	// BosonReal is a bosonic term whose correlation-function coefficient η
	// is (effectively) real.
	BosonReal Kind = iota
	// BosonImag is a bosonic term whose coefficient η is (effectively) pure
	// imaginary.
	BosonImag
	// BosonRealImag is a bosonic term with a general complex η.
	BosonRealImag
	// FermionAbsorb is a fermionic absorption term; cross-referenced with a
	// FermionEmit term via EtaPartner.
	FermionAbsorb
	// FermionEmit is a fermionic emission term; cross-referenced with a
	// FermionAbsorb term via EtaPartner.
	FermionEmit
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case BosonReal:
		return "bosonReal"
	case BosonImag:
		return "bosonImag"
	case BosonRealImag:
		return "bosonRealImag"
	case FermionAbsorb:
		return "fermionAbsorb"
	case FermionEmit:
		return "fermionEmit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsFermionic reports whether k belongs to a fermionic statistics term.
func (k Kind) IsFermionic() bool {
	return k == FermionAbsorb || k == FermionEmit
}

// Term is one exponential expansion term of a bath correlation function.
// Derived superoperator forms (spre, spost, and the daggered coupling) are
// computed once at construction; a Term is immutable afterwards, so
// assembly workers may share it freely.
type Term struct {
	Kind Kind
	// Eta is the term's own coefficient. For BosonReal it is forced to its
	// real part, for BosonImag to its (pure-imaginary) imaginary part, at
	// construction time, so superop.BosonPrevGrad's single general formula
	// serves all three bosonic kinds without branching on Kind.
	Eta complex128
	// EtaPartner is the cross-referenced coefficient of the fermionic
	// absorb/emit pair (η_emit for an absorb term, η_absorb for an emit
	// term). Unused for bosonic kinds.
	EtaPartner complex128
	Gamma      complex128
	Op         *mat.CDense

	d      int
	opDag  *mat.CDense
	preOp  *mat.CDense
	postOp *mat.CDense
}

// D returns the coupling operator's declared system dimension.
func (t *Term) D() int { return t.d }

// Dagger returns Q†, computed once at construction. Safe for concurrent
// use: assembly workers read it from many goroutines.
func (t *Term) Dagger() *mat.CDense { return t.opDag }

// Spre returns spre(Q), computed once at construction.
func (t *Term) Spre() *mat.CDense { return t.preOp }

// Spost returns spost(Q), computed once at construction.
func (t *Term) Spost() *mat.CDense { return t.postOp }

// NewTerm validates and constructs a Term. For BosonReal/BosonImag, eta is
// projected onto its real/imaginary component. For FermionAbsorb/
// FermionEmit, partner must be the cross-referenced coefficient of the
// paired term and is required.
//
// Stage 1 (Validate): op must be non-nil and square; d must equal the
// caller's declared dimension.
// Stage 2 (Finalize): normalize eta per kind and return the Term.
func NewTerm(kind Kind, eta, gamma complex128, op *mat.CDense, d int, partner ...complex128) (*Term, error) {
	if op == nil {
		return nil, ErrNilOp
	}
	r, c := op.Dims()
	if r != c || r != d {
		return nil, fmt.Errorf("NewTerm(%s): op is %dx%d, want %dx%d: %w", kind, r, c, d, d, ErrDimMismatch)
	}

	switch kind {
	case BosonReal:
		eta = complex(real(eta), 0)
	case BosonImag:
		eta = complex(0, imag(eta))
	case BosonRealImag:
		// eta kept as-is.
	case FermionAbsorb, FermionEmit:
		if len(partner) != 1 {
			return nil, fmt.Errorf("NewTerm(%s): %w", kind, ErrMissingPartner)
		}
	default:
		return nil, fmt.Errorf("NewTerm: %w", ErrUnknownKind)
	}

	t := &Term{
		Kind:   kind,
		Eta:    eta,
		Gamma:  gamma,
		Op:     op,
		d:      d,
		opDag:  superop.Dagger(op),
		preOp:  superop.Spre(d, op),
		postOp: superop.Spost(d, op),
	}
	if len(partner) == 1 {
		t.EtaPartner = partner[0]
	}

	return t, nil
}

// Bath is an ordered list of expansion terms sharing one system dimension
// d.
type Bath struct {
	D     int
	Terms []*Term
}

// NewBath validates that every term's dimension matches d and that the
// bath is non-empty.
func NewBath(d int, terms []*Term) (*Bath, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyBath
	}
	for i, t := range terms {
		if t.D() != d {
			return nil, fmt.Errorf("NewBath: term %d has d=%d, want %d: %w", i, t.D(), d, ErrDimMismatch)
		}
	}

	return &Bath{D: d, Terms: terms}, nil
}

// Combine concatenates baths of the same statistics into one combined
// Bath, preserving input order.
func Combine(baths ...*Bath) (*Bath, error) {
	if len(baths) == 0 {
		return nil, ErrEmptyBath
	}
	d := baths[0].D
	var terms []*Term
	for i, b := range baths {
		if b.D != d {
			return nil, fmt.Errorf("Combine: bath %d has d=%d, want %d: %w", i, b.D, d, ErrDimMismatch)
		}
		terms = append(terms, b.Terms...)
	}

	return &Bath{D: d, Terms: terms}, nil
}
