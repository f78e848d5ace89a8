package superop

import (
	"math/cmplx"

	"github.com/heomkit/heom/parity"
	"gonum.org/v1/gonum/mat"
)

// negI is -i, the prefactor every gradient and the system Liouvillian
// carries.
const negI = complex(0, -1)

// Spre returns I_d ⊗ A, the left-multiplication superoperator lifted to the
// d²-dimensional vectorised space.
func Spre(d int, a *mat.CDense) *mat.CDense {
	return Kron(Identity(d), a)
}

// Spost returns Aᵀ ⊗ I_d, the right-multiplication superoperator.
func Spost(d int, a *mat.CDense) *mat.CDense {
	return Kron(Transpose(a), Identity(d))
}

// Commutator returns spre(A) - spost(A), the lift of [A, ·].
func Commutator(d int, a *mat.CDense) *mat.CDense {
	return Sub(Spre(d, a), Spost(d, a))
}

// Liouvillian returns -i·(spre(H) - spost(H)), the system Liouvillian
// L_sys = -i[H, ·] lifted to the vectorised space.
func Liouvillian(d int, h *mat.CDense) *mat.CDense {
	return Scale(negI, Commutator(d, h))
}

// BosonNextGrad returns the bosonic "next" gradient -i·[Q,·], with no
// occupation-number prefactor.
func BosonNextGrad(d int, q *mat.CDense) *mat.CDense {
	return Scale(negI, Commutator(d, q))
}

// BosonPrevGrad returns the bosonic "prev" gradient at occupation n:
//
//	-i · n · (η·spre(Q) - conj(η)·spost(Q))
//
// This single formula serves all three bosonic kinds (bosonReal,
// bosonImag, bosonRealImag); callers select the kind by how they derive eta
// from the underlying bath coefficient before calling this function (see
// package bath's Term.Eta, which folds the real/imaginary restriction in at
// construction time so this function never branches on kind).
func BosonPrevGrad(d int, eta complex128, q *mat.CDense, n int) *mat.CDense {
	if n == 0 {
		r, _ := q.Dims()
		return mat.NewCDense(r*r, r*r, nil)
	}
	pre := Spre(d, q)
	post := Spost(d, q)
	inner := Sub(Scale(eta, pre), Scale(cmplx.Conj(eta), post))

	return Scale(negI*complex(float64(n), 0), inner)
}

// FermionPrevGrad returns the fermionic "prev" gradient for term kind
// fermionAbsorb (absorb=true) or fermionEmit (absorb=false):
//
//	absorb: -i·(-1)^nBefore · ( (-1)^π(parity)·η_absorb·spre(Q) - (-1)^(nExc-1)·conj(η_emit)·spost(Q) )
//	emit:   swap η_absorb ↔ η_emit in the same expression.
//
// etaAbsorb and etaEmit are the cross-referenced absorb/emit coefficients
// of the term's fermionic pair; q is the term's own coupling operator (not
// yet daggered). The alternating (-1)^nBefore and (-1)^(nExc-1) factors
// carry the anticommutation bookkeeping of the fermionic modes; the parity
// sign is the overall grading of the ADO the operator acts on.
func FermionPrevGrad(d int, absorb bool, etaAbsorb, etaEmit complex128, q *mat.CDense, nBefore, nExc int, p parity.Parity) *mat.CDense {
	etaSelf, etaOther := etaAbsorb, etaEmit
	if !absorb {
		etaSelf, etaOther = etaEmit, etaAbsorb
	}

	pre := Spre(d, q)
	post := Spost(d, q)

	parSign := signPow(p.Sign())
	beforeSign := signPow(nBefore & 1)
	excSign := signPow((nExc - 1) & 1)

	inner := Sub(
		Scale(complex(parSign, 0)*etaSelf, pre),
		Scale(complex(excSign, 0)*cmplx.Conj(etaOther), post),
	)

	return Scale(negI*complex(beforeSign, 0), inner)
}

// FermionNextGrad returns the fermionic "next" gradient:
//
//	-i·(-1)^nBefore · ( (-1)^π(parity)·spre(Q†) + (-1)^(nExc-1)·spost(Q†) )
func FermionNextGrad(d int, qDagger *mat.CDense, nBefore, nExc int, p parity.Parity) *mat.CDense {
	preD := Spre(d, qDagger)
	postD := Spost(d, qDagger)

	parSign := signPow(p.Sign())
	beforeSign := signPow(nBefore & 1)
	excSign := signPow((nExc - 1) & 1)

	inner := Add(
		Scale(complex(parSign, 0), preD),
		Scale(complex(excSign, 0), postD),
	)

	return Scale(negI*complex(beforeSign, 0), inner)
}

// signPow returns (-1)^bit for bit ∈ {0,1}.
func signPow(bit int) float64 {
	if bit&1 == 1 {
		return -1
	}

	return 1
}
