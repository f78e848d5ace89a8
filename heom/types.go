package heom

import (
	"sync"

	"github.com/heomkit/heom/bath"
	"github.com/heomkit/heom/label"
	"github.com/heomkit/heom/parity"
	"github.com/heomkit/heom/sparse"
	"gonum.org/v1/gonum/mat"
)

// Heom is the assembled HEOM superoperator: a sparse complex matrix over
// N_ado·d² states plus the metadata needed to re-derive or extend it
// (dissipator re-stamping, introspection). Long-lived and mutated in place
// by AddDissipator, so access goes through an RWMutex.
type Heom struct {
	mu sync.RWMutex

	data *sparse.CSC
	d    int

	tierB, tierF int
	parity       parity.Parity

	labelsB, labelsF *label.Table

	bosonTerms   []*bath.Term
	fermionTerms []*bath.Term

	// lsys is the system Liouvillian -i[Hsys,·] stamped into every
	// diagonal block at assembly time. Never mutated afterwards: the
	// time-dependent evolution path subtracts it to recover L_0 before
	// applying a replacement Hamiltonian's lift.
	lsys *mat.CDense

	// dropTol is the sparsity-preserving drop tolerance the assembler was
	// built with, reused by AddDissipator's recompress step.
	dropTol float64
}

// D returns the system Hilbert space dimension.
func (h *Heom) D() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.d
}

// NAdo returns N_ado, the total number of hierarchy labels (boson × fermion).
func (h *Heom) NAdo() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.labelsB.Len() * h.labelsF.Len()
}

// NAdoBoson returns N_ado_boson.
func (h *Heom) NAdoBoson() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.labelsB.Len()
}

// NAdoFermion returns N_ado_fermion.
func (h *Heom) NAdoFermion() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.labelsF.Len()
}

// Tier returns (tier_b, tier_f).
func (h *Heom) Tier() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.tierB, h.tierF
}

// Parity returns the ADO grading this matrix was built with.
func (h *Heom) Parity() parity.Parity {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.parity
}

// Shape returns the (rows, cols) of the assembled matrix, both N_ado·d².
func (h *Heom) Shape() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.data.N, h.data.N
}

// NNZ returns the number of structurally nonzero entries currently stored.
func (h *Heom) NNZ() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.data.NNZ()
}

// Data returns the underlying CSC matrix. Callers must not mutate it;
// AddDissipator is the only supported in-place update.
func (h *Heom) Data() *sparse.CSC {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.data
}

// Lsys returns the d²×d² system Liouvillian -i[Hsys,·] that assembly
// stamped into every diagonal block. Callers must not mutate it.
func (h *Heom) Lsys() *mat.CDense {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lsys
}

// LabelsB returns the bosonic label table (empty K, single trivial label, if
// this Heom has no bosonic terms).
func (h *Heom) LabelsB() *label.Table {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.labelsB
}

// LabelsF returns the fermionic label table.
func (h *Heom) LabelsF() *label.Table {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.labelsF
}
