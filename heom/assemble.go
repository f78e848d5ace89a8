package heom

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/heomkit/heom/bath"
	"github.com/heomkit/heom/label"
	"github.com/heomkit/heom/parity"
	"github.com/heomkit/heom/sparse"
	"github.com/heomkit/heom/superop"
	"gonum.org/v1/gonum/mat"
)

// assemble builds the HEOM superoperator. It validates the request,
// enumerates the bosonic and fermionic label tables, then fans the outer
// loop over the combined label index range out across cfg.workers
// goroutines, each writing only its own sparse.COO partition, before
// merging and compressing into the final CSC.
//
// Stage 1 (Validate): Hsys square, parity consistent with the presence of
// fermionic terms, every bath coupling operator's dimension matching d.
// Stage 2 (Enumerate): bosonic/fermionic label tables via label.Enumerate,
// or label.Trivial for an absent statistics channel.
// Stage 3 (Fork): partition [0, N_ado) into cfg.workers contiguous chunks.
// Stage 4 (Execute, per worker): for each label index, stamp the diagonal
// block and every valid ±1 neighbour block into a private COO.
// Stage 5 (Join): merge partitions, compress to CSC, build the Heom value.
//
// Complexity: O(N_ado · K · d⁴) dominates (each off-diagonal block touches
// d²×d² entries), parallelised across cfg.workers.
func assemble(hsys *mat.CDense, bosonTerms, fermionTerms []*bath.Term, tierB, tierF int, p parity.Parity, cfg config) (*Heom, error) {
	d, err := validateSquare(hsys, "Hsys")
	if err != nil {
		return nil, err
	}
	if err := validateParity(p, fermionTerms); err != nil {
		return nil, err
	}
	for i, t := range bosonTerms {
		if t.D() != d {
			return nil, fmt.Errorf("assemble: boson term %d has d=%d, want %d: %w", i, t.D(), d, ErrDimMismatch)
		}
	}
	for i, t := range fermionTerms {
		if t.D() != d {
			return nil, fmt.Errorf("assemble: fermion term %d has d=%d, want %d: %w", i, t.D(), d, ErrDimMismatch)
		}
	}

	labelsB, err := enumerateChannel(len(bosonTerms), tierB+1, tierB)
	if err != nil {
		return nil, fmt.Errorf("assemble: boson labels: %w", err)
	}
	labelsF, err := enumerateChannel(len(fermionTerms), 2, tierF)
	if err != nil {
		return nil, fmt.Errorf("assemble: fermion labels: %w", err)
	}

	nAdoB, nAdoF := labelsB.Len(), labelsF.Len()
	nAdo := nAdoB * nAdoF
	d2 := d * d
	n := nAdo * d2

	lsys := superop.Liouvillian(d, hsys)

	coo, err := runAssembly(n, nAdo, nAdoF, d, d2, lsys, labelsB, labelsF, bosonTerms, fermionTerms, tierB, tierF, p, cfg)
	if err != nil {
		return nil, err
	}

	return &Heom{
		data:         coo.Compress(cfg.dropTol),
		d:            d,
		tierB:        tierB,
		tierF:        tierF,
		parity:       p,
		labelsB:      labelsB,
		labelsF:      labelsF,
		bosonTerms:   bosonTerms,
		fermionTerms: fermionTerms,
		lsys:         lsys,
		dropTol:      cfg.dropTol,
	}, nil
}

// validateSquare returns Hsys's dimension, or an error naming which operand
// failed to be square.
func validateSquare(a *mat.CDense, name string) (int, error) {
	r, c := a.Dims()
	if r != c {
		return 0, fmt.Errorf("assemble: %s is %dx%d, not square: %w", name, r, c, ErrDimMismatch)
	}

	return r, nil
}

// validateParity enforces the invariant parity=none iff no fermionic terms
// are present.
func validateParity(p parity.Parity, fermionTerms []*bath.Term) error {
	if !p.Valid() {
		return fmt.Errorf("assemble: parity=%v: %w", p, ErrInvalidParity)
	}
	if len(fermionTerms) == 0 && p != parity.None {
		return fmt.Errorf("assemble: parity=%v with no fermionic terms: %w", p, ErrInvalidParity)
	}
	if len(fermionTerms) > 0 && p == parity.None {
		return fmt.Errorf("assemble: fermionic terms require parity even/odd: %w", ErrInvalidParity)
	}

	return nil
}

// enumerateChannel enumerates one statistics channel's label table, or
// returns the single-label placeholder when it has no terms at all, so the
// Cartesian-product index idx = idxB·N_ado_f + idxF stays well-defined for
// purely bosonic or purely fermionic hierarchies.
func enumerateChannel(k, dim, tier int) (*label.Table, error) {
	if k == 0 {
		return label.Trivial(), nil
	}
	dims := make([]int, k)
	for i := range dims {
		dims[i] = dim
	}

	return label.Enumerate(dims, tier)
}

// runAssembly fans the outer loop over the combined label index range out
// across cfg.workers goroutines and returns the merged COO accumulator.
func runAssembly(n, nAdo, nAdoF, d, d2 int, lsys *mat.CDense, labelsB, labelsF *label.Table, bosonTerms, fermionTerms []*bath.Term, tierB, tierF int, p parity.Parity, cfg config) (*sparse.COO, error) {
	workers := cfg.workers
	if workers > nAdo {
		workers = nAdo
	}
	if workers < 1 {
		workers = 1
	}

	var progressCh chan int
	var doneCount int64
	var wgReport sync.WaitGroup
	if cfg.progress != nil {
		progressCh = make(chan int, 2*workers)
		wgReport.Add(1)
		go func() {
			defer wgReport.Done()
			for done := range progressCh {
				cfg.progress(done, nAdo)
			}
		}()
	}

	partials := make([]*sparse.COO, workers)
	errs := make([]error, workers)
	chunk := (nAdo + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > nAdo {
			hi = nAdo
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			local, err := sparse.NewCOO(n)
			if err != nil {
				errs[lo/chunk] = err
				return
			}
			for idx := lo; idx < hi; idx++ {
				idxB, idxF := idx/nAdoF, idx%nAdoF
				stampLabel(local, idx, idxB, idxF, nAdoF, d, d2, lsys, labelsB, labelsF, bosonTerms, fermionTerms, tierB, tierF, p, cfg.dropTol)
				if progressCh != nil {
					select {
					case progressCh <- int(atomic.AddInt64(&doneCount, 1)):
					default:
					}
				}
			}
			partials[lo/chunk] = local
		}(lo, hi)
	}
	wg.Wait()
	if progressCh != nil {
		close(progressCh)
		wgReport.Wait()
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged, err := sparse.NewCOO(n)
	if err != nil {
		return nil, err
	}
	for _, part := range partials {
		merged.Merge(part)
	}

	return merged, nil
}

// stampLabel emits the diagonal block and every valid ±1 neighbour block for
// one full label index into dst.
func stampLabel(dst *sparse.COO, idx, idxB, idxF, nAdoF, d, d2 int, lsys *mat.CDense, labelsB, labelsF *label.Table, bosonTerms, fermionTerms []*bath.Term, tierB, tierF int, p parity.Parity, dropTol float64) {
	labelB := labelsB.Label(idxB)
	labelF := labelsF.Label(idxF)

	var gammaSum complex128
	for k, t := range bosonTerms {
		if labelB[k] > 0 {
			gammaSum += complex(float64(labelB[k]), 0) * t.Gamma
		}
	}
	for k, t := range fermionTerms {
		if labelF[k] > 0 {
			gammaSum += complex(float64(labelF[k]), 0) * t.Gamma
		}
	}
	diag := superop.Sub(lsys, superop.Scale(gammaSum, superop.Identity(d2)))
	dst.AddBlock(idx, idx, d2, diag, dropTol)

	sumB := labelB.Sum()
	for k, t := range bosonTerms {
		if labelB[k] > 0 {
			nb := cloneWithDelta(labelB, k, -1)
			if nIdx, ok := labelsB.Index(nb); ok {
				grad := superop.BosonPrevGrad(d, t.Eta, t.Op, labelB[k])
				dst.AddBlock(idx, nIdx*nAdoF+idxF, d2, grad, dropTol)
			}
		}
		if sumB < tierB {
			nb := cloneWithDelta(labelB, k, 1)
			if nIdx, ok := labelsB.Index(nb); ok {
				grad := superop.BosonNextGrad(d, t.Op)
				dst.AddBlock(idx, nIdx*nAdoF+idxF, d2, grad, dropTol)
			}
		}
	}

	sumF := labelF.Sum()
	for k, t := range fermionTerms {
		nBefore := 0
		for j := 0; j < k; j++ {
			nBefore += labelF[j]
		}
		if labelF[k] > 0 {
			nf := cloneWithDelta(labelF, k, -1)
			if nIdx, ok := labelsF.Index(nf); ok {
				grad := fermionPrevGrad(d, t, nBefore, sumF, p)
				dst.AddBlock(idx, idxB*nAdoF+nIdx, d2, grad, dropTol)
			}
		}
		if sumF < tierF {
			nf := cloneWithDelta(labelF, k, 1)
			if nIdx, ok := labelsF.Index(nf); ok {
				grad := superop.FermionNextGrad(d, t.Dagger(), nBefore, sumF, p)
				dst.AddBlock(idx, idxB*nAdoF+nIdx, d2, grad, dropTol)
			}
		}
	}
}

// fermionPrevGrad resolves a fermionAbsorb/fermionEmit term's absorb/emit
// coefficient ordering before delegating to superop.FermionPrevGrad: an
// emit term uses the same expression with η_absorb and η_emit swapped.
func fermionPrevGrad(d int, t *bath.Term, nBefore, nExc int, p parity.Parity) *mat.CDense {
	if t.Kind == bath.FermionAbsorb {
		return superop.FermionPrevGrad(d, true, t.Eta, t.EtaPartner, t.Op, nBefore, nExc, p)
	}

	return superop.FermionPrevGrad(d, false, t.EtaPartner, t.Eta, t.Op, nBefore, nExc, p)
}

// cloneWithDelta returns a copy of l with component k shifted by delta,
// leaving l untouched.
func cloneWithDelta(l label.Label, k, delta int) label.Label {
	out := make(label.Label, len(l))
	copy(out, l)
	out[k] += delta

	return out
}
