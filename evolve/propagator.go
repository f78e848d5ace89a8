package evolve

import (
	"fmt"
	"strconv"

	"github.com/heomkit/heom/ado"
	"github.com/heomkit/heom/heom"
	"github.com/heomkit/heom/sparse"
	"github.com/heomkit/heom/superop"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// Propagate drives the matrix-exponential propagator: P = expm(L·Δt) via a
// truncated Taylor series, applied as v ← P·v for a fixed number of steps.
// The action of P on a vector is computed Krylov-style (repeated
// sparse-matvec accumulation) rather than by materializing P as a dense
// matrix, which would be infeasible at HEOM scale; the same deterministic
// linear action is reapplied unchanged at every step when no update hook
// is installed.
//
// Stage 1 (Validate): v0's shape/parity must match h's.
// Stage 2 (Execute): for each step, recompute the time-dependent
// contribution if an UpdateHook is installed, apply the truncated series,
// stream to the checkpoint sink, report progress.
//
// Complexity: O(steps·maxTerms·(nnz + N_ado·d⁴)).
func Propagate(h *heom.Heom, v0 *ado.Vector, dt float64, steps int, opts ...Option) ([]*ado.Vector, error) {
	if err := validateShape(h, v0); err != nil {
		return nil, err
	}
	cfg := newPropConfig(opts...)

	data := h.Data()
	d2 := h.D() * h.D()

	trajectory := make([]*ado.Vector, 0, steps+1)
	state := append([]complex128(nil), v0.Data...)
	first, err := ado.FromRaw(append([]complex128(nil), state...), v0.D, v0.NAdo, v0.Parity)
	if err != nil {
		return nil, err
	}
	trajectory = append(trajectory, first)
	if cfg.sink != nil {
		if err := cfg.sink.Put("0", state); err != nil {
			return nil, fmt.Errorf("Propagate: %w", err)
		}
	}

	for step := 1; step <= steps; step++ {
		t := float64(step) * dt
		var extra *mat.CDense
		if cfg.hook != nil {
			extra = superop.Sub(superop.Liouvillian(h.D(), cfg.hook(t)), h.Lsys())
		}
		apply := func(x []complex128) []complex128 {
			return applyOperator(data, x, extra, d2)
		}

		next, err := expmApply(apply, state, dt, cfg.threshold, cfg.maxTerms)
		if err != nil {
			return nil, err
		}
		state = dropSmall(next, cfg.dropTol)

		v, err := ado.FromRaw(append([]complex128(nil), state...), v0.D, v0.NAdo, v0.Parity)
		if err != nil {
			return nil, err
		}
		trajectory = append(trajectory, v)

		if cfg.sink != nil {
			key := strconv.FormatFloat(t, 'g', -1, 64)
			if err := cfg.sink.Put(key, state); err != nil {
				return nil, fmt.Errorf("Propagate: %w", err)
			}
		}
		if cfg.progress != nil {
			cfg.progress(step, t)
		}
	}

	return trajectory, nil
}

// validateShape checks v0 against h's declared shape and parity before any
// computation begins.
func validateShape(h *heom.Heom, v0 *ado.Vector) error {
	if v0.D != h.D() || v0.NAdo != h.NAdo() || v0.Parity != h.Parity() {
		return fmt.Errorf("evolve: ADO(d=%d,nAdo=%d,parity=%v) vs M(d=%d,nAdo=%d,parity=%v): %w",
			v0.D, v0.NAdo, v0.Parity, h.D(), h.NAdo(), h.Parity(), ErrDimMismatch)
	}

	return nil
}

// applyOperator computes L·x, where L is data plus, if extra is non-nil, a
// d²×d² operator added identically into every diagonal block. With a
// time-dependent Hamiltonian, extra is L_t(t) minus the assembled system
// Liouvillian, so H(t) replaces Hsys rather than stacking on top of it.
func applyOperator(data *sparse.CSC, x []complex128, extra *mat.CDense, d2 int) []complex128 {
	out := data.MulVec(x)
	if extra == nil {
		return out
	}
	nBlocks := len(x) / d2
	for b := 0; b < nBlocks; b++ {
		base := b * d2
		for i := 0; i < d2; i++ {
			var sum complex128
			for j := 0; j < d2; j++ {
				sum += extra.At(i, j) * x[base+j]
			}
			out[base+i] += sum
		}
	}

	return out
}

// expmApply computes expm(dt·L)·v via a truncated Taylor series:
//
//	v + dt·L·v + dt²/2·L²·v + ...
//
// terminating early once the latest term's norm falls below
// threshold·‖result‖, which bounds the final error in ‖P·v − expm(LΔt)·v‖
// by threshold·‖v‖. Returns ErrExpSeriesDivergent if maxTerms is exhausted
// first.
func expmApply(apply func([]complex128) []complex128, v []complex128, dt, threshold float64, maxTerms int) ([]complex128, error) {
	term := append([]complex128(nil), v...)
	result := append([]complex128(nil), v...)

	for k := 1; k <= maxTerms; k++ {
		next := apply(term)
		scale := complex(dt/float64(k), 0)
		cmplxs.Scale(scale, next)
		term = next

		for i := range result {
			result[i] += term[i]
		}

		if cmplxs.Norm(term, 2) <= threshold*cmplxs.Norm(result, 2) {
			return result, nil
		}
	}

	return nil, ErrExpSeriesDivergent
}

// dropSmall zeroes entries at or below tol, keeping the state vector from
// accumulating numerical dust that would otherwise defeat downstream
// sparsity assumptions.
func dropSmall(v []complex128, tol float64) []complex128 {
	for i, z := range v {
		if real(z)*real(z)+imag(z)*imag(z) <= tol*tol {
			v[i] = 0
		}
	}

	return v
}
