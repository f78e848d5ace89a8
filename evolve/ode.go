package evolve

import (
	"fmt"
	"strconv"

	"github.com/heomkit/heom/ado"
	"github.com/heomkit/heom/heom"
	"github.com/heomkit/heom/superop"
	"gonum.org/v1/gonum/ivp"
	"gonum.org/v1/gonum/mat"
)

// baseODESubsteps is the number of internal RK4 substeps taken between two
// consecutive user-requested save points at the default rtol/atol.
// gonum.org/v1/gonum/ivp ships a fixed-step RK4 integrator, not an
// adaptive one; substepping at a tolerance-scaled subdivision
// (odeConfig.substeps) stands in for adaptivity. Callers wanting finer
// control can supply a denser tlist themselves.
const baseODESubsteps = 10

// PropagateODE drives the ODE integration path: poses dv/dt = L·v, embeds
// the complex ADO state as a real vector of twice the length
// (real/imaginary interleaved per component, since ivp.IVP is
// float64-only), and drives gonum.org/v1/gonum/ivp's RK4 integrator,
// saving the state at each entry of tlist.
//
// Stage 1 (Validate): v0's shape/parity must match h's; tlist non-empty.
// Stage 2 (Execute): step the integrator in cfg.substeps() increments
// between consecutive save points (tightening rtol/atol below the defaults
// of 1e-6/1e-8 refines the subdivision), recomputing the time-dependent
// contribution via the update hook before each substep if one is
// installed.
// Stage 3 (Finalize): return the saved trajectory.
//
// Complexity: O(len(tlist)·cfg.substeps()·(nnz + N_ado·d⁴)).
func PropagateODE(h *heom.Heom, v0 *ado.Vector, tlist []float64, opts ...ODEOption) ([]*ado.Vector, error) {
	if len(tlist) == 0 {
		return nil, ErrEmptyTimeList
	}
	if err := validateShape(h, v0); err != nil {
		return nil, err
	}
	cfg := newODEConfig(opts...)

	data := h.Data()
	d2 := h.D() * h.D()
	n := len(v0.Data)

	x0 := make([]float64, 2*n)
	for i, z := range v0.Data {
		x0[2*i], x0[2*i+1] = real(z), imag(z)
	}

	var curHook *mat.CDense
	xeq := func(y []float64, dom float64, x, u []float64) {
		cv := make([]complex128, n)
		for i := 0; i < n; i++ {
			cv[i] = complex(x[2*i], x[2*i+1])
		}
		lv := applyOperator(data, cv, curHook, d2)
		for i := 0; i < n; i++ {
			y[2*i], y[2*i+1] = real(lv[i]), imag(lv[i])
		}
	}

	model, err := ivp.NewModel(mat.NewVecDense(2*n, x0), nil, xeq, nil)
	if err != nil {
		return nil, fmt.Errorf("PropagateODE: %w", err)
	}
	integrator := &ivp.RK4{}
	if err := integrator.Set(tlist[0], model); err != nil {
		return nil, fmt.Errorf("PropagateODE: %w", err)
	}

	trajectory := make([]*ado.Vector, 0, len(tlist))
	first, err := ado.FromRaw(append([]complex128(nil), v0.Data...), v0.D, v0.NAdo, v0.Parity)
	if err != nil {
		return nil, err
	}
	trajectory = append(trajectory, first)
	if cfg.sink != nil {
		if err := cfg.sink.Put(formatTime(tlist[0]), v0.Data); err != nil {
			return nil, fmt.Errorf("PropagateODE: %w", err)
		}
	}

	substeps := cfg.substeps()
	y := make([]float64, 2*n)
	totalSteps := 0
	for i := 1; i < len(tlist); i++ {
		t0, t1 := tlist[i-1], tlist[i]
		subStep := (t1 - t0) / float64(substeps)

		for s := 0; s < substeps; s++ {
			if cfg.hook != nil {
				curHook = superop.Sub(superop.Liouvillian(h.D(), cfg.hook(t0+float64(s)*subStep)), h.Lsys())
			}
			if _, err := integrator.Step(y, subStep); err != nil {
				return nil, fmt.Errorf("PropagateODE: %w", err)
			}
			totalSteps++
			if totalSteps > cfg.maxSteps {
				return nil, fmt.Errorf("PropagateODE: %w", ErrMaxStepsExceeded)
			}
		}

		cv := make([]complex128, n)
		for k := 0; k < n; k++ {
			cv[k] = complex(y[2*k], y[2*k+1])
		}
		v, err := ado.FromRaw(cv, v0.D, v0.NAdo, v0.Parity)
		if err != nil {
			return nil, err
		}
		trajectory = append(trajectory, v)

		if cfg.sink != nil {
			if err := cfg.sink.Put(formatTime(t1), cv); err != nil {
				return nil, fmt.Errorf("PropagateODE: %w", err)
			}
		}
		if cfg.progress != nil {
			cfg.progress(i, t1)
		}
	}

	return trajectory, nil
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'g', -1, 64)
}
