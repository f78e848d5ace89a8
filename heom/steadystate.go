package heom

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/heomkit/heom/ado"
	"gonum.org/v1/gonum/mat"
)

// LinearSolver is the pluggable backend of the steady-state path. The
// default, denseLUSolver, is a partial-pivoting Gaussian elimination on a
// dense working copy; production use is expected to plug in an external
// sparse direct or iterative solver here instead.
type LinearSolver interface {
	Solve(a *mat.CDense, b []complex128) ([]complex128, error)
}

// SteadyOption configures SteadyState.
type SteadyOption func(*steadyConfig)

type steadyConfig struct {
	solver LinearSolver
	rtol   float64
}

// WithLinearSolver overrides the default dense solver.
func WithLinearSolver(s LinearSolver) SteadyOption {
	return func(c *steadyConfig) { c.solver = s }
}

// WithResidualTolerance overrides the residual check's relative tolerance.
func WithResidualTolerance(rtol float64) SteadyOption {
	return func(c *steadyConfig) { c.rtol = rtol }
}

// SteadyState solves for the steady-state ADO vector: forms A = L with its
// first row replaced by the trace-preservation constraint Tr(ρ_0) = 1, and
// a right-hand side with a single 1 in that row, then delegates to the
// configured LinearSolver.
//
// Stage 1 (Build): materialize the dense augmented system from h.data.
// Stage 2 (Solve): call the configured solver.
// Stage 3 (Verify): check the residual ‖Ax-b‖/‖b‖ against rtol, wrap the
// solution as an ado.Vector.
//
// Complexity: O(n³) with the default dense solver, where n = N_ado·d² — a
// deliberate simplicity/scale tradeoff for the bundled default; real
// workloads should supply a sparse LinearSolver via WithLinearSolver.
func (h *Heom) SteadyState(opts ...SteadyOption) (*ado.Vector, error) {
	h.mu.RLock()
	data := h.data
	d := h.d
	nAdo := h.labelsB.Len() * h.labelsF.Len()
	p := h.parity
	h.mu.RUnlock()

	cfg := steadyConfig{solver: denseLUSolver{}, rtol: 1e-6}
	for _, o := range opts {
		o(&cfg)
	}

	n := data.N
	a := mat.NewCDense(n, n, nil)
	for col := 0; col < n; col++ {
		for ptr := data.ColPtr[col]; ptr < data.ColPtr[col+1]; ptr++ {
			a.Set(int(data.RowIdx[ptr]), col, data.Vals[ptr])
		}
	}

	b := make([]complex128, n)
	for row := 0; row < n; row++ {
		a.Set(0, row, 0)
	}
	for i := 0; i < d; i++ {
		a.Set(0, i+i*d, complex(1, 0))
	}
	b[0] = complex(1, 0)

	x, err := cfg.solver.Solve(a, b)
	if err != nil {
		return nil, fmt.Errorf("SteadyState: %w", err)
	}

	if resid := residual(a, x, b); resid > cfg.rtol {
		return nil, fmt.Errorf("SteadyState: residual %.3e exceeds tolerance %.3e: %w", resid, cfg.rtol, ErrResidualTooLarge)
	}

	return ado.FromRaw(x, d, nAdo, p)
}

// residual returns ‖Ax-b‖/‖b‖ (or ‖Ax-b‖ if b is the zero vector).
func residual(a *mat.CDense, x, b []complex128) float64 {
	n, _ := a.Dims()
	var num, den float64
	for i := 0; i < n; i++ {
		var ax complex128
		for j := 0; j < n; j++ {
			ax += a.At(i, j) * x[j]
		}
		diff := ax - b[i]
		num += real(diff)*real(diff) + imag(diff)*imag(diff)
		den += real(b[i])*real(b[i]) + imag(b[i])*imag(b[i])
	}
	num = math.Sqrt(num)
	den = math.Sqrt(den)
	if den == 0 {
		return num
	}

	return num / den
}

// denseLUSolver solves Ax=b via Gaussian elimination with partial pivoting
// on a dense working copy, fused with back substitution: the augmented
// system here is solved once, not decomposed-and-reused, so the L and U
// factors are never materialized separately.
type denseLUSolver struct{}

// Solve implements LinearSolver.
//
// Complexity: O(n³) elimination, O(n²) substitution.
func (denseLUSolver) Solve(a *mat.CDense, b []complex128) ([]complex128, error) {
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("denseLUSolver.Solve: A is %dx%d, not square", n, c)
	}

	m := make([][]complex128, n)
	for i := range m {
		m[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			m[i][j] = a.At(i, j)
		}
	}
	rhs := append([]complex128(nil), b...)

	for k := 0; k < n; k++ {
		piv := k
		best := cmplx.Abs(m[k][k])
		for i := k + 1; i < n; i++ {
			if mag := cmplx.Abs(m[i][k]); mag > best {
				best, piv = mag, i
			}
		}
		if best == 0 {
			return nil, fmt.Errorf("denseLUSolver.Solve: singular matrix at column %d", k)
		}
		if piv != k {
			m[k], m[piv] = m[piv], m[k]
			rhs[k], rhs[piv] = rhs[piv], rhs[k]
		}

		for i := k + 1; i < n; i++ {
			factor := m[i][k] / m[k][k]
			if factor == 0 {
				continue
			}
			for j := k; j < n; j++ {
				m[i][j] -= factor * m[k][j]
			}
			rhs[i] -= factor * rhs[k]
		}
	}

	x := make([]complex128, n)
	for i := n - 1; i >= 0; i-- {
		sum := rhs[i]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}

	return x, nil
}
