package evolve_test

import (
	"math/cmplx"
	"path/filepath"
	"testing"

	"github.com/heomkit/heom/ado"
	"github.com/heomkit/heom/bath"
	"github.com/heomkit/heom/evolve"
	"github.com/heomkit/heom/heom"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs/cscalar"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// tenAtol is the Hermiticity/trace tolerance: 10x the default atol (1e-8)
// the evolve package resolves to absent an explicit WithATol.
const tenAtol = 10 * 1e-8

// requireHermitian asserts rho.At(i,j) == conj(rho.At(j,i)) within tol for
// every entry.
func requireHermitian(t *testing.T, rho *mat.CDense, tol float64) {
	t.Helper()

	r, c := rho.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.Truef(t, cscalar.EqualWithinAbsOrRel(rho.At(i, j), cmplx.Conj(rho.At(j, i)), tol, tol),
				"rho[%d][%d]=%v not conjugate-symmetric with rho[%d][%d]=%v", i, j, rho.At(i, j), j, i, rho.At(j, i))
		}
	}
}

// zeroOperatorHeom builds a Heom whose assembled L is the all-zero
// operator (Hsys=0, a single bath term with η=γ=0 and a zero coupling
// operator), so both evolution paths reduce to the identity map. This
// isolates the evolve package's own plumbing (state threading, checkpoint
// streaming, real/complex embedding) from the physical correctness of any
// particular bath parameterization, which this repo does not generate.
func zeroOperatorHeom(t *testing.T) *heom.Heom {
	t.Helper()

	d := 2
	hsys := mat.NewCDense(d, d, nil)
	zeroOp := mat.NewCDense(d, d, nil)
	term, err := bath.NewTerm(bath.BosonRealImag, 0, 0, zeroOp, d)
	require.NoError(t, err)
	b, err := bath.NewBath(d, []*bath.Term{term})
	require.NoError(t, err)

	m, err := heom.MakeHeomBoson(hsys, 1, []*bath.Bath{b})
	require.NoError(t, err)
	require.Equal(t, 0, m.NNZ())

	return m
}

func validRho() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{0.6, 0, 0, 0.4})
}

func TestPropagateWithZeroOperatorIsIdentity(t *testing.T) {
	t.Parallel()

	m := zeroOperatorHeom(t)
	v0, err := ado.FromRho(validRho(), m.NAdo(), m.Parity())
	require.NoError(t, err)

	traj, err := evolve.Propagate(m, v0, 0.01, 5)
	require.NoError(t, err)
	require.Len(t, traj, 6)

	for _, v := range traj {
		rho, err := v.GetRho()
		require.NoError(t, err)
		require.True(t, scalar.EqualWithinAbsOrRel(1.0, real(ado.Trace(rho)), tenAtol, tenAtol))
		require.True(t, scalar.EqualWithinAbsOrRel(0.6, real(rho.At(0, 0)), tenAtol, tenAtol))
		require.True(t, scalar.EqualWithinAbsOrRel(0.4, real(rho.At(1, 1)), tenAtol, tenAtol))
		requireHermitian(t, rho, tenAtol)
	}
}

func TestPropagateODEWithZeroOperatorIsIdentity(t *testing.T) {
	t.Parallel()

	m := zeroOperatorHeom(t)
	v0, err := ado.FromRho(validRho(), m.NAdo(), m.Parity())
	require.NoError(t, err)

	traj, err := evolve.PropagateODE(m, v0, []float64{0, 1, 2, 3})
	require.NoError(t, err)
	require.Len(t, traj, 4)

	for _, v := range traj {
		rho, err := v.GetRho()
		require.NoError(t, err)
		require.True(t, scalar.EqualWithinAbsOrRel(1.0, real(ado.Trace(rho)), tenAtol, tenAtol))
		requireHermitian(t, rho, tenAtol)
	}
}

// drivenHeom builds a small two-term bosonic hierarchy with a nonzero
// Hamiltonian and nonzero coupling, so both evolution paths carry real
// dynamics: coherent rotation from Hsys, hierarchy decay from the γ_k
// diagonal, and tier coupling through the gradients.
func drivenHeom(t *testing.T) *heom.Heom {
	t.Helper()

	d := 2
	hsys := mat.NewCDense(d, d, []complex128{0.6969, 0.4364, 0.4364, 0.3215})
	q := mat.NewCDense(d, d, []complex128{
		0.1234, complex(0.1357, 0.2468),
		complex(0.1357, -0.2468), 0.5678,
	})

	terms := make([]*bath.Term, 0, 2)
	for k := 0; k < 2; k++ {
		eta := complex(0.1450/float64(k+1), -0.7414/float64(k+2))
		gamma := complex(0.6464*float64(k+1), 0)
		term, err := bath.NewTerm(bath.BosonRealImag, eta, gamma, q, d)
		require.NoError(t, err)
		terms = append(terms, term)
	}
	b, err := bath.NewBath(d, terms)
	require.NoError(t, err)

	m, err := heom.MakeHeomBoson(hsys, 3, []*bath.Bath{b})
	require.NoError(t, err)
	require.Greater(t, m.NNZ(), 0)

	return m
}

// TestPropagatorAndODEAgreeOnDrivenDynamics cross-checks the two evolution
// paths against each other over nonzero dynamics: any sign error in the
// sparse matvec, a broken real/imag embedding in the RK4 path, or a wrong
// series weight in the exponential would show up as divergence between
// them.
func TestPropagatorAndODEAgreeOnDrivenDynamics(t *testing.T) {
	t.Parallel()

	m := drivenHeom(t)
	rho0 := mat.NewCDense(2, 2, []complex128{0.6, 0.2, 0.2, 0.4})
	v0, err := ado.FromRho(rho0, m.NAdo(), m.Parity())
	require.NoError(t, err)

	const dt = 0.1
	const steps = 10
	expTraj, err := evolve.Propagate(m, v0, dt, steps)
	require.NoError(t, err)

	tlist := make([]float64, steps+1)
	for i := range tlist {
		tlist[i] = float64(i) * dt
	}
	odeTraj, err := evolve.PropagateODE(m, v0, tlist)
	require.NoError(t, err)
	require.Len(t, odeTraj, len(expTraj))

	for i := range expTraj {
		rE, err := expTraj[i].GetRho()
		require.NoError(t, err)
		rO, err := odeTraj[i].GetRho()
		require.NoError(t, err)
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				require.Truef(t, cscalar.EqualWithinAbsOrRel(rE.At(a, b), rO.At(a, b), 1e-4, 1e-4),
					"t=%.1f rho[%d][%d]: expm %v vs ode %v", tlist[i], a, b, rE.At(a, b), rO.At(a, b))
			}
		}
		// Every block-0 coupling is a lifted commutator, so the trace is
		// conserved for any coefficient table.
		require.InDelta(t, 1.0, real(ado.Trace(rE)), 1e-4, "expm trace at t=%.1f", tlist[i])
		require.InDelta(t, 1.0, real(ado.Trace(rO)), 1e-4, "ode trace at t=%.1f", tlist[i])
	}

	// The dynamics must actually move the state: a trivially-passing
	// identity map would make the cross-check meaningless.
	last, err := expTraj[steps].GetRho()
	require.NoError(t, err)
	require.Greater(t, cmplx.Abs(last.At(0, 0)-rho0.At(0, 0))+cmplx.Abs(last.At(0, 1)-rho0.At(0, 1)), 1e-3)
}

func TestPropagatorAndODEAgreeOnZeroOperator(t *testing.T) {
	t.Parallel()

	m := zeroOperatorHeom(t)
	v0, err := ado.FromRho(validRho(), m.NAdo(), m.Parity())
	require.NoError(t, err)

	expTraj, err := evolve.Propagate(m, v0, 1.0, 3)
	require.NoError(t, err)
	odeTraj, err := evolve.PropagateODE(m, v0, []float64{0, 1, 2, 3})
	require.NoError(t, err)
	require.Len(t, expTraj, len(odeTraj))

	for i := range expTraj {
		rE, err := expTraj[i].GetRho()
		require.NoError(t, err)
		rO, err := odeTraj[i].GetRho()
		require.NoError(t, err)
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				require.True(t, cscalar.EqualWithinAbsOrRel(rE.At(a, b), rO.At(a, b), 1e-4, 1e-4))
			}
		}
	}
}

func TestCheckpointCollisionFailsOnSecondPropagate(t *testing.T) {
	t.Parallel()

	m := zeroOperatorHeom(t)
	v0, err := ado.FromRho(validRho(), m.NAdo(), m.Parity())
	require.NoError(t, err)

	store := evolve.NewMemStore()
	_, err = evolve.Propagate(m, v0, 0.01, 2, evolve.WithCheckpoint(store))
	require.NoError(t, err)

	_, err = evolve.Propagate(m, v0, 0.01, 2, evolve.WithCheckpoint(store))
	require.ErrorIs(t, err, evolve.ErrCheckpointExists)
}

// TestUpdateHookReplacesSystemHamiltonian builds a hierarchy whose only
// nonzero contribution is the system Liouvillian, then evolves with a hook
// returning the zero Hamiltonian: the hook's H(t) replaces the assembled
// Hsys, so the dynamics must collapse to the identity map.
func TestUpdateHookReplacesSystemHamiltonian(t *testing.T) {
	t.Parallel()

	d := 2
	hsys := mat.NewCDense(d, d, []complex128{0, 0.5, 0.5, 0})
	zeroOp := mat.NewCDense(d, d, nil)
	term, err := bath.NewTerm(bath.BosonRealImag, 0, 0, zeroOp, d)
	require.NoError(t, err)
	b, err := bath.NewBath(d, []*bath.Term{term})
	require.NoError(t, err)
	m, err := heom.MakeHeomBoson(hsys, 1, []*bath.Bath{b})
	require.NoError(t, err)
	require.Greater(t, m.NNZ(), 0)

	v0, err := ado.FromRho(validRho(), m.NAdo(), m.Parity())
	require.NoError(t, err)

	hook := func(float64) *mat.CDense { return mat.NewCDense(d, d, nil) }
	traj, err := evolve.Propagate(m, v0, 0.1, 4, evolve.WithUpdateHook(hook))
	require.NoError(t, err)

	last, err := traj[len(traj)-1].GetRho()
	require.NoError(t, err)
	require.True(t, scalar.EqualWithinAbsOrRel(0.6, real(last.At(0, 0)), tenAtol, tenAtol))
	require.True(t, scalar.EqualWithinAbsOrRel(0.4, real(last.At(1, 1)), tenAtol, tenAtol))
}

func TestFileStoreRejectsPreexistingDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "ckpt")
	_, err := evolve.NewFileStore(dir)
	require.NoError(t, err)

	_, err = evolve.NewFileStore(dir)
	require.ErrorIs(t, err, evolve.ErrCheckpointExists)
}

func TestFileStoreRoundTripsAndRejectsRewrite(t *testing.T) {
	t.Parallel()

	store, err := evolve.NewFileStore(filepath.Join(t.TempDir(), "ckpt"))
	require.NoError(t, err)

	data := []complex128{complex(0.6, 0), complex(0.1, -0.2), 0, complex(0.4, 0)}
	require.NoError(t, store.Put("0.01", data))

	got, ok := store.Get("0.01")
	require.True(t, ok)
	require.Equal(t, data, got)

	require.ErrorIs(t, store.Put("0.01", data), evolve.ErrCheckpointExists)
}

func TestPropagateStreamsToFileStore(t *testing.T) {
	t.Parallel()

	m := zeroOperatorHeom(t)
	v0, err := ado.FromRho(validRho(), m.NAdo(), m.Parity())
	require.NoError(t, err)

	store, err := evolve.NewFileStore(filepath.Join(t.TempDir(), "traj"))
	require.NoError(t, err)

	traj, err := evolve.Propagate(m, v0, 0.01, 3, evolve.WithCheckpoint(store))
	require.NoError(t, err)
	require.Len(t, traj, 4)

	for _, key := range []string{"0", "0.01", "0.02", "0.03"} {
		saved, ok := store.Get(key)
		require.Truef(t, ok, "missing checkpoint %q", key)
		require.Len(t, saved, len(v0.Data))
	}
}

func TestPropagateRejectsShapeMismatch(t *testing.T) {
	t.Parallel()

	m := zeroOperatorHeom(t)
	badV, err := ado.New(3, m.NAdo(), m.Parity())
	require.NoError(t, err)

	_, err = evolve.Propagate(m, badV, 0.01, 1)
	require.ErrorIs(t, err, evolve.ErrDimMismatch)
}

func TestPropagateODERejectsEmptyTimeList(t *testing.T) {
	t.Parallel()

	m := zeroOperatorHeom(t)
	v0, err := ado.FromRho(validRho(), m.NAdo(), m.Parity())
	require.NoError(t, err)

	_, err = evolve.PropagateODE(m, v0, nil)
	require.ErrorIs(t, err, evolve.ErrEmptyTimeList)
}
