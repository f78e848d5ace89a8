package superop_test

import (
	"testing"

	"github.com/heomkit/heom/parity"
	"github.com/heomkit/heom/superop"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSpreSpostIdentityOnIdentityOperator(t *testing.T) {
	t.Parallel()

	d := 2
	id := superop.Identity(d)
	pre := superop.Spre(d, id)
	post := superop.Spost(d, id)

	r, c := pre.Dims()
	require.Equal(t, d*d, r)
	require.Equal(t, d*d, c)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.Equal(t, pre.At(i, j), superop.Identity(d*d).At(i, j))
			require.Equal(t, post.At(i, j), superop.Identity(d*d).At(i, j))
		}
	}
}

func TestCommutatorAnnihilatesCommutingState(t *testing.T) {
	t.Parallel()

	// [A, ρ] = 0 when both are diagonal, so the lifted commutator must
	// annihilate every diagonal vectorised state.
	d := 2
	a := mat.NewCDense(d, d, []complex128{1, 0, 0, 2})
	comm := superop.Commutator(d, a)

	vecRho := []complex128{0.3, 0, 0, 0.7}
	for i := 0; i < d*d; i++ {
		var sum complex128
		for j := 0; j < d*d; j++ {
			sum += comm.At(i, j) * vecRho[j]
		}
		require.Equal(t, complex(0, 0), sum, "row %d", i)
	}
}

func TestBosonNextGradIsMinusILiftedCommutator(t *testing.T) {
	t.Parallel()

	d := 2
	q := mat.NewCDense(d, d, []complex128{0, 1, 1, 0})
	got := superop.BosonNextGrad(d, q)
	want := superop.Scale(complex(0, -1), superop.Commutator(d, q))

	r, c := got.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.Equal(t, want.At(i, j), got.At(i, j))
		}
	}
}

func TestBosonPrevGradZeroAtZeroOccupation(t *testing.T) {
	t.Parallel()

	d := 2
	q := mat.NewCDense(d, d, []complex128{0, 1, 1, 0})
	g := superop.BosonPrevGrad(d, complex(1, 0.5), q, 0)

	r, c := g.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.Equal(t, complex(0, 0), g.At(i, j))
		}
	}
}

func TestFermionGradSignsAlternate(t *testing.T) {
	t.Parallel()

	d := 2
	q := mat.NewCDense(d, d, []complex128{0, 1, 0, 0})
	etaA, etaE := complex(0.1, 0.2), complex(0.3, -0.1)

	g0 := superop.FermionPrevGrad(d, true, etaA, etaE, q, 0, 1, parity.Even)
	g1 := superop.FermionPrevGrad(d, true, etaA, etaE, q, 1, 1, parity.Even)

	r, c := g0.Dims()
	found := false
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if g0.At(i, j) != 0 {
				require.Equal(t, -g0.At(i, j), g1.At(i, j))
				found = true
			}
		}
	}
	require.True(t, found, "expected at least one nonzero entry to compare")
}
