package bath_test

import (
	"testing"

	"github.com/heomkit/heom/bath"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func squareOp(d int) *mat.CDense {
	data := make([]complex128, d*d)
	for i := range data {
		data[i] = complex(float64(i), 0)
	}

	return mat.NewCDense(d, d, data)
}

func TestNewTermProjectsBosonRealImag(t *testing.T) {
	t.Parallel()

	op := squareOp(2)
	tm, err := bath.NewTerm(bath.BosonReal, complex(1, 2), complex(0.5, 0), op, 2)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), tm.Eta)

	tm, err = bath.NewTerm(bath.BosonImag, complex(1, 2), complex(0.5, 0), op, 2)
	require.NoError(t, err)
	require.Equal(t, complex(0, 2), tm.Eta)
}

func TestNewTermFermionicRequiresPartner(t *testing.T) {
	t.Parallel()

	op := squareOp(2)
	_, err := bath.NewTerm(bath.FermionAbsorb, complex(1, 0), complex(0.5, 0), op, 2)
	require.ErrorIs(t, err, bath.ErrMissingPartner)

	tm, err := bath.NewTerm(bath.FermionAbsorb, complex(1, 0), complex(0.5, 0), op, 2, complex(0.2, -0.1))
	require.NoError(t, err)
	require.Equal(t, complex(0.2, -0.1), tm.EtaPartner)
}

func TestNewTermDimMismatch(t *testing.T) {
	t.Parallel()

	op := squareOp(2)
	_, err := bath.NewTerm(bath.BosonRealImag, complex(1, 0), complex(0.5, 0), op, 3)
	require.ErrorIs(t, err, bath.ErrDimMismatch)
}

func TestCombinePreservesOrderAndRejectsDimMismatch(t *testing.T) {
	t.Parallel()

	op2 := squareOp(2)
	t1, _ := bath.NewTerm(bath.BosonRealImag, complex(1, 0), complex(0.1, 0), op2, 2)
	t2, _ := bath.NewTerm(bath.BosonRealImag, complex(2, 0), complex(0.2, 0), op2, 2)
	b1, err := bath.NewBath(2, []*bath.Term{t1})
	require.NoError(t, err)
	b2, err := bath.NewBath(2, []*bath.Term{t2})
	require.NoError(t, err)

	combined, err := bath.Combine(b1, b2)
	require.NoError(t, err)
	require.Len(t, combined.Terms, 2)
	require.Equal(t, t1, combined.Terms[0])
	require.Equal(t, t2, combined.Terms[1])

	op3 := squareOp(3)
	t3, _ := bath.NewTerm(bath.BosonRealImag, complex(1, 0), complex(0.1, 0), op3, 3)
	b3, err := bath.NewBath(3, []*bath.Term{t3})
	require.NoError(t, err)
	_, err = bath.Combine(b1, b3)
	require.ErrorIs(t, err, bath.ErrDimMismatch)
}

func TestNewBathRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := bath.NewBath(2, nil)
	require.ErrorIs(t, err, bath.ErrEmptyBath)
}
