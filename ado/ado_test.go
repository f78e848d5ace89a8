package ado_test

import (
	"testing"

	"github.com/heomkit/heom/ado"
	"github.com/heomkit/heom/parity"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSetBlockZeroFillsBlockZeroOnly(t *testing.T) {
	t.Parallel()

	rho := mat.NewCDense(2, 2, []complex128{1, complex(0, 0.1), complex(0, -0.1), 0})
	v, err := ado.New(2, 3, parity.None)
	require.NoError(t, err)
	require.NoError(t, v.SetBlock(0, rho))

	got, err := v.GetRho()
	require.NoError(t, err)
	require.Equal(t, rho.At(0, 1), got.At(0, 1))

	b1, err := v.Block(1)
	require.NoError(t, err)
	require.Equal(t, complex(0, 0), b1.At(0, 0))
}

func TestExpectAndTrace(t *testing.T) {
	t.Parallel()

	rho := mat.NewCDense(2, 2, []complex128{0.3, 0, 0, 0.7})
	require.Equal(t, complex(1, 0), ado.Trace(rho))

	sz := mat.NewCDense(2, 2, []complex128{1, 0, 0, -1})
	require.InDelta(t, real(ado.Expect(sz, rho)), -0.4, 1e-12)
}

func TestBlockOutOfRange(t *testing.T) {
	t.Parallel()

	v, err := ado.New(2, 2, parity.None)
	require.NoError(t, err)
	_, err = v.Block(5)
	require.ErrorIs(t, err, ado.ErrBlockOutOfRange)
}

func TestFromRawLengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := ado.FromRaw(make([]complex128, 3), 2, 2, parity.None)
	require.ErrorIs(t, err, ado.ErrLengthMismatch)
}
