package sparse_test

import (
	"testing"

	"github.com/heomkit/heom/sparse"
	"github.com/stretchr/testify/require"
)

func TestCompressSumsDuplicates(t *testing.T) {
	t.Parallel()

	coo, err := sparse.NewCOO(3)
	require.NoError(t, err)
	coo.Add(0, 0, complex(1, 0))
	coo.Add(0, 0, complex(2, 0))
	coo.Add(1, 2, complex(0, 1))

	csc := coo.Compress(1e-14)
	require.Equal(t, 2, csc.NNZ())
	require.Equal(t, complex(3, 0), csc.At(0, 0))
	require.Equal(t, complex(0, 1), csc.At(1, 2))
	require.Equal(t, complex(0, 0), csc.At(2, 2))
}

func TestCompressDropsBelowTolerance(t *testing.T) {
	t.Parallel()

	coo, err := sparse.NewCOO(2)
	require.NoError(t, err)
	coo.Add(0, 0, complex(1, 0))
	coo.Add(0, 0, complex(-1, 0))

	csc := coo.Compress(1e-14)
	require.Equal(t, 0, csc.NNZ())
}

func TestMergeThenCompressSumsAcrossPartitions(t *testing.T) {
	t.Parallel()

	a, _ := sparse.NewCOO(2)
	a.Add(0, 0, complex(1, 0))
	b, _ := sparse.NewCOO(2)
	b.Add(0, 0, complex(1, 0))
	b.Add(1, 1, complex(2, 0))

	a.Merge(b)
	csc := a.Compress(1e-14)
	require.Equal(t, complex(2, 0), csc.At(0, 0))
	require.Equal(t, complex(2, 0), csc.At(1, 1))
}

func TestMulVec(t *testing.T) {
	t.Parallel()

	coo, _ := sparse.NewCOO(2)
	coo.Add(0, 0, complex(2, 0))
	coo.Add(0, 1, complex(1, 0))
	coo.Add(1, 1, complex(3, 0))
	csc := coo.Compress(1e-14)

	y := csc.MulVec([]complex128{complex(1, 0), complex(1, 0)})
	require.Equal(t, complex(3, 0), y[0])
	require.Equal(t, complex(3, 0), y[1])
}

func TestToCOORoundTrip(t *testing.T) {
	t.Parallel()

	coo, _ := sparse.NewCOO(2)
	coo.Add(0, 1, complex(4, -1))
	csc := coo.Compress(1e-14)

	back := csc.ToCOO()
	csc2 := back.Compress(1e-14)
	require.Equal(t, csc.NNZ(), csc2.NNZ())
	require.Equal(t, csc.At(0, 1), csc2.At(0, 1))
}
