package ado

import (
	"fmt"

	"github.com/heomkit/heom/parity"
	"github.com/heomkit/heom/superop"
	"gonum.org/v1/gonum/mat"
)

// Vector is the flat ADO state vector: length NAdo·d², block b occupying
// [b·d², (b+1)·d²) and interpreted column-major as a d×d matrix. Block 0
// (the all-zero label) is the physical reduced density matrix.
type Vector struct {
	D      int
	NAdo   int
	Parity parity.Parity
	Data   []complex128
}

// New allocates a zeroed Vector of the given shape.
func New(d, nAdo int, p parity.Parity) (*Vector, error) {
	if d <= 0 || nAdo <= 0 {
		return nil, fmt.Errorf("ado.New: d=%d nAdo=%d: %w", d, nAdo, ErrDimMismatch)
	}

	return &Vector{D: d, NAdo: nAdo, Parity: p, Data: make([]complex128, nAdo*d*d)}, nil
}

// FromRho builds a Vector whose block 0 is rho and all other blocks are
// zero.
func FromRho(rho *mat.CDense, nAdo int, p parity.Parity) (*Vector, error) {
	r, c := rho.Dims()
	if r != c {
		return nil, fmt.Errorf("ado.FromRho: rho is %dx%d: %w", r, c, ErrDimMismatch)
	}
	v, err := New(r, nAdo, p)
	if err != nil {
		return nil, err
	}
	for j := 0; j < r; j++ {
		for i := 0; i < r; i++ {
			v.Data[i+j*r] = rho.At(i, j)
		}
	}

	return v, nil
}

// FromRaw wraps an existing flat vector without copying.
func FromRaw(data []complex128, d, nAdo int, p parity.Parity) (*Vector, error) {
	if len(data) != nAdo*d*d {
		return nil, fmt.Errorf("ado.FromRaw: len=%d, want %d: %w", len(data), nAdo*d*d, ErrLengthMismatch)
	}

	return &Vector{D: d, NAdo: nAdo, Parity: p, Data: data}, nil
}

// Block returns a copy of block b as a d×d matrix, read column-major from
// the flat vector.
func (v *Vector) Block(b int) (*mat.CDense, error) {
	if b < 0 || b >= v.NAdo {
		return nil, fmt.Errorf("ado.Vector.Block(%d): %w", b, ErrBlockOutOfRange)
	}
	d := v.D
	out := mat.NewCDense(d, d, nil)
	base := b * d * d
	for j := 0; j < d; j++ {
		for i := 0; i < d; i++ {
			out.Set(i, j, v.Data[base+i+j*d])
		}
	}

	return out, nil
}

// SetBlock writes m into block b, column-major.
func (v *Vector) SetBlock(b int, m *mat.CDense) error {
	if b < 0 || b >= v.NAdo {
		return fmt.Errorf("ado.Vector.SetBlock(%d): %w", b, ErrBlockOutOfRange)
	}
	r, c := m.Dims()
	if r != v.D || c != v.D {
		return fmt.Errorf("ado.Vector.SetBlock(%d): value is %dx%d, want %dx%d: %w", b, r, c, v.D, v.D, ErrDimMismatch)
	}
	base := b * v.D * v.D
	for j := 0; j < v.D; j++ {
		for i := 0; i < v.D; i++ {
			v.Data[base+i+j*v.D] = m.At(i, j)
		}
	}

	return nil
}

// GetRho returns block 0, the physical reduced density matrix.
func (v *Vector) GetRho() (*mat.CDense, error) {
	return v.Block(0)
}

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector {
	data := make([]complex128, len(v.Data))
	copy(data, v.Data)

	return &Vector{D: v.D, NAdo: v.NAdo, Parity: v.Parity, Data: data}
}

// Expect returns Tr(O·rho), the expectation value of observable O in state
// rho.
func Expect(o, rho *mat.CDense) complex128 {
	return superop.Trace(superop.MatMul(o, rho))
}

// Trace returns Tr(rho).
func Trace(rho *mat.CDense) complex128 {
	return superop.Trace(rho)
}
