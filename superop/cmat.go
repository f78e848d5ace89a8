package superop

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("superop: dimensions must be > 0")

// ErrDimMismatch indicates two operands disagree on shape for an operation
// that requires them to match (Kronecker factors excluded: those are
// allowed to differ).
var ErrDimMismatch = errors.New("superop: dimension mismatch")

// cmatErrorf wraps an underlying error with method context.
func cmatErrorf(method string, err error) error {
	return fmt.Errorf("superop.%s: %w", method, err)
}

// NewMat allocates an r×c complex matrix initialized to zero.
//
// Stage 1 (Validate): r, c > 0.
// Stage 2 (Finalize): delegate to mat.NewCDense for storage.
func NewMat(r, c int) (*mat.CDense, error) {
	if r <= 0 || c <= 0 {
		return nil, cmatErrorf("NewMat", ErrInvalidDimensions)
	}

	return mat.NewCDense(r, c, nil), nil
}

// Identity returns the n×n complex identity matrix. mat has no complex
// analogue of NewDiagDense, so the diagonal is set directly.
func Identity(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, complex(1, 0))
	}

	return m
}

// Transpose returns Aᵀ (no conjugation). mat exposes only the conjugate
// transpose for complex matrices, so this conjugates elementwise first and
// lets H undo the conjugation while swapping indices.
func Transpose(a *mat.CDense) *mat.CDense {
	var conj mat.CDense
	conj.Apply(func(_, _ int, v complex128) complex128 { return cmplx.Conj(v) }, a)
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	out.Copy(conj.H())

	return out
}

// Dagger returns A† (conjugate transpose), materialized from mat's
// implicit Conjugate view.
func Dagger(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	out.Copy(a.H())

	return out
}

// Kron returns the Kronecker product a⊗b.
func Kron(a, b *mat.CDense) *mat.CDense {
	var out mat.CDense
	out.Kronecker(a, b)

	return &out
}

// MatMul returns a·b. Panics if the inner dimensions disagree (a
// programmer-error bound: callers only ever multiply shapes this package
// itself derived).
func MatMul(a, b *mat.CDense) *mat.CDense {
	_, ca := a.Dims()
	rb, _ := b.Dims()
	if ca != rb {
		panic(cmatErrorf("MatMul", ErrDimMismatch))
	}
	var out mat.CDense
	out.Mul(a, b)

	return &out
}

// Scale returns f·a.
func Scale(f complex128, a *mat.CDense) *mat.CDense {
	var out mat.CDense
	out.Scale(f, a)

	return &out
}

// Add returns a+b. Requires identical shapes.
func Add(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(cmatErrorf("Add", ErrDimMismatch))
	}
	var out mat.CDense
	out.Add(a, b)

	return &out
}

// Sub returns a-b. Requires identical shapes.
func Sub(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(cmatErrorf("Sub", ErrDimMismatch))
	}
	var out mat.CDense
	out.Sub(a, b)

	return &out
}

// Trace returns Σ_i a[i][i]. Panics if a is not square. mat.Trace is
// real-only; there is no complex counterpart to delegate to.
func Trace(a *mat.CDense) complex128 {
	r, c := a.Dims()
	if r != c {
		panic(cmatErrorf("Trace", ErrDimMismatch))
	}
	var sum complex128
	for i := 0; i < r; i++ {
		sum += a.At(i, i)
	}

	return sum
}

// NonZero reports whether a has any entry with magnitude greater than tol.
// Re-exported by package sparse as sparse.NonZero.
func NonZero(a *mat.CDense, tol float64) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if real(v)*real(v)+imag(v)*imag(v) > tol*tol {
				return true
			}
		}
	}

	return false
}
