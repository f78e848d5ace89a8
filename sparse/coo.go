package sparse

import (
	"fmt"

	"github.com/heomkit/heom/superop"
	"gonum.org/v1/gonum/mat"
)

// Entry is one (row, col, val) triple.
type Entry struct {
	Row, Col int
	Val      complex128
}

// COO is an append-only sparse accumulator for one N×N matrix. Each
// assembly worker owns a private COO and shares nothing while emitting;
// no synchronization is required until Merge.
type COO struct {
	n       int
	entries []Entry
}

// NewCOO allocates an empty accumulator for an n×n matrix.
func NewCOO(n int) (*COO, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &COO{n: n}, nil
}

// N returns the matrix dimension.
func (c *COO) N() int { return c.n }

// Add appends one nonzero entry. Duplicate (row, col) pairs across calls
// (including across merged partitions) are summed at Compress time, not
// here.
func (c *COO) Add(row, col int, v complex128) {
	if v == 0 {
		return
	}
	c.entries = append(c.entries, Entry{Row: row, Col: col, Val: v})
}

// AddBlock stamps a small dense operator into the global matrix at block
// position (rowBlk, colBlk), each block occupying a blockDim-wide range of
// global rows/cols: global row/col = blk*blockDim + local row/col. Entries
// with magnitude at or below tol are skipped so structurally-zero
// gradients (e.g. a zero-occupation bosonic "prev" block) never inflate
// nnz.
func (c *COO) AddBlock(rowBlk, colBlk, blockDim int, block *mat.CDense, tol float64) {
	if block == nil {
		return
	}
	r, col := block.Dims()
	if r != blockDim || col != blockDim {
		panic(fmt.Sprintf("sparse.COO.AddBlock: block is %dx%d, want %dx%d", r, col, blockDim, blockDim))
	}
	rowOff := rowBlk * blockDim
	colOff := colBlk * blockDim
	for i := 0; i < blockDim; i++ {
		for j := 0; j < blockDim; j++ {
			v := block.At(i, j)
			if cAbs2(v) <= tol*tol {
				continue
			}
			c.Add(rowOff+i, colOff+j, v)
		}
	}
}

func cAbs2(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}

// Merge appends other's entries into c. Used at the fork-join join point to
// concatenate per-worker partitions.
func (c *COO) Merge(other *COO) {
	if other == nil {
		return
	}
	c.entries = append(c.entries, other.entries...)
}

// Len returns the number of raw (pre-compression, pre-deduplication)
// entries accumulated so far.
func (c *COO) Len() int { return len(c.entries) }

// NonZero reports whether the given dense operator has any entry whose
// magnitude exceeds tol; a thin re-export of superop.NonZero so callers
// assembling blocks don't need to import superop just for this check.
func NonZero(a *mat.CDense, tol float64) bool {
	return superop.NonZero(a, tol)
}
