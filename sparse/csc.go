package sparse

import (
	"fmt"
	"sort"
)

// CSC is a compressed-sparse-column complex matrix with 64-bit indices.
type CSC struct {
	N      int
	ColPtr []int64
	RowIdx []int64
	Vals   []complex128
}

// Compress sums duplicate (row, col) pairs and builds a CSC, dropping any
// summed entry whose magnitude is at or below dropTol. The intermediate
// COO is not retained: callers should let it be garbage-collected
// immediately after this call.
//
// Complexity: O(nnz_raw·log(nnz_raw)) for the map-based deduplication and
// the column-major sort,
// O(nnz_raw) space for the compressed result in the worst case (no
// duplicates, nothing dropped).
func (c *COO) Compress(dropTol float64) *CSC {
	type key struct{ row, col int }
	sums := make(map[key]complex128, len(c.entries))
	for _, e := range c.entries {
		sums[key{e.Row, e.Col}] += e.Val
	}

	type kv struct {
		row, col int
		val      complex128
	}
	flat := make([]kv, 0, len(sums))
	for k, v := range sums {
		if cAbs2(v) <= dropTol*dropTol {
			continue
		}
		flat = append(flat, kv{k.row, k.col, v})
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].col != flat[j].col {
			return flat[i].col < flat[j].col
		}

		return flat[i].row < flat[j].row
	})

	out := &CSC{
		N:      c.n,
		ColPtr: make([]int64, c.n+1),
		RowIdx: make([]int64, len(flat)),
		Vals:   make([]complex128, len(flat)),
	}
	col := 0
	for i, e := range flat {
		for col < e.col {
			col++
			out.ColPtr[col] = int64(i)
		}
		out.RowIdx[i] = int64(e.row)
		out.Vals[i] = e.val
	}
	for col < c.n {
		col++
		out.ColPtr[col] = int64(len(flat))
	}

	return out
}

// NNZ returns the number of stored (structurally nonzero) entries.
func (m *CSC) NNZ() int { return len(m.Vals) }

// At returns the value at (row, col), 0 if it is not stored. Uses a binary
// search over the column's sorted row indices.
func (m *CSC) At(row, col int) complex128 {
	if row < 0 || row >= m.N || col < 0 || col >= m.N {
		panic(fmt.Sprintf("sparse.CSC.At(%d,%d): %v", row, col, ErrIndexOutOfBounds))
	}
	lo, hi := m.ColPtr[col], m.ColPtr[col+1]
	idx := sort.Search(int(hi-lo), func(i int) bool {
		return m.RowIdx[lo+int64(i)] >= int64(row)
	})
	pos := lo + int64(idx)
	if pos < hi && m.RowIdx[pos] == int64(row) {
		return m.Vals[pos]
	}

	return 0
}

// MulVec computes y = M·x.
//
// Complexity: O(nnz).
func (m *CSC) MulVec(x []complex128) []complex128 {
	if len(x) != m.N {
		panic(fmt.Sprintf("sparse.CSC.MulVec: len(x)=%d, want %d", len(x), m.N))
	}
	y := make([]complex128, m.N)
	for col := 0; col < m.N; col++ {
		xc := x[col]
		if xc == 0 {
			continue
		}
		for p := m.ColPtr[col]; p < m.ColPtr[col+1]; p++ {
			y[m.RowIdx[p]] += m.Vals[p] * xc
		}
	}

	return y
}

// ToCOO re-expands the CSC back into a COO, for callers (the dissipator
// re-stamp in package heom) that need to add further entries and
// recompress; growing a CSC's sparsity pattern in place would cost the
// same and complicate the format.
func (m *CSC) ToCOO() *COO {
	c := &COO{n: m.N, entries: make([]Entry, 0, len(m.Vals))}
	for col := 0; col < m.N; col++ {
		for p := m.ColPtr[col]; p < m.ColPtr[col+1]; p++ {
			c.entries = append(c.entries, Entry{Row: int(m.RowIdx[p]), Col: col, Val: m.Vals[p]})
		}
	}

	return c
}
