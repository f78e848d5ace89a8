package label

import (
	"strconv"
	"strings"
)

// Label is a hierarchy multi-index: Label[k] is the occupation of the k-th
// bath expansion term. Callers must not mutate a Label returned from a
// Table; treat it as immutable.
type Label []int

// Sum returns Σ s_k, the total excitation of the label.
func (l Label) Sum() int {
	total := 0
	for _, s := range l {
		total += s
	}

	return total
}

// clone returns a private copy so callers can never corrupt a Table's
// internal slices through an aliased Label.
func (l Label) clone() Label {
	c := make(Label, len(l))
	copy(c, l)

	return c
}

// key derives the hash key used by Table's reverse map: a decimal-joined
// string, collision-free for any non-negative occupation vector and cheap
// enough at the K sizes HEOM baths produce (K is the bath-term count,
// rarely more than a few dozen).
func (l Label) key() string {
	var b strings.Builder
	for i, s := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s))
	}

	return b.String()
}

// Table is the fixed bijection between ADO labels and linear indices
// produced by Enumerate. It is immutable after construction.
type Table struct {
	dims  []int
	tier  int
	order []Label        // idx2label, in canonical order
	index map[string]int // label2idx, keyed by Label.key()
}

// Dims returns the per-mode dimension bound the table was built with.
func (t *Table) Dims() []int {
	dims := make([]int, len(t.dims))
	copy(dims, t.dims)

	return dims
}

// Tier returns the total excitation tier the table was built with.
func (t *Table) Tier() int { return t.tier }

// Len returns |Ω|, the number of valid labels (N_ado for this table alone).
func (t *Table) Len() int { return len(t.order) }

// K returns the number of expansion terms (components per label).
func (t *Table) K() int { return len(t.dims) }

// Label returns the label at linear index idx. Panics if idx is out of
// range: this is a programmer-error bound, not a user-input validation
// (every idx in [0,Len()) is produced by this same Table).
func (t *Table) Label(idx int) Label {
	return t.order[idx].clone()
}

// Index returns the linear index of label s and true, or (0, false) if s is
// not a member of this table's Ω(dims, tier).
func (t *Table) Index(s Label) (int, bool) {
	idx, ok := t.index[s.key()]

	return idx, ok
}
