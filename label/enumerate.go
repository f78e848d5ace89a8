package label

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// Enumerate builds the canonical Table of all valid labels for the given
// per-mode dimension bounds and total excitation tier.
//
// Stage 1 (Validate): dims must be non-empty with every entry ≥ 1, tier ≥ 0.
// Stage 2 (Execute): depth-first generation over the K coordinates, which
// produces exactly the "increment rightmost, carry left on saturation"
// canonical order: the outer recursion call varies the leftmost coordinate
// slowest and the innermost call varies the rightmost coordinate fastest,
// matching a row-major nested loop.
// Stage 3 (Finalize): assign linear indices in emission order and build the
// reverse index.
//
// Complexity: O(|Ω|·K) time, O(|Ω|·K) space for the returned Table.
func Enumerate(dims []int, tier int) (*Table, error) {
	// Stage 1: validate.
	if len(dims) == 0 {
		return nil, ErrNoTerms
	}
	if tier < 0 {
		return nil, fmt.Errorf("Enumerate: tier=%d: %w", tier, ErrNegativeTier)
	}
	for k, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("Enumerate: dims[%d]=%d: %w", k, d, ErrDimsMismatch)
		}
	}

	t := &Table{
		dims:  append([]int(nil), dims...),
		tier:  tier,
		order: make([]Label, 0, estimateCapacity(dims, tier)),
		index: make(map[string]int, estimateCapacity(dims, tier)),
	}

	s := make(Label, len(dims))
	var walk func(k, remaining int)
	walk = func(k, remaining int) {
		if k == len(dims) {
			// A full coordinate assignment is always valid here: each
			// recursive call already bounds s[k] by both dims[k]-1 and the
			// tier budget remaining, so Σs ≤ tier holds by construction.
			lbl := s.clone()
			t.index[lbl.key()] = len(t.order)
			t.order = append(t.order, lbl)
			return
		}
		// s[k] ranges over [0, min(dims[k]-1, remaining)], rightmost
		// coordinate (largest k) incrementing fastest.
		maxHere := dims[k] - 1
		if remaining < maxHere {
			maxHere = remaining
		}
		for v := 0; v <= maxHere; v++ {
			s[k] = v
			walk(k+1, remaining-v)
		}
		s[k] = 0 // carry: reset before returning to the parent call
	}
	walk(0, tier)

	return t, nil
}

// estimateCapacity gives a cheap upper bound for slice/map preallocation; it
// need not be exact.
func estimateCapacity(dims []int, tier int) int {
	k := len(dims)
	if k == 0 {
		return 0
	}
	n := Count(dims, tier)
	if n <= 0 {
		return k
	}

	return n
}

// Trivial returns the single-element Table of the unique K=0 label (),
// used when a statistics channel (boson or fermion) has no expansion terms
// at all. A purely bosonic Heom matrix has no fermionic terms, so its
// fermionic "table" is this one-label placeholder rather than an error
// from Enumerate(nil, 0): the mixed-statistics assembler needs an identity
// element for the absent statistics so idx = idxB·N_ado_f + idxF still
// works when N_ado_f == 1.
func Trivial() *Table {
	return &Table{
		dims:  []int{},
		tier:  0,
		order: []Label{{}},
		index: map[string]int{"": 0},
	}
}

// Count returns |Ω(dims, tier)| via a closed-form / DP computation that is
// independent of Enumerate, used to cross-check the enumerator's
// cardinality without re-enumerating.
//
// When every dims[k] > tier (no per-mode cap is ever hit), the count is the
// classical "stars and bars" sum Σ_{n=0..tier} C(n+K-1, K-1), computed via
// gonum.org/v1/gonum/stat/combin.Binomial. Otherwise it falls back to an
// O(tier·K) dynamic program over the per-mode caps (still independent of
// the recursive generator in Enumerate).
func Count(dims []int, tier int) int {
	k := len(dims)
	if k == 0 || tier < 0 {
		return 0
	}

	uncapped := true
	for _, d := range dims {
		if d <= tier {
			uncapped = false
			break
		}
	}
	if uncapped {
		total := 0
		for n := 0; n <= tier; n++ {
			total += combin.Binomial(n+k-1, k-1)
		}

		return total
	}

	// DP: ways[n] = number of ways to distribute total excitation n across
	// the modes processed so far, respecting each mode's cap.
	ways := make([]int, tier+1)
	ways[0] = 1
	for _, d := range dims {
		next := make([]int, tier+1)
		for n := 0; n <= tier; n++ {
			if ways[n] == 0 {
				continue
			}
			maxAdd := d - 1
			for add := 0; add <= maxAdd && n+add <= tier; add++ {
				next[n+add] += ways[n]
			}
		}
		ways = next
	}

	total := 0
	for _, w := range ways {
		total += w
	}

	return total
}
