package heom

import (
	"fmt"

	"github.com/heomkit/heom/superop"
	"gonum.org/v1/gonum/mat"
)

// AddDissipator updates M in place with the Lindblad dissipator of the
// given jump operators:
//
//	Σ_i ( spre(J_i)·spost(J_i†) − ½spre(J_i†J_i) − ½spost(J_i†J_i) )
//
// The resulting d²×d² delta is stamped into every diagonal block of the
// sparse matrix; the cached system Liouvillian (Lsys) is left as it was,
// so the delta stays part of L_0 on the time-dependent path. The sparsity
// of M may grow. Calling AddDissipator with no jump operators leaves M
// structurally unchanged.
//
// Stage 1 (Validate): every jump operator is d×d.
// Stage 2 (Execute): accumulate the dissipator delta once, re-expand the
// CSC to COO, stamp the delta into every diagonal block, recompress.
//
// Complexity: O(len(jumpOps)·d⁴ + N_ado·d⁴ + nnz·log(nnz)).
func (h *Heom) AddDissipator(jumpOps []*mat.CDense) error {
	if len(jumpOps) == 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, j := range jumpOps {
		r, c := j.Dims()
		if r != c || r != h.d {
			return fmt.Errorf("AddDissipator: jump op %d is %dx%d, want %dx%d: %w", i, r, c, h.d, h.d, ErrDimMismatch)
		}
	}

	d2 := h.d * h.d
	delta := mat.NewCDense(d2, d2, nil)
	for _, j := range jumpOps {
		jd := superop.Dagger(j)
		jdj := superop.MatMul(jd, j)
		term := superop.Sub(
			superop.MatMul(superop.Spre(h.d, j), superop.Spost(h.d, jd)),
			superop.Scale(0.5, superop.Add(superop.Spre(h.d, jdj), superop.Spost(h.d, jdj))),
		)
		delta = superop.Add(delta, term)
	}

	coo := h.data.ToCOO()
	nAdo := h.labelsB.Len() * h.labelsF.Len()
	for b := 0; b < nAdo; b++ {
		coo.AddBlock(b, b, d2, delta, h.dropTol)
	}
	h.data = coo.Compress(h.dropTol)

	return nil
}
