package heomgraph

import (
	"github.com/heomkit/heom/heom"
	"github.com/heomkit/heom/label"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// View is a directed graph over a Heom's combined hierarchy index space,
// with an edge idx → idx' whenever the assembler would have stamped a
// "next" (excitation-increasing) block between them.
type View struct {
	g    *simple.DirectedGraph
	nAdo int
}

// Build constructs the introspection view of h. Only "next" edges are
// added (never "prev", which is their reverse): the excitation-increasing
// direction is, by construction, acyclic for a fixed tier, which is the
// property Acyclic checks.
//
// Complexity: O(N_ado·K) nodes/edges, where K is the term count of
// whichever statistics channel is being walked.
func Build(h *heom.Heom) *View {
	labelsB, labelsF := h.LabelsB(), h.LabelsF()
	nAdoF := labelsF.Len()
	nAdo := h.NAdo()

	g := simple.NewDirectedGraph()
	for i := 0; i < nAdo; i++ {
		g.AddNode(simple.Node(i))
	}

	tierB, tierF := labelsB.Tier(), labelsF.Tier()

	for idx := 0; idx < nAdo; idx++ {
		idxB, idxF := idx/nAdoF, idx%nAdoF
		addNextEdges(g, labelsB, idxB, idx, tierB, func(nIdx int) int { return nIdx*nAdoF + idxF })
		addNextEdges(g, labelsF, idxF, idx, tierF, func(nIdx int) int { return idxB*nAdoF + nIdx })
	}

	return &View{g: g, nAdo: nAdo}
}

// addNextEdges adds one edge per component of the label at localIdx in
// table whose excitation-incremented neighbour is itself valid.
func addNextEdges(g *simple.DirectedGraph, table *label.Table, localIdx, globalIdx, tier int, toGlobal func(int) int) {
	lbl := table.Label(localIdx)
	if lbl.Sum() >= tier {
		return
	}
	for k := range lbl {
		next := make(label.Label, len(lbl))
		copy(next, lbl)
		next[k]++
		if nIdx, ok := table.Index(next); ok {
			g.SetEdge(simple.Edge{F: simple.Node(globalIdx), T: simple.Node(toGlobal(nIdx))})
		}
	}
}

// Graph exposes the underlying gonum graph.Directed for callers that want
// to run their own topo/path algorithms over it.
func (v *View) Graph() graph.Directed { return v.g }

// NAdo returns the number of nodes (hierarchy labels) in the view.
func (v *View) NAdo() int { return v.nAdo }

// Acyclic reports whether the "next"-edge graph has no cycles, via
// gonum.org/v1/gonum/graph/topo.TarjanSCC: every strongly connected
// component of a true hierarchy DAG is a single node.
func (v *View) Acyclic() bool {
	for _, scc := range topo.TarjanSCC(v.g) {
		if len(scc) > 1 {
			return false
		}
	}

	return true
}
