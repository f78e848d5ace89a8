// Package heomgraph is a read-only introspection view of an assembled
// heom.Heom hierarchy: nodes are ADO labels, edges are the ±1 neighbour
// couplings the assembler stamps into the sparse matrix. It is never
// consulted during assembly or evolution; it exists purely for diagnostics
// and for sanity-checking, via gonum.org/v1/gonum/graph/topo, that the
// "next" direction of a hierarchy never cycles back on itself.
package heomgraph
