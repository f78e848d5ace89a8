// Package sparse implements the COO accumulator and CSC compressed matrix
// the HEOM assembler builds.
//
// A COO is a per-worker write-only partition: the fork-join assembler gives
// each goroutine its own COO, lets it emit (row, col, val) triples with no
// locking, then Merges the partitions and Compresses the result once at the
// join point. Duplicate (row, col) pairs are additive.
//
// CSC stores 64-bit row indices and column pointers; hierarchy label
// counts grow combinatorially, so int32 indexing would overflow first.
package sparse
