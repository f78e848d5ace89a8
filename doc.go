// Package heom (heomkit) is a Go engine for assembling and evolving the
// Hierarchical Equations of Motion for an open quantum system coupled to
// bosonic and/or fermionic baths.
//
// 🚀 What is heomkit?
//
//	A thread-safe, fork-join-parallel engine that brings together:
//
//	  • Hierarchy enumeration: bijective ADO label ↔ linear index tables
//	  • Superoperator assembly: spre/spost, bosonic and fermionic gradients
//	  • A sparse COO→CSC pipeline sized for combinatorial hierarchy growth
//	  • Propagation by truncated matrix exponential or driven ODE
//	  • A steady-state adapter and Lindblad dissipator injection
//
// ✨ Design
//
//   - No global state     — every hook (progress, checkpoint, update) is
//     passed explicitly by the caller
//   - Rock-solid           — R/W-locked long-lived state, validation at
//     every call boundary before any computation begins
//   - Extensible           — bath expansion terms are a tagged-variant
//     enumeration, not an inheritance hierarchy
//
// Everything is organized under subpackages:
//
//	label/     — LabelEnumerator: Ω(dims, tier) enumeration and bijection
//	bath/      — bath expansion terms, Bath, CombinedBath
//	superop/   — spre/spost and per-variant gradient superoperators
//	sparse/    — COO accumulator and CSC compaction
//	ado/       — the flat ADO state vector and its block accessors
//	heom/      — HierarchyAssembler, the Heom matrix, public construction API
//	evolve/    — matrix-exponential and ODE propagation, checkpointing
//	heomgraph/ — read-only graph.Directed introspection view of a hierarchy
//	parity/    — the fermionic grading shared by the packages above
//
//	go get github.com/heomkit/heom
package heom
