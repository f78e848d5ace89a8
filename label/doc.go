// Package label enumerates HEOM hierarchy multi-indices ("ADO labels")
// bounded by a per-mode dimension vector and a total excitation tier, and
// provides the bijection between a label and its linear index.
//
// A label is a non-negative integer vector s ∈ ℤ₊^K. It is valid iff every
// component stays below its declared bound and the total Σ s_k does not
// exceed the tier. Enumerate produces the valid labels in the canonical
// order required by the hierarchy assembler: starting at s=0, the rightmost
// coordinate is repeatedly incremented; when a coordinate saturates its
// bound or the running total reaches the tier, it carries to the left.
//
// Determinism: for fixed (dims, tier), Enumerate always returns the labels
// in the same order, and the returned index of a label never changes for
// the lifetime of the Table that produced it.
package label
