// Package superop builds the superoperators the HEOM hierarchy assembler
// stamps into each block of M: the vectorised left/right multiplication
// lifts spre and spost, and the per-bath-term-kind "previous" and "next"
// gradient operators that couple a label to its ±1 neighbours.
//
// All operators live on the d²-dimensional vectorised space, column-major
// (vec(ρ)[i+j*d] = ρ[i][j]), matching the ADO block convention in package
// ado.
// Complex dense matrices are *mat.CDense (gonum.org/v1/gonum/mat)
// throughout, and the algebra delegates to CDense's own arithmetic
// (Mul, Kronecker, Add, Sub, Scale, H); only the unconjugated transpose,
// the identity constructor and the complex trace are built here, as mat
// offers no complex counterparts for those.
package superop
