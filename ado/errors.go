package ado

import "errors"

// ErrDimMismatch indicates a supplied density matrix's dimension disagrees
// with the declared system dimension d.
var ErrDimMismatch = errors.New("ado: dimension mismatch")

// ErrLengthMismatch indicates a raw vector's length is not NAdo*d*d.
var ErrLengthMismatch = errors.New("ado: vector length mismatch")

// ErrBlockOutOfRange indicates a requested block index is outside [0, NAdo).
var ErrBlockOutOfRange = errors.New("ado: block index out of range")
