// Package ado holds the flat ADO (auxiliary density operator) state vector
// and the observable extraction helpers GetRho, Expect and Trace.
package ado
