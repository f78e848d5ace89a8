// Package evolve propagates HEOM states in time: it takes an assembled
// heom.Heom and an initial ado.Vector and produces a
// trajectory, either via a truncated matrix-exponential Taylor series
// applied repeatedly to the state, or by driving an ODE integrator
// (gonum.org/v1/gonum/ivp) over dv/dt = L·v. Both paths support a
// time-dependent system Hamiltonian through an update hook, and both
// support streaming saved points to an optional checkpoint sink.
package evolve
