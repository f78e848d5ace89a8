// Package heom assembles and operates on the HEOM superoperator M:
// MakeHeomBoson, MakeHeomFermion, MakeHeomBosonFermion construct it;
// AddDissipator, SteadyState, GetRho and Expect operate on it.
//
// Construction is a thin, deterministic public facade (api.go) over the
// hierarchy assembler (assemble.go): API boundaries validate and wrap
// errors; assembly has no knowledge of the public entry points that reach
// it.
package heom
