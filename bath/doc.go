// Package bath holds the flat tables of bath expansion terms the HEOM
// assembler consumes: exponential terms (η_k, γ_k, coupling operator Q_k,
// kind) describing a Drude–Lorentz / Lorentz / underdamped Matsubara or
// Padé expansion of a bath correlation function. Generating those
// coefficients is an external collaborator's job; this package only
// stores and validates the resulting tables and caches their derived
// superoperator forms.
package bath
