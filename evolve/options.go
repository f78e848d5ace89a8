package evolve

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ProgressFunc is an optional progress callback. It is called synchronously
// on the propagating goroutine after each step's saved point (the initial
// point is not reported), so a slow callback delays propagation.
type ProgressFunc func(step int, t float64)

// UpdateHook recomputes the time-dependent system Hamiltonian. Propagate
// calls it once per step, at the step's end time, and uses the result for
// every series term of that step; PropagateODE calls it once per RK4
// substep, at the substep's start time, and does not refresh it between
// the integrator's internal stage evaluations. It returns H(t); the evolver lifts it to
// L_t = -i(spre(H(t))-spost(H(t))), subtracts the system Liouvillian the
// assembler stamped at build time, and applies the difference to every
// diagonal block — H(t) replaces the assembled Hsys for that instant.
type UpdateHook func(t float64) *mat.CDense

// Sink streams saved ADO vectors to a checkpoint store keyed by a decimal
// timestamp string. Implementations must reject a key that was already
// written (ErrCheckpointExists); the evolver treats any Put error as
// fatal.
type Sink interface {
	Put(key string, data []complex128) error
}

// Option configures Propagate (the matrix-exponential path).
type Option func(*propConfig)

type propConfig struct {
	threshold float64
	dropTol   float64
	maxTerms  int
	progress  ProgressFunc
	hook      UpdateHook
	sink      Sink
}

const (
	defaultThreshold = 1e-6
	defaultPropDrop  = 1e-14
	defaultMaxTerms  = 200
)

func newPropConfig(opts ...Option) propConfig {
	cfg := propConfig{
		threshold: defaultThreshold,
		dropTol:   defaultPropDrop,
		maxTerms:  defaultMaxTerms,
	}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// WithThreshold overrides the matrix-exponential truncation threshold τ.
func WithThreshold(tau float64) Option {
	return func(c *propConfig) { c.threshold = tau }
}

// WithNonzeroTol overrides the sparsity-preserving drop tolerance ε: after
// each step, state entries with magnitude at or below ε are zeroed.
func WithNonzeroTol(eps float64) Option {
	return func(c *propConfig) { c.dropTol = eps }
}

// WithMaxSeriesTerms bounds the Taylor series iteration cap.
func WithMaxSeriesTerms(n int) Option {
	return func(c *propConfig) { c.maxTerms = n }
}

// WithProgressFunc installs a best-effort progress sink.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(c *propConfig) { c.progress = fn }
}

// WithUpdateHook installs a time-dependent Hamiltonian hook.
func WithUpdateHook(h UpdateHook) Option {
	return func(c *propConfig) { c.hook = h }
}

// WithCheckpoint installs a checkpoint sink.
func WithCheckpoint(s Sink) Option {
	return func(c *propConfig) { c.sink = s }
}

// ODEOption configures PropagateODE.
type ODEOption func(*odeConfig)

type odeConfig struct {
	rtol     float64
	atol     float64
	maxSteps int
	progress ProgressFunc
	hook     UpdateHook
	sink     Sink
}

const (
	defaultRTol     = 1e-6
	defaultATol     = 1e-8
	defaultMaxSteps = 100000
)

func newODEConfig(opts ...ODEOption) odeConfig {
	cfg := odeConfig{
		rtol:     defaultRTol,
		atol:     defaultATol,
		maxSteps: defaultMaxSteps,
	}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// substeps derives the number of internal RK4 substeps taken between two
// consecutive tlist points from cfg.rtol/cfg.atol. gonum.org/v1/gonum/ivp's
// RK4 integrator has no tolerance input of its own, so rtol/atol act here
// as the tightening knob on the fixed-step subdivision instead: each
// tolerance tightened below its default scales the substep count up by
// sqrt(default/requested), and the finer of the two requirements wins.
// Both loosening past the default and requesting the default itself fall
// back to baseODESubsteps, so this never subdivides more coarsely than the
// bundled default accuracy.
func (cfg odeConfig) substeps() int {
	n := baseODESubsteps
	if cfg.rtol > 0 && cfg.rtol < defaultRTol {
		if s := int(math.Round(float64(baseODESubsteps) * math.Sqrt(defaultRTol/cfg.rtol))); s > n {
			n = s
		}
	}
	if cfg.atol > 0 && cfg.atol < defaultATol {
		if s := int(math.Round(float64(baseODESubsteps) * math.Sqrt(defaultATol/cfg.atol))); s > n {
			n = s
		}
	}

	return n
}

// WithRTol overrides the ODE integrator's relative tolerance. Tightening it
// below the default (1e-6) refines the internal substep subdivision (see
// odeConfig.substeps); the underlying RK4 backend has no native tolerance
// input.
func WithRTol(rtol float64) ODEOption {
	return func(c *odeConfig) { c.rtol = rtol }
}

// WithATol overrides the ODE integrator's absolute tolerance. Tightening it
// below the default (1e-8) refines the internal substep subdivision (see
// odeConfig.substeps); the underlying RK4 backend has no native tolerance
// input.
func WithATol(atol float64) ODEOption {
	return func(c *odeConfig) { c.atol = atol }
}

// WithMaxSteps overrides the ODE integrator's step budget.
func WithMaxSteps(n int) ODEOption {
	return func(c *odeConfig) { c.maxSteps = n }
}

// WithODEProgressFunc installs a best-effort progress sink for the ODE path.
func WithODEProgressFunc(fn ProgressFunc) ODEOption {
	return func(c *odeConfig) { c.progress = fn }
}

// WithODEUpdateHook installs a time-dependent Hamiltonian hook for the ODE
// path.
func WithODEUpdateHook(h UpdateHook) ODEOption {
	return func(c *odeConfig) { c.hook = h }
}

// WithODECheckpoint installs a checkpoint sink for the ODE path.
func WithODECheckpoint(s Sink) ODEOption {
	return func(c *odeConfig) { c.sink = s }
}
