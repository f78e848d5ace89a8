package heom

import (
	"fmt"
	"runtime"
)

// ProgressFunc is an optional, best-effort progress callback; it never
// blocks assembly. Done reports how many of total outer labels have been
// stamped into the accumulator.
type ProgressFunc func(done, total int)

// Option configures the assembler, resolved once into an immutable config
// before assembly starts.
type Option func(*config)

type config struct {
	workers  int
	verbose  bool
	dropTol  float64
	progress ProgressFunc
}

// defaultDropTol is the sparsity-preserving drop tolerance applied when
// compressing the assembled COO into CSC.
const defaultDropTol = 1e-14

func newConfig(opts ...Option) config {
	cfg := config{
		workers: runtime.GOMAXPROCS(0),
		dropTol: defaultDropTol,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	if cfg.verbose && cfg.progress == nil {
		cfg.progress = defaultVerboseProgress
	}

	return cfg
}

// defaultVerboseProgress is the stdout progress sink WithVerbose installs
// when the caller hasn't supplied one of their own via WithProgress.
func defaultVerboseProgress(done, total int) {
	fmt.Printf("heom: assembled %d/%d ado labels\n", done, total)
}

// WithWorkers overrides the number of fork-join assembly workers. n<1 is
// clamped to 1.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithVerbose enables default stdout progress reporting. When v is true
// and no explicit WithProgress sink has been installed, it wires in
// defaultVerboseProgress instead of printing directly from inside the
// assembler; the assembler itself never touches global state. An explicit
// WithProgress always wins over the verbose default, regardless of option
// order.
func WithVerbose(v bool) Option {
	return func(c *config) { c.verbose = v }
}

// WithDropTol overrides the matrix-assembly sparsity drop tolerance.
func WithDropTol(tol float64) Option {
	return func(c *config) { c.dropTol = tol }
}

// WithProgress installs a best-effort progress sink.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) { c.progress = fn }
}
