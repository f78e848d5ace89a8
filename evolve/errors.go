package evolve

import "errors"

// Sentinel errors for the evolve package.
var (
	// ErrCheckpointExists indicates a checkpoint sink key or file was
	// already written; checkpoint targets must not pre-exist.
	ErrCheckpointExists = errors.New("evolve: checkpoint key already exists")

	// ErrMaxStepsExceeded indicates the ODE integrator exceeded its
	// configured step budget before reaching the final requested time point.
	ErrMaxStepsExceeded = errors.New("evolve: integrator exceeded max_steps")

	// ErrExpSeriesDivergent indicates the truncated matrix-exponential
	// Taylor series failed to meet the configured threshold within the
	// bounded iteration cap.
	ErrExpSeriesDivergent = errors.New("evolve: matrix-exponential series did not converge within threshold")

	// ErrDimMismatch indicates the initial ADO vector's shape disagrees
	// with L's.
	ErrDimMismatch = errors.New("evolve: ADO dimension mismatch")

	// ErrEmptyTimeList indicates PropagateODE was called with no requested
	// save points.
	ErrEmptyTimeList = errors.New("evolve: empty time point list")
)
