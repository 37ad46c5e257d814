package analysis

import "errors"

var (
	// ErrDimensionMismatch is returned when the frequency vector is empty
	// or not strictly increasing.
	ErrDimensionMismatch = errors.New("analysis: frequency vector empty or non-monotonic")
	// ErrCancelled is returned when a sweep is aborted by cooperative
	// cancellation; no partial solution is returned alongside it.
	ErrCancelled = errors.New("analysis: cancelled")
	// ErrWrongState is returned when Calculate is called on an analysis
	// that is not in the configured state.
	ErrWrongState = errors.New("analysis: wrong state")
)
