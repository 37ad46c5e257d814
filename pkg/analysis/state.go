// Package analysis drives the frequency sweep: assembling and solving the
// MNA matrix at every point, fanning the per-frequency work out across a
// worker pool, and reducing the results into a solution.Solution.
//
// The sweep driver and state machine are grounded on toy-spice's
// ACAnalysis/BaseAnalysis pair (pkg/analysis/ac.go, pkg/analysis/anlysis.go),
// generalised from a single sequential DC/transient loop to a cancellable,
// parallel frequency sweep.
package analysis

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// State is one of the three phases an analysis instance moves through:
// configured (ready, not yet run), running (sweep in progress), or
// completed (solution frozen and readable). Transitions are one-way
// except running -> configured on cancel.
type State int

const (
	StateConfigured State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// validateFrequencies enforces the dimension-mismatch rule: the sweep must
// be non-empty and strictly increasing.
func validateFrequencies(freqs []float64) error {
	if len(freqs) == 0 {
		return fmt.Errorf("%w: empty frequency vector", ErrDimensionMismatch)
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return fmt.Errorf("%w: frequency vector not strictly increasing at index %d", ErrDimensionMismatch, i)
		}
		if freqs[i] <= 0 {
			return fmt.Errorf("%w: frequency must be strictly positive at index %d", ErrDimensionMismatch, i)
		}
	}
	if freqs[0] <= 0 {
		return fmt.Errorf("%w: frequency must be strictly positive at index 0", ErrDimensionMismatch)
	}
	return nil
}

// progressFunc builds the ProgressFunc a sweep reports through, or nil if
// progress reporting is disabled. sweep already throttles to >= 1% of the
// sweep length (spec §4.4); this just routes that signal to logger.
func progressFunc(enabled bool, logger *log.Logger, label string) ProgressFunc {
	if !enabled {
		return nil
	}
	return func(done, total int) {
		logger.Info("sweep progress", "analysis", label, "done", done, "total", total)
	}
}
