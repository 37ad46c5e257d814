package analysis

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/acirc/acsolver/pkg/circuit"
	"github.com/acirc/acsolver/pkg/component"
	"github.com/acirc/acsolver/pkg/solution"
)

// InputType selects whether an analysis treats the circuit's input as a
// voltage or a current excitation.
type InputType = component.InputKind

const (
	InputVoltage = component.InputVoltage
	InputCurrent = component.InputCurrent
)

// Option configures a ResponseAnalysis or NoiseAnalysis at construction
// time. The default logger discards all output, so progress enabled by
// circuit.Config.Analysis is only visible through a logger set with
// WithLogger.
type Option func(*analysisSettings)

type analysisSettings struct {
	logger *log.Logger
}

// WithLogger overrides an analysis's logger, used for the progress and
// noise-skip channel described in spec §7's non-fatal warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *analysisSettings) { s.logger = logger }
}

func newAnalysisSettings(opts []Option) analysisSettings {
	s := analysisSettings{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ResponseAnalysis solves A x = b at each sweep frequency and extracts the
// requested sinks, producing one TransferFunction per sink.
type ResponseAnalysis struct {
	circuit *circuit.Circuit
	logger  *log.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewACResponse creates a response analysis over circuit, initially in the
// configured state.
func NewACResponse(c *circuit.Circuit, opts ...Option) *ResponseAnalysis {
	settings := newAnalysisSettings(opts)
	return &ResponseAnalysis{circuit: c, logger: settings.logger, state: StateConfigured}
}

// State reports the analysis's current lifecycle state.
func (a *ResponseAnalysis) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Cancel requests cooperative cancellation of an in-progress sweep. It is
// a no-op if the analysis is not running.
func (a *ResponseAnalysis) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateRunning && a.cancel != nil {
		a.cancel()
	}
}

// Calculate sweeps frequencies, solving for the response from the
// circuit's configured input to each requested sink. inputType must match
// how the circuit's input was built; sinks names nodes and/or components.
func (a *ResponseAnalysis) Calculate(ctx context.Context, inputType InputType, sinks []string, freqs []float64) (*solution.Solution, error) {
	if err := validateFrequencies(freqs); err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.state != StateConfigured {
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: response analysis must be configured, is %s", ErrWrongState, a.state)
	}
	runCtx, cancel := context.WithCancel(ctx)
	a.state = StateRunning
	a.cancel = cancel
	a.mu.Unlock()

	resolved := make([]circuit.Sink, len(sinks))
	for i, name := range sinks {
		s, err := a.circuit.ResolveSink(name)
		if err != nil {
			a.resetToConfigured()
			return nil, err
		}
		resolved[i] = s
	}

	source := a.inputSourceName(inputType)

	type point struct {
		values []complex128
	}

	results, err := sweep(runCtx, freqs, func(_ context.Context, f float64) (point, error) {
		mat, err := a.circuit.Assemble(f)
		if err != nil {
			return point{}, err
		}
		if err := mat.Solve(); err != nil {
			return point{}, fmt.Errorf("response analysis: f=%g: %w", f, err)
		}
		values := make([]complex128, len(resolved))
		for i, s := range resolved {
			values[i] = mat.At(s.Index)
		}
		return point{values: values}, nil
	}, a.progressFunc())

	if err != nil {
		a.resetToConfigured()
		if runCtx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, err
	}

	sol := solution.New(freqs)
	for i, name := range sinks {
		if len(sol.Responses(source, name)) > 0 {
			a.logger.Warn("duplicate sink ignored", "sink", name)
			continue
		}
		y := make([]complex128, len(freqs))
		for f := range freqs {
			y[f] = results[f].values[i]
		}
		if err := sol.AddTransferFunction(solution.TransferFunction{
			Source: source,
			Sink:   name,
			Series: solution.Series{X: freqs, Y: y},
		}); err != nil {
			a.resetToConfigured()
			return nil, err
		}
	}

	a.mu.Lock()
	a.state = StateCompleted
	a.cancel = nil
	a.mu.Unlock()

	return sol, nil
}

func (a *ResponseAnalysis) resetToConfigured() {
	a.mu.Lock()
	a.state = StateConfigured
	a.cancel = nil
	a.mu.Unlock()
}

func (a *ResponseAnalysis) inputSourceName(inputType InputType) string {
	in, nodes := a.circuit.Input()
	if inputType == InputCurrent {
		return in.Name()
	}
	return nodes[0]
}

// progressFunc returns a sweep ProgressFunc that logs at >= 1% granularity
// when the circuit's configuration enables it (spec §4.4, §6's
// analysis.print_progress option), or nil to skip sweep's progress
// bookkeeping entirely.
func (a *ResponseAnalysis) progressFunc() ProgressFunc {
	return progressFunc(a.circuit.Config.Analysis.PrintProgress, a.logger, "response")
}
