package analysis

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/acirc/acsolver/pkg/circuit"
	"github.com/acirc/acsolver/pkg/component"
	"github.com/acirc/acsolver/pkg/solution"
)

// NoiseAnalysis solves Aᵀ y = e_sink at each sweep frequency, projecting
// every intrinsic noise source through the resulting response-to-sink
// vector.
type NoiseAnalysis struct {
	circuit *circuit.Circuit
	logger  *log.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewACNoise creates a noise analysis over circuit, initially configured.
func NewACNoise(c *circuit.Circuit, opts ...Option) *NoiseAnalysis {
	settings := newAnalysisSettings(opts)
	return &NoiseAnalysis{circuit: c, state: StateConfigured, logger: settings.logger}
}

// progressFunc returns a sweep ProgressFunc wired the same way
// ResponseAnalysis's is; see its doc comment.
func (a *NoiseAnalysis) progressFunc() ProgressFunc {
	return progressFunc(a.circuit.Config.Analysis.PrintProgress, a.logger, "noise")
}

// State reports the analysis's current lifecycle state.
func (a *NoiseAnalysis) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Cancel requests cooperative cancellation of an in-progress sweep.
func (a *NoiseAnalysis) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateRunning && a.cancel != nil {
		a.cancel()
	}
}

// noiseOptions holds the configuration NoiseOption values mutate.
type noiseOptions struct {
	inputRefer     bool
	inputImpedance float64
	haveInputImped bool
}

// NoiseOption configures an optional behavior of NoiseAnalysis.Calculate.
type NoiseOption func(*noiseOptions)

// WithInputRefer divides every noise contribution (and the aggregated
// total) by the input-to-sink response magnitude, expressing the result
// as an equivalent input-referred spectrum.
func WithInputRefer(refer bool) NoiseOption {
	return func(o *noiseOptions) { o.inputRefer = refer }
}

// WithInputImpedance is accepted for parity with the analysis contract's
// impedance parameter. The circuit's input impedance is fixed at build
// time (pkg/circuit.Builder.SetVoltageInput/SetCurrentInput), so this
// currently only validates the value; it has no effect on computation. It
// is kept as a distinct option rather than dropped so a future per-call
// override has somewhere to attach without changing the Calculate
// signature again.
func WithInputImpedance(ohms float64) NoiseOption {
	return func(o *noiseOptions) {
		o.inputImpedance = ohms
		o.haveInputImped = true
	}
}

type noisePoint struct {
	// contributions[i] is |y[index_i]| times noise source i's density at
	// this frequency.
	contributions []float64
	hGain         complex128 // input-to-sink response, only computed if input_refer
}

type namedNoise struct {
	label string
	index int
	densityAt func(f float64) float64
}

// Calculate sweeps frequencies, solving the transposed system once per
// point and projecting every component's intrinsic noise sources to sink.
func (a *NoiseAnalysis) Calculate(ctx context.Context, inputType InputType, sink string, freqs []float64, opts ...NoiseOption) (*solution.Solution, error) {
	if err := validateFrequencies(freqs); err != nil {
		return nil, err
	}

	var options noiseOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.haveInputImped && options.inputImpedance < 0 {
		return nil, fmt.Errorf("%w: input impedance must be non-negative", component.ErrInvalidParameter)
	}

	a.mu.Lock()
	if a.state != StateConfigured {
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: noise analysis must be configured, is %s", ErrWrongState, a.state)
	}
	runCtx, cancel := context.WithCancel(ctx)
	a.state = StateRunning
	a.cancel = cancel
	a.mu.Unlock()

	sinkRef, err := a.circuit.ResolveSink(sink)
	if err != nil {
		a.resetToConfigured()
		return nil, err
	}

	sources := a.collectNoiseSources()
	if len(sources) == 0 {
		a.mu.Lock()
		a.state = StateCompleted
		a.cancel = nil
		a.mu.Unlock()
		return solution.New(freqs), nil
	}

	results, err := sweep(runCtx, freqs, func(_ context.Context, f float64) (noisePoint, error) {
		mat, err := a.circuit.AssembleTransposed(f, sinkRef)
		if err != nil {
			return noisePoint{}, err
		}
		if err := mat.Solve(); err != nil {
			return noisePoint{}, fmt.Errorf("noise analysis: f=%g: %w", f, err)
		}

		contributions := make([]float64, len(sources))
		for i, s := range sources {
			y := mat.At(s.index)
			contributions[i] = cmplxAbs(y) * s.densityAt(f)
		}

		point := noisePoint{contributions: contributions}
		if options.inputRefer {
			respMat, err := a.circuit.Assemble(f)
			if err != nil {
				return noisePoint{}, err
			}
			if err := respMat.Solve(); err != nil {
				return noisePoint{}, fmt.Errorf("noise analysis (input-refer): f=%g: %w", f, err)
			}
			point.hGain = respMat.At(sinkRef.Index)
		}
		return point, nil
	}, a.progressFunc())

	if err != nil {
		a.resetToConfigured()
		if runCtx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, err
	}

	sol := solution.New(freqs)
	skipped := make([]string, 0)

	for i, s := range sources {
		y := make([]complex128, len(freqs))
		allZero := true
		for f := range freqs {
			v := results[f].contributions[i]
			if v != 0 {
				allZero = false
			}
			y[f] = complex(v, 0)
		}
		if allZero {
			skipped = append(skipped, s.label)
			continue
		}

		series := solution.Series{X: freqs, Y: y}
		if options.inputRefer {
			mags := make([]float64, len(freqs))
			for f := range freqs {
				mags[f] = cmplxAbs(results[f].hGain)
			}
			series = series.DivideByMagnitude(mags)
		}

		if err := sol.AddNoiseDensity(solution.NoiseDensity{
			Source: s.label,
			Sink:   sink,
			Series: series,
		}); err != nil {
			a.resetToConfigured()
			return nil, err
		}
	}

	if len(skipped) > 0 {
		a.logger.Info("skipped zero noise sources", "sources", skipped)
	}

	a.mu.Lock()
	a.state = StateCompleted
	a.cancel = nil
	a.mu.Unlock()

	return sol, nil
}

func (a *NoiseAnalysis) resetToConfigured() {
	a.mu.Lock()
	a.state = StateConfigured
	a.cancel = nil
	a.mu.Unlock()
}

// collectNoiseSources walks every component, resolving each NoiseSource's
// anchor to a concrete matrix index now that the circuit is frozen and
// every component's nodes are bound.
func (a *NoiseAnalysis) collectNoiseSources() []namedNoise {
	var out []namedNoise
	for i, comp := range a.circuit.Components() {
		row := i + 1
		for _, ns := range comp.NoiseSources(a.circuit.Config.Constants.KB, a.circuit.Config.Constants.T) {
			ns := ns
			idx := row
			switch ns.Anchor {
			case component.NoiseAtNode1:
				idx = comp.Nodes()[0]
			case component.NoiseAtNode2:
				idx = comp.Nodes()[1]
			}
			out = append(out, namedNoise{label: ns.Label, index: idx, densityAt: ns.Density})
		}
	}
	return out
}

func cmplxAbs(y complex128) float64 {
	return math.Hypot(real(y), imag(y))
}
