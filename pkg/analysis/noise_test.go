package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acirc/acsolver/pkg/circuit"
)

const kB = 1.380649e-23

func buildNoiseDivider(t *testing.T, rTop, rBot float64) (string, *circuit.Circuit) {
	t.Helper()
	b := newBuilder()
	_, err := b.AddResistor("R1", "in", "mid", rTop)
	require.NoError(t, err)
	_, err = b.AddResistor("R2", "mid", "gnd", rBot)
	require.NoError(t, err)
	require.NoError(t, b.SetVoltageInput("in", "gnd", 50))
	require.NoError(t, b.SetNoiseSink("mid"))

	ckt, err := b.Freeze()
	require.NoError(t, err)
	return "mid", ckt
}

// Scenario (d): Johnson noise at a resistor midpoint.
func TestJohnsonNoiseAtMidpoint(t *testing.T) {
	sink, ckt := buildNoiseDivider(t, 1000, 1000)

	na := NewACNoise(ckt)
	sol, err := na.Calculate(context.Background(), InputVoltage, sink, []float64{1, 1000, 1e6})
	require.NoError(t, err)

	expected := math.Sqrt(4 * kB * 298.15 * 500) // R1 || R2 = 500 ohm
	total := sol.NoiseSum(sink)
	for _, v := range total.Series.Y {
		require.InDelta(t, expected, real(v), expected*1e-6)
	}
}

// Scenario (e): input-referred noise pass-through. H_in->mid = 0.5, so
// input-referred totals should be exactly 2x the output-referred ones.
func TestInputReferredNoiseIsTwiceOutputReferred(t *testing.T) {
	sink, ckt := buildNoiseDivider(t, 1000, 1000)

	outAnalysis := NewACNoise(ckt)
	outSol, err := outAnalysis.Calculate(context.Background(), InputVoltage, sink, []float64{1000})
	require.NoError(t, err)

	inAnalysis := NewACNoise(ckt)
	inSol, err := inAnalysis.Calculate(context.Background(), InputVoltage, sink, []float64{1000}, WithInputRefer(true))
	require.NoError(t, err)

	outTotal := real(outSol.NoiseSum(sink).Series.Y[0])
	inTotal := real(inSol.NoiseSum(sink).Series.Y[0])
	require.InDelta(t, 2*outTotal, inTotal, outTotal*1e-9)
}

// Invariant 6: superposition - sum of per-source power densities equals
// the solver-reported incoherent total.
func TestNoiseSuperposition(t *testing.T) {
	sink, ckt := buildNoiseDivider(t, 1000, 2000)

	na := NewACNoise(ckt)
	sol, err := na.Calculate(context.Background(), InputVoltage, sink, []float64{1000})
	require.NoError(t, err)

	var sumSquares float64
	for _, n := range sol.Noise("", sink) {
		v := real(n.Series.Y[0])
		sumSquares += v * v
	}
	total := real(sol.NoiseSum(sink).Series.Y[0])
	require.InDelta(t, total*total, sumSquares, total*total*1e-12)
}

// Scenario (f): cancellation returns no solution.
func TestCancellationBeforeSweepReturnsNoSolution(t *testing.T) {
	sink, ckt := buildNoiseDivider(t, 1000, 1000)

	na := NewACNoise(ckt)

	freqs := FrequencyGrid(1, 1e6, 1000, Decade)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately, before the sweep starts

	sol, err := na.Calculate(ctx, InputVoltage, sink, freqs)
	require.ErrorIs(t, err, ErrCancelled)
	require.Nil(t, sol)
	require.Equal(t, StateConfigured, na.State())
}

func TestNoiseCalculateRejectsUnknownSink(t *testing.T) {
	_, ckt := buildNoiseDivider(t, 1000, 1000)

	na := NewACNoise(ckt)
	_, err := na.Calculate(context.Background(), InputVoltage, "nope", []float64{1})
	require.Error(t, err)
}
