package solution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddTransferFunctionRejectsDuplicates(t *testing.T) {
	sol := New([]float64{1, 10, 100})
	tf := TransferFunction{Source: "in", Sink: "out", Series: Series{X: sol.Frequencies, Y: make([]complex128, 3)}}

	require.NoError(t, sol.AddTransferFunction(tf))
	require.Error(t, sol.AddTransferFunction(tf))
}

func TestResponsesFiltersBySourceAndSink(t *testing.T) {
	sol := New([]float64{1})
	require.NoError(t, sol.AddTransferFunction(TransferFunction{Source: "in", Sink: "a", Series: Series{X: sol.Frequencies, Y: []complex128{1}}}))
	require.NoError(t, sol.AddTransferFunction(TransferFunction{Source: "in", Sink: "b", Series: Series{X: sol.Frequencies, Y: []complex128{2}}}))

	all := sol.Responses("", "")
	require.Len(t, all, 2)

	onlyA := sol.Responses("", "a")
	require.Len(t, onlyA, 1)
	require.Equal(t, "a", onlyA[0].Sink)
}

func TestNoiseSumIsIncoherent(t *testing.T) {
	sol := New([]float64{1000})
	require.NoError(t, sol.AddNoiseDensity(NoiseDensity{Source: "R1", Sink: "mid", Series: Series{X: sol.Frequencies, Y: []complex128{3}}}))
	require.NoError(t, sol.AddNoiseDensity(NoiseDensity{Source: "R2", Sink: "mid", Series: Series{X: sol.Frequencies, Y: []complex128{4}}}))

	total := sol.NoiseSum("mid")
	require.InDelta(t, 5.0, real(total.Series.Y[0]), 1e-9) // sqrt(3^2+4^2) == 5
}

func TestSeriesAbs(t *testing.T) {
	s := Series{Y: []complex128{complex(3, 4)}}
	require.InDelta(t, 5.0, s.Abs()[0], 1e-9)
}

func TestDivideByMagnitude(t *testing.T) {
	s := Series{X: []float64{1}, Y: []complex128{complex(10, 0)}}
	out := s.DivideByMagnitude([]float64{2})
	require.InDelta(t, 5.0, real(out.Y[0]), 1e-9)
}

func TestDivideByMagnitudeZeroGivesInf(t *testing.T) {
	s := Series{X: []float64{1}, Y: []complex128{complex(10, 0)}}
	out := s.DivideByMagnitude([]float64{0})
	require.True(t, math.IsInf(real(out.Y[0]), 1))
}
