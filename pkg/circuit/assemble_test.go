package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildDivider constructs the scenario (a) resistor divider: R1=1k (in->mid),
// R2=1k (mid->gnd), ideal voltage input at in (its 50 ohm impedance
// argument has no effect on the matrix).
func buildDivider(t *testing.T, rTop, rBot float64) *Circuit {
	t.Helper()
	b := newTestBuilder()
	_, err := b.AddResistor("R1", "in", "mid", rTop)
	require.NoError(t, err)
	_, err = b.AddResistor("R2", "mid", "gnd", rBot)
	require.NoError(t, err)
	require.NoError(t, b.SetVoltageInput("in", "gnd", 50))

	ckt, err := b.Freeze()
	require.NoError(t, err)
	return ckt
}

func TestAssembleDividerResponseIsOneHalf(t *testing.T) {
	ckt := buildDivider(t, 1000, 1000)

	mat, err := ckt.Assemble(1000)
	require.NoError(t, err)
	require.NoError(t, mat.Solve())

	mid, err := ckt.ResolveSink("mid")
	require.NoError(t, err)

	v := mat.At(mid.Index)
	require.InDelta(t, 0.5, real(v), 1e-9)
	require.InDelta(t, 0, imag(v), 1e-9)
}

func TestAssembleDimensionIsComponentsPlusNodes(t *testing.T) {
	ckt := buildDivider(t, 1000, 1000)
	mat, err := ckt.Assemble(1000)
	require.NoError(t, err)
	require.Equal(t, ckt.Dimension(), mat.Size())
}

func TestAssembleTransposedSetsUnitExcitationAtSink(t *testing.T) {
	ckt := buildDivider(t, 1000, 1000)
	mid, err := ckt.ResolveSink("mid")
	require.NoError(t, err)

	mat, err := ckt.AssembleTransposed(1000, mid)
	require.NoError(t, err)
	require.NoError(t, mat.Solve())
	// With the unit excitation at mid, y at the input branch row (component
	// index 3: R1, R2, input - this is row 3) is the input-to-mid response,
	// which is 0.5 for this divider.
	v := mat.At(3)
	require.False(t, isNaNComplex(v))
	require.InDelta(t, 0.5, real(v), 1e-9)
}

func isNaNComplex(v complex128) bool {
	return real(v) != real(v) || imag(v) != imag(v)
}
