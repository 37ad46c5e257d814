package quantity_test

import (
	"testing"

	"github.com/acirc/acsolver/pkg/quantity"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		unit string
	}{
		{"1k", 1000, ""},
		{"1kOhm", 1000, "Ohm"},
		{"159.155n", 159.155e-9, ""},
		{"10meg", 10e6, ""},
		{"2.2u", 2.2e-6, ""},
		{"5", 5, ""},
		{"-3.3m", -3.3e-3, ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			q, err := quantity.Parse(tc.in)
			require.NoError(t, err)
			require.InEpsilon(t, tc.want, q.Value, 1e-12)
			require.Equal(t, tc.unit, q.Unit)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := quantity.Parse("")
	require.Error(t, err)

	_, err = quantity.Parse("abc")
	require.Error(t, err)
}

func TestFormatValueFactor(t *testing.T) {
	require.Equal(t, "1.000 kHz", quantity.FormatValueFactor(1000, "Hz"))
	require.Equal(t, "159.155 nF", quantity.FormatValueFactor(159.155e-9, "F"))
	require.Equal(t, "0 V", quantity.FormatValueFactor(0, "V"))
}
