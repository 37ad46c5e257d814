// Command invamp builds an inverting op-amp amplifier with gain -Rf/Rin
// and reports its low-frequency response, exercising scenario (c): 1 kOhm
// input resistor, 10 kOhm feedback resistor, single-pole op-amp (A0 = 1e6,
// GBW = 10 MHz by default), expected H(f) -> -10 for f much less than
// GBW/10.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/acirc/acsolver/pkg/analysis"
	"github.com/acirc/acsolver/pkg/circuit"
	"github.com/acirc/acsolver/pkg/component"
	"github.com/acirc/acsolver/pkg/config"
	"github.com/acirc/acsolver/pkg/quantity"
)

func main() {
	rIn := pflag.Float64P("r-in", "i", 1000, "input resistor, ohms")
	rFb := pflag.Float64P("r-fb", "f", 10000, "feedback resistor, ohms")
	gbw := pflag.Float64P("gbw", "g", 1e7, "op-amp gain-bandwidth product, Hz")
	a0 := pflag.Float64P("a0", "a", 1e6, "op-amp DC open-loop gain")
	fStart := pflag.Float64P("f-start", "s", 1, "sweep start frequency, Hz")
	fStop := pflag.Float64P("f-stop", "e", 1e5, "sweep stop frequency, Hz")
	nPoints := pflag.IntP("points", "n", 40, "number of sweep points")
	pflag.Parse()

	b := circuit.NewBuilder(config.Default())
	if _, err := b.AddResistor("Rin", "in", "n1", *rIn); err != nil {
		fatal(err)
	}
	if _, err := b.AddResistor("Rf", "n1", "out", *rFb); err != nil {
		fatal(err)
	}
	params := component.OpAmpParams{A0: *a0, GBW: *gbw}
	if _, err := b.AddOpAmp("U1", "gnd", "n1", "out", params); err != nil {
		fatal(err)
	}
	if err := b.SetVoltageInput("in", "gnd", 50); err != nil {
		fatal(err)
	}

	ckt, err := b.Freeze()
	if err != nil {
		fatal(err)
	}

	freqs := analysis.FrequencyGrid(*fStart, *fStop, *nPoints, analysis.Decade)

	resp := analysis.NewACResponse(ckt)
	sol, err := resp.Calculate(context.Background(), analysis.InputVoltage, []string{"out"}, freqs)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Inverting amplifier: ideal gain = %.3f\n", -(*rFb)/(*rIn))
	for _, tf := range sol.Responses("", "out") {
		for i, f := range tf.Series.X {
			y := tf.Series.Y[i]
			fmt.Printf("  f=%-12s H=%.4f%+.4fi\n", quantity.FormatValueFactor(f, "Hz"), real(y), imag(y))
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "invamp:", err)
	os.Exit(1)
}
