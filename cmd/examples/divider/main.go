// Command divider builds a simple resistor voltage divider and prints its
// frequency response, exercising scenario (a) of the solver's testable
// properties: two 1 kOhm resistors, input at "in", sink at "mid", expected
// |H(f)| = 0.5 across the sweep.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/acirc/acsolver/pkg/analysis"
	"github.com/acirc/acsolver/pkg/circuit"
	"github.com/acirc/acsolver/pkg/config"
	"github.com/acirc/acsolver/pkg/quantity"
)

func main() {
	rTop := pflag.Float64P("r-top", "t", 1000, "top resistor, ohms")
	rBot := pflag.Float64P("r-bot", "b", 1000, "bottom resistor, ohms")
	fStart := pflag.Float64P("f-start", "s", 1, "sweep start frequency, Hz")
	fStop := pflag.Float64P("f-stop", "e", 1e6, "sweep stop frequency, Hz")
	nPoints := pflag.IntP("points", "n", 50, "number of sweep points")
	pflag.Parse()

	b := circuit.NewBuilder(config.Default())
	if _, err := b.AddResistor("R1", "in", "mid", *rTop); err != nil {
		fatal(err)
	}
	if _, err := b.AddResistor("R2", "mid", "gnd", *rBot); err != nil {
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
	sol, err := resp.Calculate(context.Background(), analysis.InputVoltage, []string{"mid"}, freqs)
	if err != nil {
		fatal(err)
	}

	fmt.Println("Resistor divider: |H(in->mid)|")
	for _, tf := range sol.Responses("", "mid") {
		for i, f := range tf.Series.X {
			mag := tf.Series.Abs()[i]
			fmt.Printf("  f=%-12s |H|=%.6f\n", quantity.FormatValueFactor(f, "Hz"), mag)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "divider:", err)
	os.Exit(1)
}
