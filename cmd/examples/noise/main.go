// Command noise reports the Johnson-noise spectrum at a resistor
// divider's midpoint, exercising scenarios (d) and (e): the incoherent
// total should equal sqrt(4*kB*T*(R1*R2/(R1+R2))), and with
// --input-refer the totals should be exactly 2x the output-referred
// values (since H_in->mid = 0.5 for equal resistors).
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
	inputRefer := pflag.BoolP("input-refer", "r", false, "report input-referred noise instead of output-referred")
	fStart := pflag.Float64P("f-start", "s", 1, "sweep start frequency, Hz")
	fStop := pflag.Float64P("f-stop", "e", 1e6, "sweep stop frequency, Hz")
	nPoints := pflag.IntP("points", "n", 10, "number of sweep points")
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
	if err := b.SetNoiseSink("mid"); err != nil {
		fatal(err)
	}

	ckt, err := b.Freeze()
	if err != nil {
		fatal(err)
	}

	freqs := analysis.FrequencyGrid(*fStart, *fStop, *nPoints, analysis.Decade)

	noiseAnalysis := analysis.NewACNoise(ckt)
	sol, err := noiseAnalysis.Calculate(context.Background(), analysis.InputVoltage, "mid", freqs,
		analysis.WithInputRefer(*inputRefer))
	if err != nil {
		fatal(err)
	}

	fmt.Println("Per-source noise density at mid:")
	for _, n := range sol.Noise("", "mid") {
		fmt.Printf("  %s:\n", n.Source)
		for i, f := range n.Series.X {
			v := real(n.Series.Y[i])
			fmt.Printf("    f=%-12s %s/sqrt(Hz)\n", quantity.FormatValueFactor(f, "Hz"), quantity.FormatValueFactor(v, "V"))
		}
	}

	total := sol.NoiseSum("mid")
	fmt.Println("Incoherent total:")
	for i, f := range total.Series.X {
		v := real(total.Series.Y[i])
		fmt.Printf("  f=%-12s %s/sqrt(Hz)\n", quantity.FormatValueFactor(f, "Hz"), quantity.FormatValueFactor(v, "V"))
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "noise:", err)
	os.Exit(1)
}
