// Command rclowpass builds a single-pole RC low-pass filter and reports
// its response at the corner frequency, exercising scenario (b): R=1kOhm,
// C=159.155nF gives f_c = 1/(2*pi*R*C) ~= 1000 Hz, where |H(f_c)| should
// equal 1/sqrt(2).
package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"

	"github.com/acirc/acsolver/pkg/analysis"
	"github.com/acirc/acsolver/pkg/circuit"
	"github.com/acirc/acsolver/pkg/config"
	"github.com/acirc/acsolver/pkg/quantity"
)

func main() {
	r := pflag.Float64P("r", "r", 1000, "series resistor, ohms")
	c := pflag.Float64P("c", "c", 159.155e-9, "shunt capacitor, farads")
	nPoints := pflag.IntP("points", "n", 41, "number of sweep points")
	pflag.Parse()

	corner := 1 / (2 * math.Pi * (*r) * (*c))

	b := circuit.NewBuilder(config.Default())
	if _, err := b.AddResistor("R1", "in", "out", *r); err != nil {
		fatal(err)
	}
	if _, err := b.AddCapacitor("C1", "out", "gnd", *c); err != nil {
		fatal(err)
	}
	if err := b.SetVoltageInput("in", "gnd", 50); err != nil {
		fatal(err)
	}

	ckt, err := b.Freeze()
	if err != nil {
		fatal(err)
	}

	freqs := analysis.FrequencyGrid(corner/10, corner*10, *nPoints, analysis.Decade)

	resp := analysis.NewACResponse(ckt)
	sol, err := resp.Calculate(context.Background(), analysis.InputVoltage, []string{"out"}, freqs)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("RC low-pass: corner frequency ~= %s\n", quantity.FormatValueFactor(corner, "Hz"))
	for _, tf := range sol.Responses("", "out") {
		for i, f := range tf.Series.X {
			mag := tf.Series.Abs()[i]
			fmt.Printf("  f=%-12s |H|=%.6f\n", quantity.FormatValueFactor(f, "Hz"), mag)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "rclowpass:", err)
	os.Exit(1)
}
