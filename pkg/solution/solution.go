// Package solution holds the output of a response or noise analysis: a
// frequency-indexed collection of transfer functions and noise spectra,
// queryable by source and sink. It is grounded on
// original_source/electronics/simulate/solution.py's Solution class, minus
// its plotting methods, which are out of scope here.
package solution

import (
	"fmt"
	"math"
)

// Series pairs a frequency vector with aligned complex y values. Real
// quantities (noise densities) are represented with a zero imaginary part.
type Series struct {
	X []float64
	Y []complex128
}

// Abs returns the magnitude of each Y value, useful for both transfer
// functions and (already-real) noise densities.
func (s Series) Abs() []float64 {
	out := make([]float64, len(s.Y))
	for i, y := range s.Y {
		out[i] = cmplxAbs(y)
	}
	return out
}

func cmplxAbs(y complex128) float64 {
	return math.Hypot(real(y), imag(y))
}

// TransferFunction is a complex-valued response from source to sink.
type TransferFunction struct {
	Source string
	Sink   string
	Series Series
}

func (f TransferFunction) key() string { return "tf:" + f.Source + "->" + f.Sink }

// NoiseDensity is a non-negative real spectral density contributed by
// source, projected to sink.
type NoiseDensity struct {
	Source string
	Sink   string
	Series Series
}

func (f NoiseDensity) key() string { return "noise:" + f.Source + "->" + f.Sink }

// Solution is an append-only-during-analysis, immutable-afterwards
// collection of functions sharing one frequency vector.
type Solution struct {
	Frequencies []float64

	tfs      []TransferFunction
	noises   []NoiseDensity
	seenKeys map[string]bool
}

// New creates an empty Solution over the given (already validated,
// monotonic) frequency vector.
func New(frequencies []float64) *Solution {
	return &Solution{
		Frequencies: frequencies,
		seenKeys:    make(map[string]bool),
	}
}

// AddTransferFunction appends a transfer function, in source/sink
// insertion order. Returns an error if an identical (source, sink) pair
// was already added.
func (s *Solution) AddTransferFunction(tf TransferFunction) error {
	if s.seenKeys[tf.key()] {
		return fmt.Errorf("solution: duplicate transfer function %s -> %s", tf.Source, tf.Sink)
	}
	s.seenKeys[tf.key()] = true
	s.tfs = append(s.tfs, tf)
	return nil
}

// AddNoiseDensity appends a noise density, in source/sink insertion order.
// Returns an error if an identical (source, sink) pair was already added.
func (s *Solution) AddNoiseDensity(n NoiseDensity) error {
	if s.seenKeys[n.key()] {
		return fmt.Errorf("solution: duplicate noise density %s -> %s", n.Source, n.Sink)
	}
	s.seenKeys[n.key()] = true
	s.noises = append(s.noises, n)
	return nil
}

// Responses returns the transfer functions matching source and/or sink
// (empty string matches any), in insertion order.
func (s *Solution) Responses(source, sink string) []TransferFunction {
	var out []TransferFunction
	for _, tf := range s.tfs {
		if source != "" && tf.Source != source {
			continue
		}
		if sink != "" && tf.Sink != sink {
			continue
		}
		out = append(out, tf)
	}
	return out
}

// Noise returns the noise densities matching source and/or sink (empty
// string matches any), in insertion order.
func (s *Solution) Noise(source, sink string) []NoiseDensity {
	var out []NoiseDensity
	for _, n := range s.noises {
		if source != "" && n.Source != source {
			continue
		}
		if sink != "" && n.Sink != sink {
			continue
		}
		out = append(out, n)
	}
	return out
}

// NoiseSum returns the incoherent sum sqrt(sum yi^2) of every noise
// density at sink, across the shared frequency vector.
func (s *Solution) NoiseSum(sink string) NoiseDensity {
	contributors := s.Noise("", sink)
	y := make([]complex128, len(s.Frequencies))
	for _, n := range contributors {
		for i, v := range n.Series.Y {
			mag := cmplxAbs(v)
			y[i] += complex(mag*mag, 0)
		}
	}
	for i, v := range y {
		y[i] = complex(math.Sqrt(real(v)), 0)
	}
	return NoiseDensity{
		Source: "sum",
		Sink:   sink,
		Series: Series{X: s.Frequencies, Y: y},
	}
}

// DivideByMagnitude scales every Y value of s by 1/|divisor[i]|, used to
// input-refer a noise spectrum through a response magnitude.
func (s Series) DivideByMagnitude(divisor []float64) Series {
	y := make([]complex128, len(s.Y))
	for i, v := range s.Y {
		d := divisor[i]
		if d == 0 {
			y[i] = complex(math.Inf(1), 0)
			continue
		}
		y[i] = v / complex(d, 0)
	}
	return Series{X: s.X, Y: y}
}
