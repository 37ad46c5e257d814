package component

import (
	"fmt"
	"math"

	"github.com/acirc/acsolver/pkg/matrix"
)

// Resistor is a two-terminal real-valued impedance with Johnson noise.
type Resistor struct {
	base
	R float64 // ohms
}

// NewResistor builds a resistor. R must be strictly positive.
func NewResistor(name, n1, n2 string, r float64) (*Resistor, error) {
	if r <= 0 {
		return nil, fmt.Errorf("%w: resistor %s: resistance must be positive, got %g", ErrInvalidParameter, name, r)
	}
	return &Resistor{base: newBase(name, []string{n1, n2}), R: r}, nil
}

func (r *Resistor) Kind() Kind { return KindResistor }

func (r *Resistor) Impedance(float64) complex128 { return complex(r.R, 0) }

func (r *Resistor) Stamp(row int, _ float64, mat matrix.Stamp) error {
	n := r.Nodes()
	stampSeriesImpedance(row, n[0], n[1], complex(r.R, 0), 0, mat)
	return nil
}

// JohnsonNoise returns the resistor's thermal-noise spectral density
// (V/sqrt(Hz)) given Boltzmann's constant and the circuit temperature.
func JohnsonNoise(kB, temp, r float64) float64 {
	return math.Sqrt(4 * kB * temp * r)
}

// NoiseSources returns the resistor's single Johnson-noise source, anchored
// at its own branch row (a series voltage noise source).
func (r *Resistor) NoiseSources(kB, temp float64) []NoiseSource {
	density := JohnsonNoise(kB, temp, r.R)
	return []NoiseSource{{
		Label:  r.name + ".johnson",
		Anchor: NoiseAtSelf,
		Density: func(float64) float64 {
			return density
		},
	}}
}

// Capacitor is a two-terminal reactive impedance with no intrinsic noise.
type Capacitor struct {
	base
	C float64 // farads
}

// NewCapacitor builds a capacitor. C must be strictly positive.
func NewCapacitor(name, n1, n2 string, c float64) (*Capacitor, error) {
	if c <= 0 {
		return nil, fmt.Errorf("%w: capacitor %s: capacitance must be positive, got %g", ErrInvalidParameter, name, c)
	}
	return &Capacitor{base: newBase(name, []string{n1, n2}), C: c}, nil
}

func (c *Capacitor) Kind() Kind { return KindCapacitor }

func (c *Capacitor) Impedance(freq float64) complex128 {
	return complex(0, -1/(2*math.Pi*freq*c.C))
}

func (c *Capacitor) Stamp(row int, freq float64, mat matrix.Stamp) error {
	n := c.Nodes()
	stampSeriesImpedance(row, n[0], n[1], c.Impedance(freq), 0, mat)
	return nil
}

func (c *Capacitor) NoiseSources(float64, float64) []NoiseSource { return nil }

// Inductor is a two-terminal reactive impedance with no intrinsic noise.
type Inductor struct {
	base
	L float64 // henries
}

// NewInductor builds an inductor. L must be strictly positive.
func NewInductor(name, n1, n2 string, l float64) (*Inductor, error) {
	if l <= 0 {
		return nil, fmt.Errorf("%w: inductor %s: inductance must be positive, got %g", ErrInvalidParameter, name, l)
	}
	return &Inductor{base: newBase(name, []string{n1, n2}), L: l}, nil
}

func (l *Inductor) Kind() Kind { return KindInductor }

func (l *Inductor) Impedance(freq float64) complex128 {
	return complex(0, 2*math.Pi*freq*l.L)
}

func (l *Inductor) Stamp(row int, freq float64, mat matrix.Stamp) error {
	n := l.Nodes()
	stampSeriesImpedance(row, n[0], n[1], l.Impedance(freq), 0, mat)
	return nil
}

func (l *Inductor) NoiseSources(float64, float64) []NoiseSource { return nil }
