package component

import (
	"fmt"

	"github.com/acirc/acsolver/pkg/matrix"
)

// InputKind distinguishes a voltage-type from a current-type excitation.
type InputKind int

const (
	// InputVoltage is an ideal source: it imposes V_n1 - V_n2 = 1 on the
	// nodes it's attached to, regardless of what loads them.
	InputVoltage InputKind = iota
	// InputCurrent is a Norton source: an excitation current, optionally
	// shunted by a finite source impedance.
	InputCurrent
)

// Input is the synthetic excitation component every response or noise
// analysis drives the circuit with. It is not part of the netlist proper -
// the circuit builder installs exactly one - but it implements Component
// like any other element so the assembler can treat it uniformly.
type Input struct {
	base
	InputKind InputKind
	// Impedance is the current-type source's parallel (shunt) impedance, in
	// ohms. Zero means ideal: no shunt for a current source. It has no
	// effect for a voltage-type input - see Stamp - and is carried there
	// only for constructor symmetry with NewCurrentInput.
	Impedance complex128
}

// NewVoltageInput builds an ideal voltage source between n1 (+) and n2 (-).
// impedance is accepted for API symmetry with NewCurrentInput but has no
// effect: a voltage-type Input always imposes its excitation directly on
// n1/n2, never loaded by a series impedance. See Stamp.
func NewVoltageInput(name, n1, n2 string, impedance complex128) (*Input, error) {
	return &Input{base: newBase(name, []string{n1, n2}), InputKind: InputVoltage, Impedance: impedance}, nil
}

// NewCurrentInput builds a Norton current source injecting from n1 to n2,
// with the given shunt impedance (zero for an ideal source).
func NewCurrentInput(name, n1, n2 string, impedance complex128) (*Input, error) {
	return &Input{base: newBase(name, []string{n1, n2}), InputKind: InputCurrent, Impedance: impedance}, nil
}

func (in *Input) Kind() Kind { return KindInput }

// Stamp contributes the excitation's own branch row and, for a current
// input with a finite shunt impedance, the corresponding node stamps. The
// excitation value itself (the "1" on the right-hand side) is a
// normalised unit source - a response analysis always drives the input
// with unit amplitude, so the solved values are the transfer functions
// themselves - and Stamp never looks at a signal magnitude parameter.
func (in *Input) Stamp(row int, _ float64, mat matrix.Stamp) error {
	n := in.Nodes()
	n1, n2 := n[0], n[1]

	switch in.InputKind {
	case InputVoltage:
		// Ideal source: V_n1 - V_n2 = 1, with no Z*I_k term at all - a
		// voltage-type input imposes its excitation directly and is never
		// loaded by a series impedance (that's what InputCurrent's shunt
		// impedance is for). The branch current I_k is otherwise free; it's
		// pinned only by the node KCL rows below, same sink/source polarity
		// every other component uses.
		if n1 != 0 {
			mat.Add(row, n1, 1, 0)
			mat.Add(n1, row, -1, 0)
		}
		if n2 != 0 {
			mat.Add(row, n2, -1, 0)
			mat.Add(n2, row, 1, 0)
		}
		mat.AddRHS(row, 1, 0)

	case InputCurrent:
		// The branch variable I_k is forced directly to the unit excitation:
		// I_k = 1. The node KCL rows still need +-1 * I_k, same polarity
		// convention as the series form.
		mat.Add(row, row, 1, 0)
		mat.AddRHS(row, 1, 0)
		if n1 != 0 {
			mat.Add(n1, row, -1, 0)
		}
		if n2 != 0 {
			mat.Add(n2, row, 1, 0)
		}
		// An optional finite shunt impedance gives the source a Norton
		// admittance in parallel with the nodes.
		if in.Impedance != 0 {
			y := complex(1, 0) / in.Impedance
			if n1 != 0 {
				mat.Add(n1, n1, real(y), imag(y))
			}
			if n2 != 0 {
				mat.Add(n2, n2, real(y), imag(y))
			}
			if n1 != 0 && n2 != 0 {
				mat.Add(n1, n2, -real(y), -imag(y))
				mat.Add(n2, n1, -real(y), -imag(y))
			}
		}

	default:
		return fmt.Errorf("%w: input %s: unknown input kind %d", ErrInvalidParameter, in.name, in.InputKind)
	}

	return nil
}

func (in *Input) NoiseSources(float64, float64) []NoiseSource { return nil }
