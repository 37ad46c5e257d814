// Package component implements the passive, op-amp, and input element
// models of the AC solver: their impedance/gain functions, their MNA row
// contributions, and their intrinsic noise sources.
//
// toy-spice models devices as a flat interface with a BaseDevice struct
// embedded by every concrete type. This package follows the same shape,
// collapsed one level further: there is no PassiveComponent/Resistor
// inheritance chain, just a tagged Kind and one struct per variant
// implementing the shared Component interface.
package component

import (
	"fmt"

	"github.com/acirc/acsolver/pkg/matrix"
)

// Kind tags which variant a Component is.
type Kind int

const (
	KindResistor Kind = iota
	KindCapacitor
	KindInductor
	KindOpAmp
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindResistor:
		return "R"
	case KindCapacitor:
		return "C"
	case KindInductor:
		return "L"
	case KindOpAmp:
		return "U"
	case KindInput:
		return "IN"
	default:
		return "?"
	}
}

// NoiseAnchor identifies where, in the assembled matrix, a NoiseSource's
// contribution enters: either the owning component's own branch-current
// row, or one of its incident nodes' voltage rows.
type NoiseAnchor int

const (
	// NoiseAtSelf anchors the source at the component's own branch row
	// (the right shape for a series voltage noise source, e.g. Johnson
	// noise or op-amp input voltage noise).
	NoiseAtSelf NoiseAnchor = iota
	// NoiseAtNode1 anchors the source at the component's first node (a
	// current noise source injected at that node).
	NoiseAtNode1
	// NoiseAtNode2 anchors the source at the component's second node.
	NoiseAtNode2
)

// NoiseSource is one intrinsic noise generator belonging to a component.
// Density returns the spectral density (V/sqrt(Hz) or A/sqrt(Hz),
// depending on Anchor) at the given frequency; it is always non-negative.
type NoiseSource struct {
	Label   string
	Anchor  NoiseAnchor
	Density func(freq float64) float64
}

// Component is the shared capability set every circuit element implements:
// its incident nodes, its MNA row contribution, and its noise sources.
type Component interface {
	// Name is the component's name, unique within its circuit.
	Name() string
	// Kind reports which variant this is.
	Kind() Kind
	// NodeNames returns the node names this component was built with, in
	// declaration order.
	NodeNames() []string
	// Nodes returns the resolved node matrix indices (0 = ground), in the
	// same order as NodeNames. Valid only after the owning circuit calls
	// SetNodes.
	Nodes() []int
	// SetNodes is called once by the circuit at freeze time to bind this
	// component's node names to matrix row/column indices.
	SetNodes(nodes []int)
	// NoiseSources returns this component's intrinsic noise generators, if
	// any. kB and temp are the circuit's configured Boltzmann constant and
	// temperature, needed by Johnson-noise sources; components whose noise
	// does not depend on temperature (or which have none) ignore them.
	NoiseSources(kB, temp float64) []NoiseSource
	// Stamp contributes this component's coefficients (and, for the input
	// component, its excitation) to the assembled matrix at frequency f.
	// row is this component's own branch-current matrix index, assigned by
	// the circuit in insertion order.
	Stamp(row int, freq float64, mat matrix.Stamp) error
}

// base holds the fields every variant needs: name, declared node names, and
// resolved node indices.
type base struct {
	name      string
	nodeNames []string
	nodes     []int
}

func newBase(name string, nodeNames []string) base {
	return base{name: name, nodeNames: nodeNames, nodes: make([]int, len(nodeNames))}
}

func (b *base) Name() string          { return b.name }
func (b *base) NodeNames() []string   { return b.nodeNames }
func (b *base) Nodes() []int          { return b.nodes }
func (b *base) SetNodes(nodes []int) {
	if len(nodes) != len(b.nodeNames) {
		panic(fmt.Sprintf("component %s: expected %d node(s), got %d", b.name, len(b.nodeNames), len(nodes)))
	}
	b.nodes = nodes
}

// stampSeriesImpedance writes the standard two-terminal branch-current row
// used by every passive:
//
//	Z(f)*I_k - V_n1 + V_n2 = rhs
//
// together with the node KCL contributions (node1 is the current sink,
// node2 the current source).
func stampSeriesImpedance(row, n1, n2 int, z complex128, rhs complex128, mat matrix.Stamp) {
	mat.Add(row, row, real(z), imag(z))
	if n1 != 0 {
		mat.Add(row, n1, -1, 0)
		mat.Add(n1, row, -1, 0)
	}
	if n2 != 0 {
		mat.Add(row, n2, 1, 0)
		mat.Add(n2, row, 1, 0)
	}
	if rhs != 0 {
		mat.AddRHS(row, real(rhs), imag(rhs))
	}
}
