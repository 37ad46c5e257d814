package circuit

import (
	"github.com/acirc/acsolver/pkg/matrix"
)

// Assemble builds the complex MNA matrix A(f) and excitation b(f) at
// frequency f, stamping every component in insertion order. Response
// analysis solves this system directly.
func (c *Circuit) Assemble(f float64) (*matrix.CircuitMatrix, error) {
	mat, err := matrix.NewCircuitMatrix(c.Dimension())
	if err != nil {
		return nil, err
	}
	for i, comp := range c.components {
		if err := comp.Stamp(i+1, f, mat); err != nil {
			return nil, err
		}
	}
	return mat, nil
}

// AssembleTransposed builds Aᵀ(f), the matrix noise analysis solves
// against a unit excitation at the sink row. Component RHS contributions
// are not part of this system; the only right-hand-side entry is the unit
// excitation this method places at the sink's row.
func (c *Circuit) AssembleTransposed(f float64, sink Sink) (*matrix.CircuitMatrix, error) {
	mat, err := matrix.NewCircuitMatrix(c.Dimension())
	if err != nil {
		return nil, err
	}
	transposed := mat.Transposed()
	for i, comp := range c.components {
		if err := comp.Stamp(i+1, f, transposed); err != nil {
			return nil, err
		}
	}
	mat.AddRHS(sink.Index, 1, 0)
	return mat, nil
}
