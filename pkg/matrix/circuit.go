package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// CircuitMatrix is a complex-valued square system built fresh for every
// frequency point. It generalises toy-spice's CircuitMatrix
// (pkg/matrix/circuit.go), which only ever ran in real-valued (DC/transient)
// or separately-tracked complex mode, to the always-complex case an AC
// solver needs, and drops the DC-only helpers (Gmin loading, ASCII system
// dump) that have no analogue here.
type CircuitMatrix struct {
	size int

	matrix  *sparse.Matrix
	config  *sparse.Configuration
	rhs     []float64
	rhsImag []float64

	solution     []float64
	solutionImag []float64
}

// NewCircuitMatrix allocates a size x size complex system.
func NewCircuitMatrix(size int) (*CircuitMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("matrix: create: %w", err)
	}

	vectorSize := size + 1 // 1-based indexing
	return &CircuitMatrix{
		size:         size,
		matrix:       mat,
		config:       config,
		rhs:          make([]float64, vectorSize),
		rhsImag:      make([]float64, vectorSize),
		solution:     make([]float64, vectorSize),
		solutionImag: make([]float64, vectorSize),
	}, nil
}

// Size reports the matrix dimension.
func (m *CircuitMatrix) Size() int { return m.size }

// Add implements matrix.Stamp: adds (re + i*im) to element (row, col).
// Row or col 0 (ground) is silently dropped.
func (m *CircuitMatrix) Add(row, col int, re, im float64) {
	if row <= 0 || col <= 0 || row > m.size || col > m.size {
		return
	}
	el := m.matrix.GetElement(int64(row), int64(col))
	el.Real += re
	el.Imag += im
}

// AddRHS implements matrix.Stamp: adds (re + i*im) to the right-hand-side
// entry at row. Row 0 (ground) is silently dropped.
func (m *CircuitMatrix) AddRHS(row int, re, im float64) {
	if row <= 0 || row > m.size {
		return
	}
	m.rhs[row] += re
	m.rhsImag[row] += im
}

// Solve factors the matrix and solves for the accumulated right-hand side.
func (m *CircuitMatrix) Solve() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}

	sol, solImag, err := m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	m.solution, m.solutionImag = sol, solImag
	return nil
}

// At returns the solved value at 1-based index i (0 for ground, which is
// always zero by construction).
func (m *CircuitMatrix) At(i int) complex128 {
	if i <= 0 || i > m.size {
		return 0
	}
	return complex(m.solution[i], m.solutionImag[i])
}

// Transposed returns a Stamp that writes into m with row and col swapped,
// and discards AddRHS calls. Noise analysis assembles the transposed
// system's coefficients through this view, then sets the sink unit vector
// directly with AddRHS on m itself - the transposed system's right-hand
// side has nothing to do with any component's own excitation.
func (m *CircuitMatrix) Transposed() Stamp {
	return transposeStamp{inner: m}
}

type transposeStamp struct {
	inner *CircuitMatrix
}

func (t transposeStamp) Add(row, col int, re, im float64) { t.inner.Add(col, row, re, im) }
func (t transposeStamp) AddRHS(int, float64, float64)      {}
