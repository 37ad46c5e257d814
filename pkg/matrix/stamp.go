// Package matrix assembles and solves the per-frequency complex MNA matrix,
// built on top of github.com/edp1096/sparse (the same sparse-matrix package
// toy-spice uses for its real-valued transient/OP solves).
package matrix

// Stamp is the narrow write interface a component uses to contribute
// coefficients and excitation to the assembled matrix for one frequency
// point. Row/column 0 denotes ground and is silently dropped by
// implementations, mirroring toy-spice's device.Matrix contract
// (pkg/matrix/device.go) generalised to complex values.
type Stamp interface {
	// Add adds (re + i*im) to the element at (row, col), 1-based.
	Add(row, col int, re, im float64)
	// AddRHS adds (re + i*im) to the right-hand-side entry at row, 1-based.
	AddRHS(row int, re, im float64)
}
