package circuit

import "errors"

var (
	// ErrDuplicateName is returned when a component name collides with one
	// already present in the circuit. Node names are shared by design and
	// are not checked.
	ErrDuplicateName = errors.New("circuit: duplicate name")
	// ErrUnknownElement is returned when a sink, source, or noise-sink name
	// does not resolve to any node or component in the circuit.
	ErrUnknownElement = errors.New("circuit: unknown element")
	// ErrNoInput is returned by Freeze when no input has been set.
	ErrNoInput = errors.New("circuit: no input configured")
	// ErrAlreadyFrozen is returned by builder methods called after Freeze.
	ErrAlreadyFrozen = errors.New("circuit: builder already frozen")
)
