package component

import "errors"

// ErrInvalidParameter is returned when a component is constructed with a
// non-positive R/C/L, malformed op-amp parameters, or an unknown input
// type.
var ErrInvalidParameter = errors.New("component: invalid parameter")
