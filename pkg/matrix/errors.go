package matrix

import "errors"

// ErrSingular is returned when factorisation fails at a given frequency
// point; callers wrap it with the offending frequency.
var ErrSingular = errors.New("matrix: singular system")
