package math3d

import "errors"

// Degenerate-input outcomes. Operations that report one of these still
// return a usable fallback value alongside it.
var (
	ErrZeroLength     = errors.New("zero-length vector cannot be normalized")
	ErrSingularMatrix = errors.New("matrix is singular, identity substituted")
)
