package math3d

import "math"

// Epsilon is the tolerance used by the approximate comparisons in tests and
// by callers comparing composed transforms.
const Epsilon = 1e-5

// SingularEpsilon is the relative determinant below which Inverse treats a
// matrix as singular. The determinant is measured after scaling every row
// to a largest element of 1, so uniformly tiny or huge transforms still
// invert.
const SingularEpsilon = 1e-12

func Radians(deg float64) float64 { return deg * (math.Pi / 180) }
func Degrees(rad float64) float64 { return rad * (180 / math.Pi) }
