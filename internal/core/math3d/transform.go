package math3d

import "math"

// Every builder in this file returns a fresh transform; none of them
// composes with an existing matrix.

func Scaling(x, y, z float64) Matrix4 {
	return Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotationX is a right-handed counter-clockwise rotation about +X.
func RotationX(degrees float64) Matrix4 {
	s, c := math.Sincos(Radians(degrees))
	return Matrix4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY is a right-handed counter-clockwise rotation about +Y.
func RotationY(degrees float64) Matrix4 {
	s, c := math.Sincos(Radians(degrees))
	return Matrix4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ is a right-handed counter-clockwise rotation about +Z.
func RotationZ(degrees float64) Matrix4 {
	s, c := math.Sincos(Radians(degrees))
	return Matrix4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translation(x, y, z float64) Matrix4 {
	return Matrix4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

func TranslationV3(v Vector3) Matrix4 { return Translation(v.X, v.Y, v.Z) }

// TranslationV4 is TranslationV3 that also writes v.W into element (3, 3).
func TranslationV4(v Vector4) Matrix4 {
	m := Translation(v.X, v.Y, v.Z)
	m[15] = v.W
	return m
}

// TRS composes translation · rotation · scale. Applied to a point, the
// scale happens first, then the rotation, then the translation.
func TRS(translation, rotation, scale Matrix4) Matrix4 {
	return translation.Multiply(rotation).Multiply(scale)
}
