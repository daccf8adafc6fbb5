package math3d

import "math"

// Perspective builds a symmetric perspective projection mapping view space
// (camera looking down -Z) to clip space.
func Perspective(fovYDegrees, aspect, near, far float64) Matrix4 {
	f := 1 / math.Tan(Radians(fovYDegrees)/2)
	depth := far - near
	return Matrix4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -(far + near) / depth, -(2 * far * near) / depth,
		0, 0, -1, 0,
	}
}

func Orthographic(left, right, top, bottom, near, far float64) Matrix4 {
	w := right - left
	h := top - bottom
	d := far - near
	return Matrix4{
		2 / w, 0, 0, -(right + left) / w,
		0, 2 / h, 0, -(top + bottom) / h,
		0, 0, -2 / d, -(far + near) / d,
		0, 0, 0, 1,
	}
}
