package math3d

import "math"

// Determinant expands along the first row.
func (m Matrix4) Determinant() float64 {
	return m[0]*m.minor(0, 0) - m[1]*m.minor(0, 1) + m[2]*m.minor(0, 2) - m[3]*m.minor(0, 3)
}

// minor is the determinant of the 3x3 matrix left after removing row r and
// column c.
func (m Matrix4) minor(r, c int) float64 {
	var sub [9]float64
	k := 0
	for row := 0; row < 4; row++ {
		if row == r {
			continue
		}
		for col := 0; col < 4; col++ {
			if col == c {
				continue
			}
			sub[k] = m[row*4+col]
			k++
		}
	}
	return sub[0]*(sub[4]*sub[8]-sub[5]*sub[7]) -
		sub[1]*(sub[3]*sub[8]-sub[5]*sub[6]) +
		sub[2]*(sub[3]*sub[7]-sub[4]*sub[6])
}

// singular reports whether det, the determinant of m, is negligible
// relative to the magnitude of m's rows.
func (m Matrix4) singular(det float64) bool {
	if det == 0 || !isFinite(det) {
		return true
	}
	scale := 1.0
	for r := 0; r < 4; r++ {
		rowMax := 0.0
		for c := 0; c < 4; c++ {
			rowMax = math.Max(rowMax, math.Abs(m[r*4+c]))
		}
		if rowMax == 0 {
			return true
		}
		scale *= rowMax
	}
	return math.Abs(det) < SingularEpsilon*scale
}

// Inverse returns the adjugate of m divided by its determinant.
//
// A singular matrix (see SingularEpsilon) yields the identity together
// with ErrSingularMatrix. The identity is safe to keep using for a frame, so
// callers inside a render loop may log the error and carry on.
func (m Matrix4) Inverse() (Matrix4, error) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	// 2x2 minors of the top two rows
	s0 := a00*a11 - a10*a01
	s1 := a00*a12 - a10*a02
	s2 := a00*a13 - a10*a03
	s3 := a01*a12 - a11*a02
	s4 := a01*a13 - a11*a03
	s5 := a02*a13 - a12*a03

	// 2x2 minors of the bottom two rows
	c5 := a22*a33 - a32*a23
	c4 := a21*a33 - a31*a23
	c3 := a21*a32 - a31*a22
	c2 := a20*a33 - a30*a23
	c1 := a20*a32 - a30*a22
	c0 := a20*a31 - a30*a21

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if m.singular(det) {
		return Identity(), ErrSingularMatrix
	}
	inv := 1 / det

	return Matrix4{
		(a11*c5 - a12*c4 + a13*c3) * inv,
		(-a01*c5 + a02*c4 - a03*c3) * inv,
		(a31*s5 - a32*s4 + a33*s3) * inv,
		(-a21*s5 + a22*s4 - a23*s3) * inv,

		(-a10*c5 + a12*c2 - a13*c1) * inv,
		(a00*c5 - a02*c2 + a03*c1) * inv,
		(-a30*s5 + a32*s2 - a33*s1) * inv,
		(a20*s5 - a22*s2 + a23*s1) * inv,

		(a10*c4 - a11*c2 + a13*c0) * inv,
		(-a00*c4 + a01*c2 - a03*c0) * inv,
		(a30*s4 - a31*s2 + a33*s0) * inv,
		(-a20*s4 + a21*s2 - a23*s0) * inv,

		(-a10*c3 + a11*c1 - a12*c0) * inv,
		(a00*c3 - a01*c1 + a02*c0) * inv,
		(-a30*s3 + a31*s1 - a32*s0) * inv,
		(a20*s3 - a21*s1 + a22*s0) * inv,
	}, nil
}
