package math3d

import (
	"fmt"
	"strings"
)

// Matrix4 is a row-major 4x4 matrix: element (row, col) is stored at
// index row*4+col.
//
// The zero value is the zero matrix, not identity. Use Identity or
// NewMatrix4 for a fresh transform. Like Vector3, Matrix4 is a value type
// and none of its methods modify the receiver.
type Matrix4 [16]float64

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewMatrix4 returns a freshly constructed matrix, which is the identity.
func NewMatrix4() Matrix4 { return Identity() }

// FromRows builds a matrix from its 16 elements given row by row.
func FromRows(
	n11, n12, n13, n14,
	n21, n22, n23, n24,
	n31, n32, n33, n34,
	n41, n42, n43, n44 float64,
) Matrix4 {
	return Matrix4{
		n11, n12, n13, n14,
		n21, n22, n23, n24,
		n31, n32, n33, n34,
		n41, n42, n43, n44,
	}
}

func (m Matrix4) At(row, col int) float64 { return m[row*4+col] }

// Set returns a copy of m with element (row, col) replaced.
func (m Matrix4) Set(row, col int, v float64) Matrix4 {
	m[row*4+col] = v
	return m
}

func (m Matrix4) Row(i int) Vector4 {
	return Vector4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

func (m Matrix4) Column(j int) Vector4 {
	return Vector4{m[j], m[4+j], m[8+j], m[12+j]}
}

// MultiplyVector applies m to v. The result is the linear combination of
// m's columns weighted by v's components.
func (m Matrix4) MultiplyVector(v Vector4) Vector4 {
	return m.Column(0).Scale(v.X).
		Add(m.Column(1).Scale(v.Y)).
		Add(m.Column(2).Scale(v.Z)).
		Add(m.Column(3).Scale(v.W))
}

// Multiply returns m · o. When the product is applied to a point, o's
// transform happens first and m's second, so a world matrix reads
// translation.Multiply(rotation).Multiply(scale).
func (m Matrix4) Multiply(o Matrix4) Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		c := m.MultiplyVector(o.Column(col))
		out[0*4+col] = c.X
		out[1*4+col] = c.Y
		out[2*4+col] = c.Z
		out[3*4+col] = c.W
	}
	return out
}

// Premultiply returns left · m: m's transform is applied first, then left's.
func (m Matrix4) Premultiply(left Matrix4) Matrix4 {
	return left.Multiply(m)
}

// ScaleScalar multiplies every element by s.
func (m Matrix4) ScaleScalar(s float64) Matrix4 {
	for i := range m {
		m[i] *= s
	}
	return m
}

func (m Matrix4) Transpose() Matrix4 {
	m[1], m[4] = m[4], m[1]
	m[2], m[8] = m[8], m[2]
	m[3], m[12] = m[12], m[3]
	m[6], m[9] = m[9], m[6]
	m[7], m[13] = m[13], m[7]
	m[11], m[14] = m[14], m[11]
	return m
}

// TransformPoint applies m to p with w = 1 and drops w. No perspective
// divide is performed.
func (m Matrix4) TransformPoint(p Vector3) Vector3 {
	return m.MultiplyVector(p.Vec4(1)).Vec3()
}

// TransformDirection applies m to d with w = 0, ignoring translation.
func (m Matrix4) TransformDirection(d Vector3) Vector3 {
	return m.MultiplyVector(d.Vec4(0)).Vec3()
}

// TranslationPart returns the translation column of m.
func (m Matrix4) TranslationPart() Vector3 {
	return Vector3{m[3], m[7], m[11]}
}

func (m Matrix4) ApproxEqual(o Matrix4, eps float64) bool {
	for i := range m {
		if !approx(m[i], o[i], eps) {
			return false
		}
	}
	return true
}

func (m Matrix4) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for row := 0; row < 4; row++ {
		fmt.Fprintf(&sb, "\n %g, %g, %g, %g", m[row*4], m[row*4+1], m[row*4+2], m[row*4+3])
	}
	sb.WriteString("\n]")
	return sb.String()
}
