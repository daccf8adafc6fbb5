package math3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func project(m Matrix4, p Vector3) Vector3 {
	c := m.MultiplyVector(p.Vec4(1))
	return c.Vec3().Scale(1 / c.W)
}

func TestPerspectiveMapsFrustumToClip(t *testing.T) {
	near, far := 0.1, 1000.0
	m := Perspective(90, 2, near, far)

	assert.InDelta(t, -1, project(m, V3(0, 0, -near)).Z, 1e-9)
	assert.InDelta(t, 1, project(m, V3(0, 0, -far)).Z, 1e-9)

	// fov 90 => the top plane is at y = -z
	assert.InDelta(t, 1, project(m, V3(0, 5, -5)).Y, 1e-9)
	// aspect 2 => the right plane is at x = -2z
	assert.InDelta(t, 1, project(m, V3(10, 0, -5)).X, 1e-9)

	assert.Equal(t, -1.0, m.At(3, 2))
	assert.Equal(t, 0.0, m.At(3, 3))
}

func TestOrthographic(t *testing.T) {
	m := Orthographic(-4, 4, 3, -3, 1, 11)

	assert.True(t, project(m, V3(4, 3, -1)).ApproxEqual(V3(1, 1, -1), 1e-12))
	assert.True(t, project(m, V3(-4, -3, -11)).ApproxEqual(V3(-1, -1, 1), 1e-12))
	assert.True(t, project(m, V3(0, 0, -6)).ApproxEqual(V3(0, 0, 0), 1e-12))
}

func TestUploadLayouts(t *testing.T) {
	m := TRS(Translation(1, 2, 3), RotationX(20), Scaling(1, 2, 3))

	row := m.RowMajor32()
	col := m.ColumnMajor32()
	assert.Equal(t, m.Transpose().RowMajor32(), col)
	assert.Equal(t, float32(1), row[3])
	// translation ends up in the last four floats for column-major consumers
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{col[12], col[13], col[14]})

	assert.True(t, FromColumnMajor32(col).ApproxEqual(m, 1e-6))
	assert.Equal(t, Translation(1, 2, 3), FromColumnMajor32(Translation(1, 2, 3).ColumnMajor32()))
}

func TestFingerprint(t *testing.T) {
	a := RotationY(12.5)
	b := RotationY(12.5)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), RotationY(12.75).Fingerprint())
	assert.NotEqual(t, Identity().Fingerprint(), Identity().Transpose().Set(0, 3, 1).Fingerprint())
}
