package math3d

import "math"

// Vector3 is a point or a free direction in 3D space.
//
// Vector3 is a value type: every operation returns a new vector and leaves
// the receiver untouched, so copying is plain assignment.
type Vector3 struct {
	X, Y, Z float64
}

// V3 builds a Vector3 from its components.
func V3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Zero3 is the origin.
var Zero3 = Vector3{}

func (v Vector3) Negate() Vector3         { return v.Scale(-1) }
func (v Vector3) Add(o Vector3) Vector3   { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3   { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Dot(o Vector3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector3) LengthSquared() float64  { return v.Dot(v) }
func (v Vector3) Length() float64         { return math.Sqrt(v.LengthSquared()) }
func (v Vector3) Vec4(w float64) Vector4  { return Vector4{v.X, v.Y, v.Z, w} }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize divides v by its length. A zero-length vector produces NaN
// components; use TryNormalize where that can happen.
func (v Vector3) Normalize() Vector3 {
	return v.Scale(1 / v.Length())
}

// TryNormalize is Normalize that also reports ErrZeroLength. The returned
// vector is the same (NaN) value Normalize would produce.
func (v Vector3) TryNormalize() (Vector3, error) {
	n := v.Normalize()
	if !n.IsFinite() {
		return n, ErrZeroLength
	}
	return n, nil
}

// Rescale keeps the direction of v and sets its length to newLength.
func (v Vector3) Rescale(newLength float64) Vector3 {
	return v.Normalize().Scale(newLength)
}

// FromTo returns the signed displacement from one point to another (to - from).
func FromTo(from, to Vector3) Vector3 {
	return to.Sub(from)
}

// AbsDiff returns the component-wise absolute difference of a and b.
// Unlike FromTo it carries no direction.
func AbsDiff(a, b Vector3) Vector3 {
	return Vector3{math.Abs(a.X - b.X), math.Abs(a.Y - b.Y), math.Abs(a.Z - b.Z)}
}

// Angle returns the angle between v1 and v2 in degrees. It is NaN when
// either vector has zero length.
func Angle(v1, v2 Vector3) float64 {
	cos := v1.Dot(v2) / (v1.Length() * v2.Length())
	// rounding can push cos just outside [-1, 1] for parallel vectors
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return Degrees(math.Acos(cos))
}

// Project returns the component of v along the direction of onto.
func Project(v, onto Vector3) Vector3 {
	dir := onto.Normalize()
	return dir.Scale(v.Dot(dir))
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// ApproxEqual compares component-wise within eps.
func (v Vector3) ApproxEqual(o Vector3, eps float64) bool {
	return approx(v.X, o.X, eps) && approx(v.Y, o.Y, eps) && approx(v.Z, o.Z, eps)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
