package math3d

// Vector4 is a homogeneous vector. It is the intermediate form of
// Matrix4.MultiplyVector and the explicit-w argument of TranslationV4.
type Vector4 struct {
	X, Y, Z, W float64
}

func V4(x, y, z, w float64) Vector4 { return Vector4{X: x, Y: y, Z: z, W: w} }

func (v Vector4) Add(o Vector4) Vector4   { return Vector4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vector4) Scale(s float64) Vector4 { return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s} }

// Vec3 drops the w component.
func (v Vector4) Vec3() Vector3 { return Vector3{v.X, v.Y, v.Z} }

func (v Vector4) ApproxEqual(o Vector4, eps float64) bool {
	return approx(v.X, o.X, eps) && approx(v.Y, o.Y, eps) && approx(v.Z, o.Z, eps) && approx(v.W, o.W, eps)
}
