package geometry

import "github.com/zeusync/orbit/internal/core/math3d"

// Ray is a half-line starting at Origin. Direction does not need to be unit
// length; distances reported along the ray are in multiples of it.
type Ray struct {
	Origin    math3d.Vector3
	Direction math3d.Vector3
}

func NewRay(origin, direction math3d.Vector3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point Origin + alpha*Direction.
func (r Ray) At(alpha float64) math3d.Vector3 {
	return r.Origin.Add(r.Direction.Scale(alpha))
}

// RayFromNDC unprojects a point in normalized device coordinates (x, y in
// [-1, 1]) through the inverse of projection·view. The ray starts on the
// near plane and points towards the far plane.
func RayFromNDC(viewProjection math3d.Matrix4, x, y float64) (Ray, error) {
	inv, err := viewProjection.Inverse()
	if err != nil {
		return Ray{}, err
	}
	near := inv.MultiplyVector(math3d.V4(x, y, -1, 1))
	far := inv.MultiplyVector(math3d.V4(x, y, 1, 1))
	origin := near.Vec3().Scale(1 / near.W)
	target := far.Vec3().Scale(1 / far.W)
	return Ray{Origin: origin, Direction: math3d.FromTo(origin, target)}, nil
}
