package geometry

import (
	"math"

	"github.com/zeusync/orbit/internal/core/math3d"
)

// Sphere is an implicit sphere. A non-positive radius is not rejected; the
// intersection math simply reports what the numbers say.
type Sphere struct {
	Center math3d.Vector3
	Radius float64
}

func NewSphere(center math3d.Vector3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Hit is the outcome of a raycast. Point, Normal and Distance are only
// meaningful when Hit is true.
type Hit struct {
	Hit      bool
	Point    math3d.Vector3
	Normal   math3d.Vector3
	Distance float64
}

// Raycast intersects r with s and reports the nearest valid intersection.
//
// Only intersections in front of the ray origin count, and a ray whose
// origin is already inside the sphere reports no hit: when the nearer root
// is negative the farther positive root is ignored.
func (s Sphere) Raycast(r Ray) Hit {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return Hit{}
	}
	b := 2 * r.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c

	var alpha float64
	switch {
	case disc < 0:
		return Hit{}
	case disc == 0:
		alpha = -b / (2 * a)
	default:
		sq := math.Sqrt(disc)
		alpha = math.Min((-b+sq)/(2*a), (-b-sq)/(2*a))
	}
	if alpha < 0 {
		return Hit{}
	}

	point := r.At(alpha)
	return Hit{
		Hit:      true,
		Point:    point,
		Normal:   s.normalAt(point),
		Distance: alpha,
	}
}

// normalAt is the outward unit normal. A zero radius has no direction to
// offer, so the result is NaN there.
func (s Sphere) normalAt(p math3d.Vector3) math3d.Vector3 {
	return math3d.FromTo(s.Center, p).Normalize()
}

// Nearest raycasts every sphere and returns the index and hit of the closest
// one, or -1 and a miss.
func Nearest(r Ray, spheres ...Sphere) (int, Hit) {
	best := -1
	var bestHit Hit
	for i, s := range spheres {
		h := s.Raycast(r)
		if !h.Hit {
			continue
		}
		if best < 0 || h.Distance < bestHit.Distance {
			best, bestHit = i, h
		}
	}
	return best, bestHit
}
