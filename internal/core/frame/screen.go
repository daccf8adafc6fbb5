package frame

import "sort"

// Circle is a body projected into window pixels.
type Circle struct {
	Name   string
	X, Y   float32
	Radius float32
	// Depth is the NDC z of the center, -1 at the near plane.
	Depth float64
}

// Project maps every body of snap into a width×height window. Bodies behind
// the camera or outside the clip depth range are left out. The result is
// sorted far to near so later circles draw on top.
func (snap Snapshot) Project(width, height int) []Circle {
	w, h := float64(width), float64(height)
	out := make([]Circle, 0, len(snap.Bodies))
	for _, b := range snap.Bodies {
		clip := snap.ViewProjection.MultiplyVector(b.World.TranslationPart().Vec4(1))
		if clip.W <= 0 {
			continue
		}
		ndc := clip.Vec3().Scale(1 / clip.W)
		if ndc.Z < -1 || ndc.Z > 1 {
			continue
		}
		// projected size of the radius along the vertical axis
		r := b.Radius * snap.Projection.At(1, 1) / clip.W * h / 2
		out = append(out, Circle{
			Name:   b.Name,
			X:      float32((ndc.X + 1) / 2 * w),
			Y:      float32((1 - ndc.Y) / 2 * h),
			Radius: float32(r),
			Depth:  ndc.Z,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

// ToNDC converts a window pixel position into normalized device coordinates.
func ToNDC(x, y, width, height int) (float64, float64) {
	return 2*float64(x)/float64(width) - 1, 1 - 2*float64(y)/float64(height)
}
