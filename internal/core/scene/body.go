package scene

import (
	"github.com/google/uuid"

	"github.com/zeusync/orbit/internal/core/math3d"
)

// BodySpec describes a body before the scene places it.
type BodySpec struct {
	Name        string
	Translation math3d.Vector3
	Scale       float64
	// Orbit is degrees per tick about the world Y axis.
	Orbit float64
	// Spin is degrees per tick about the body's own Y axis.
	Spin float64

	// Parent names a body this one follows. A parented body is rebuilt
	// from the parent's position every tick and ignores Translation and
	// Orbit.
	Parent string
	Offset math3d.Vector3
	Angle  float64
}

// Body is a placed sphere with its current world matrix.
type Body struct {
	ID   uuid.UUID
	Spec BodySpec
	// World maps the unit mesh into world space.
	World math3d.Matrix4
}

func (b Body) Name() string { return b.Spec.Name }

// Position is the translation column of the world matrix.
func (b Body) Position() math3d.Vector3 { return b.World.TranslationPart() }

func newBody(spec BodySpec) *Body {
	b := &Body{ID: uuid.New(), Spec: spec}
	if spec.Parent == "" {
		s := spec.Scale
		b.World = math3d.TRS(math3d.TranslationV3(spec.Translation), math3d.Identity(), math3d.Scaling(s, s, s))
	}
	return b
}

// advance applies one tick of orbit and spin to a root body.
func (b *Body) advance() {
	if b.Spec.Orbit != 0 {
		b.World = b.World.Premultiply(math3d.RotationY(b.Spec.Orbit))
	}
	if b.Spec.Spin != 0 {
		b.World = b.World.Multiply(math3d.RotationY(b.Spec.Spin))
	}
}

// follow places a child at parent position · offset · rotY(angle) · scale.
// Spin on a child turns Angle.
func (b *Body) follow(parent *Body) {
	b.Spec.Angle += b.Spec.Spin
	s := b.Spec.Scale
	local := math3d.TRS(
		math3d.TranslationV3(b.Spec.Offset),
		math3d.RotationY(b.Spec.Angle),
		math3d.Scaling(s, s, s),
	)
	b.World = local.Premultiply(math3d.TranslationV3(parent.Position()))
}
