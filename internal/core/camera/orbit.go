package camera

import (
	"math"

	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/input"
)

// OrbitCamera circles a target point. Yaw turns it around the target's
// vertical axis, moving forward or backward zooms in or out.
type OrbitCamera struct {
	Target    math3d.Vector3
	Yaw       float64
	Pitch     float64
	Radius    float64
	MinRadius float64
	MaxRadius float64

	// ZoomStep and YawStep follow Mode the same way as Camera's steps.
	ZoomStep float64
	YawStep  float64
	Mode     StepMode

	world  math3d.Matrix4
	opts   options
	logger log.Log
}

// NewOrbit returns an orbit camera looking at target from radius units
// away, along +Z before yaw and pitch. WithPosition is ignored.
func NewOrbit(target math3d.Vector3, radius float64, opts ...Option) *OrbitCamera {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &OrbitCamera{
		Target:    target,
		Yaw:       o.yaw,
		Pitch:     o.pitch,
		Radius:    math.Max(o.minR, math.Min(o.maxR, radius)),
		MinRadius: o.minR,
		MaxRadius: o.maxR,
		ZoomStep:  o.moveStep,
		YawStep:   o.yawStep,
		Mode:      o.mode,
		opts:      o,
		logger:    o.logger.With(log.String("component", "orbit_camera")),
	}
	c.rebuild()
	return c
}

func (c *OrbitCamera) Update(deltaTime float64, flags input.Flags) {
	zoom, turn := c.ZoomStep, c.YawStep
	if c.Mode == PerSecond {
		zoom *= deltaTime
		turn *= deltaTime
	}
	if flags.MoveForward {
		c.Radius -= zoom
	}
	if flags.MoveBackward {
		c.Radius += zoom
	}
	if flags.YawLeft {
		c.Yaw += turn
	}
	if flags.YawRight {
		c.Yaw -= turn
	}
	c.Radius = math.Max(c.MinRadius, math.Min(c.MaxRadius, c.Radius))

	c.rebuild()
	if flags.Any() {
		publish(c.opts.bus, c.logger, EventMoved, Moved{Position: c.Position(), Yaw: c.Yaw})
	}
}

func (c *OrbitCamera) WorldMatrix() math3d.Matrix4 { return c.world }
func (c *OrbitCamera) Position() math3d.Vector3    { return c.world.TranslationPart() }

func (c *OrbitCamera) ViewMatrix() math3d.Matrix4 {
	return viewOf(c.world, c.logger, c.opts.bus)
}

// rebuild composes translation(target) · rotY(yaw) · rotX(pitch) ·
// translation(0, 0, radius), building it inside out.
func (c *OrbitCamera) rebuild() {
	c.world = math3d.Translation(0, 0, c.Radius).
		Premultiply(math3d.RotationX(c.Pitch)).
		Premultiply(math3d.RotationY(c.Yaw)).
		Premultiply(math3d.TranslationV3(c.Target))
}
