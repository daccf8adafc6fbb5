// Package camera turns per-tick input flags into a camera world matrix and
// the view matrix derived from it.
package camera

import (
	"github.com/zeusync/orbit/internal/core/events/bus"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/input"
)

const (
	EventMoved        = "camera.moved"
	EventSingularView = "matrix.singular"

	eventSource = "camera"
)

// Moved is the payload of EventMoved.
type Moved struct {
	Position math3d.Vector3
	Yaw      float64
}

// Viewer is what the frame loop needs from a camera.
type Viewer interface {
	Update(deltaTime float64, flags input.Flags)
	ViewMatrix() math3d.Matrix4
	WorldMatrix() math3d.Matrix4
	Position() math3d.Vector3
}

var (
	_ Viewer = (*Camera)(nil)
	_ Viewer = (*OrbitCamera)(nil)
)

// fallbackForward is used when the world matrix has no usable Z axis.
var fallbackForward = math3d.V3(0, 0, -1)

// Camera is a free camera that walks along its forward direction and yaws
// about the world Y axis. Yaw is in degrees and is never wrapped.
type Camera struct {
	position math3d.Vector3
	yaw      float64
	world    math3d.Matrix4

	opts   options
	logger log.Log
}

func New(opts ...Option) *Camera {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Camera{
		position: o.position,
		yaw:      o.yaw,
		opts:     o,
		logger:   o.logger.With(log.String("component", "camera")),
	}
	c.rebuild()
	return c
}

func (c *Camera) Position() math3d.Vector3    { return c.position }
func (c *Camera) Yaw() float64                { return c.yaw }
func (c *Camera) WorldMatrix() math3d.Matrix4 { return c.world }

func (c *Camera) SetPosition(p math3d.Vector3) {
	c.position = p
	c.rebuild()
}

func (c *Camera) SetYaw(degrees float64) {
	c.yaw = degrees
	c.rebuild()
}

// Forward returns the unit direction the camera looks along: the negated
// local Z axis of the world matrix.
func (c *Camera) Forward() math3d.Vector3 {
	back := c.world.Column(2).Vec3()
	fwd, err := back.Negate().TryNormalize()
	if err != nil {
		c.logger.Warn("degenerate camera axis, using default forward", log.Matrix("world", c.world))
		return fallbackForward
	}
	return fwd
}

// ViewMatrix is the inverse of the world matrix.
func (c *Camera) ViewMatrix() math3d.Matrix4 {
	return viewOf(c.world, c.logger, c.opts.bus)
}

// Update applies one tick of input. With the default PerTick mode deltaTime
// does not influence the step sizes.
func (c *Camera) Update(deltaTime float64, flags input.Flags) {
	move, turn := c.opts.moveStep, c.opts.yawStep
	if c.opts.mode == PerSecond {
		move *= deltaTime
		turn *= deltaTime
	}

	forward := c.Forward()
	if flags.MoveForward {
		c.position = c.position.Add(forward.Scale(move))
	}
	if flags.MoveBackward {
		c.position = c.position.Sub(forward.Scale(move))
	}
	if flags.YawLeft {
		c.yaw += turn
	}
	if flags.YawRight {
		c.yaw -= turn
	}

	c.rebuild()
	if flags.Any() {
		publish(c.opts.bus, c.logger, EventMoved, Moved{Position: c.position, Yaw: c.yaw})
	}
}

// rebuild recomputes world = translation(position) · rotationY(yaw).
func (c *Camera) rebuild() {
	c.world = math3d.RotationY(c.yaw).Premultiply(math3d.TranslationV3(c.position))
}

func viewOf(world math3d.Matrix4, logger log.Log, b bus.EventBus) math3d.Matrix4 {
	view, err := world.Inverse()
	if err != nil {
		logger.Warn("camera world matrix not invertible", log.Matrix("world", world), log.Error(err))
		publish(b, logger, EventSingularView, world)
	}
	return view
}

func publish(b bus.EventBus, logger log.Log, typ string, data any) {
	if b == nil {
		return
	}
	if err := b.Publish(bus.NewEvent(typ, eventSource, data)); err != nil {
		logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}
