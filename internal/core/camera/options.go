package camera

import (
	"math"

	"github.com/zeusync/orbit/internal/core/events/bus"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
)

// StepMode selects how movement and yaw steps relate to frame time.
type StepMode uint8

const (
	// PerTick applies a fixed step on every Update regardless of deltaTime.
	// The visible speed therefore depends on the frame rate.
	PerTick StepMode = iota
	// PerSecond treats the steps as rates and scales them by deltaTime.
	PerSecond
)

// ParseStepMode maps a config string to a StepMode. Anything but
// "per_second" is PerTick.
func ParseStepMode(s string) StepMode {
	if s == "per_second" {
		return PerSecond
	}
	return PerTick
}

const (
	DefaultMoveStep = 1.0
	DefaultYawStep  = 0.25
)

type options struct {
	mode     StepMode
	moveStep float64
	yawStep  float64
	position math3d.Vector3
	yaw      float64
	pitch    float64
	minR     float64
	maxR     float64
	logger   log.Log
	bus      bus.EventBus
}

func defaultOptions() options {
	return options{
		mode:     PerTick,
		moveStep: DefaultMoveStep,
		yawStep:  DefaultYawStep,
		maxR:     math.Inf(1),
		logger:   log.NewNop(),
	}
}

type Option func(*options)

// WithSteps sets the step mode, the translation step (units) and the yaw
// step (degrees).
func WithSteps(mode StepMode, moveStep, yawStep float64) Option {
	return func(o *options) {
		o.mode = mode
		o.moveStep = moveStep
		o.yawStep = yawStep
	}
}

func WithPosition(p math3d.Vector3) Option { return func(o *options) { o.position = p } }

func WithYaw(degrees float64) Option { return func(o *options) { o.yaw = degrees } }

// WithPitch tilts an orbit camera about its local X axis, in degrees.
func WithPitch(degrees float64) Option { return func(o *options) { o.pitch = degrees } }

// WithRadiusLimits clamps the zoom of an orbit camera. A non-positive max
// leaves it unbounded.
func WithRadiusLimits(minRadius, maxRadius float64) Option {
	return func(o *options) {
		o.minR = minRadius
		if maxRadius > 0 {
			o.maxR = maxRadius
		}
	}
}

func WithLogger(l log.Log) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBus makes the camera publish EventMoved and EventSingularView.
func WithBus(b bus.EventBus) Option { return func(o *options) { o.bus = b } }
