package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/orbit/internal/core/events/bus"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/input"
)

func TestNewCamera(t *testing.T) {
	c := New()
	assert.Equal(t, math3d.Identity(), c.WorldMatrix())
	assert.Equal(t, math3d.Identity(), c.ViewMatrix())
	assert.Equal(t, math3d.V3(0, 0, -1), c.Forward())
}

func TestYawLeftIndependentOfDeltaTime(t *testing.T) {
	c := New()
	deltas := []float64{0.016, 0.5, 0, 3, 0.001}
	const n = 40
	for i := 0; i < n; i++ {
		c.Update(deltas[i%len(deltas)], input.Flags{YawLeft: true})
	}
	assert.InDelta(t, 0.25*n, c.Yaw(), 1e-9)
	assert.Equal(t, math3d.Zero3, c.Position())
}

func TestYawRight(t *testing.T) {
	c := New()
	for i := 0; i < 8; i++ {
		c.Update(1, input.Flags{YawRight: true})
	}
	assert.InDelta(t, -2, c.Yaw(), 1e-12)

	// both held cancel out
	c.Update(1, input.Flags{YawLeft: true, YawRight: true})
	assert.InDelta(t, -2, c.Yaw(), 1e-12)
}

func TestMoveForwardAndBack(t *testing.T) {
	c := New()
	c.Update(0.016, input.Flags{MoveForward: true})
	assert.True(t, c.Position().ApproxEqual(math3d.V3(0, 0, -1), 1e-12), "%v", c.Position())

	c.Update(0.016, input.Flags{MoveForward: true})
	c.Update(0.016, input.Flags{MoveBackward: true})
	assert.True(t, c.Position().ApproxEqual(math3d.V3(0, 0, -1), 1e-12), "%v", c.Position())
}

func TestForwardFollowsYaw(t *testing.T) {
	c := New(WithYaw(90))
	assert.True(t, c.Forward().ApproxEqual(math3d.V3(-1, 0, 0), 1e-12), "%v", c.Forward())

	c.SetYaw(180)
	assert.True(t, c.Forward().ApproxEqual(math3d.V3(0, 0, 1), 1e-12), "%v", c.Forward())

	c.SetYaw(-90)
	c.Update(0, input.Flags{MoveForward: true})
	assert.True(t, c.Position().ApproxEqual(math3d.V3(1, 0, 0), 1e-12), "%v", c.Position())
	assert.InDelta(t, 1, c.Forward().Length(), 1e-12)
}

func TestWorldIsTranslateThenRotate(t *testing.T) {
	c := New(WithPosition(math3d.V3(1, 2, 3)), WithYaw(30))
	want := math3d.TranslationV3(math3d.V3(1, 2, 3)).Multiply(math3d.RotationY(30))
	assert.Equal(t, want, c.WorldMatrix())
	assert.Equal(t, math3d.V3(1, 2, 3), c.WorldMatrix().TranslationPart())
}

func TestViewMatrixIsInverseOfWorld(t *testing.T) {
	c := New(WithPosition(math3d.V3(4, 0, -2)), WithYaw(-63))
	c.Update(0.1, input.Flags{MoveForward: true, YawLeft: true})

	assert.True(t, c.WorldMatrix().Multiply(c.ViewMatrix()).ApproxEqual(math3d.Identity(), math3d.Epsilon))

	// the camera position maps to the view-space origin
	p := c.ViewMatrix().TransformPoint(c.Position())
	assert.True(t, p.ApproxEqual(math3d.Zero3, 1e-9), "%v", p)

	// a point straight ahead lands on the view-space -Z axis
	ahead := c.Position().Add(c.Forward().Scale(5))
	p = c.ViewMatrix().TransformPoint(ahead)
	assert.True(t, p.ApproxEqual(math3d.V3(0, 0, -5), 1e-9), "%v", p)
}

func TestPerSecondMode(t *testing.T) {
	c := New(WithSteps(PerSecond, 2, 90))
	c.Update(0.5, input.Flags{MoveForward: true, YawLeft: true})
	assert.InDelta(t, 45, c.Yaw(), 1e-12)
	assert.True(t, c.Position().ApproxEqual(math3d.V3(0, 0, -1), 1e-12), "%v", c.Position())

	c.Update(0, input.Flags{YawLeft: true})
	assert.InDelta(t, 45, c.Yaw(), 1e-12)
}

func TestParseStepMode(t *testing.T) {
	assert.Equal(t, PerSecond, ParseStepMode("per_second"))
	assert.Equal(t, PerTick, ParseStepMode("per_tick"))
	assert.Equal(t, PerTick, ParseStepMode(""))
}

func TestMovedEvents(t *testing.T) {
	b := bus.New()
	var moves []Moved
	_, err := b.Subscribe(EventMoved, func(e bus.Event) error {
		moves = append(moves, e.Data().(Moved))
		return nil
	})
	require.NoError(t, err)

	c := New(WithBus(b))
	c.Update(0.016, input.Flags{})
	c.Update(0.016, input.Flags{YawLeft: true})

	require.Len(t, moves, 1)
	assert.Equal(t, 0.25, moves[0].Yaw)
}

func TestForwardFallbackLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(WithLogger(log.FromZap(zap.New(core), log.LevelDebug)))
	c.world = math3d.Scaling(1, 1, 0)

	assert.Equal(t, math3d.V3(0, 0, -1), c.Forward())
	assert.Equal(t, 1, logs.FilterMessage("degenerate camera axis, using default forward").Len())
}

func TestSingularViewFallsBackToIdentity(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := bus.New()
	singular := 0
	_, _ = b.Subscribe(EventSingularView, func(bus.Event) error { singular++; return nil })

	c := New(WithLogger(log.FromZap(zap.New(core), log.LevelDebug)), WithBus(b))
	c.world = math3d.Matrix4{}

	assert.Equal(t, math3d.Identity(), c.ViewMatrix())
	assert.Equal(t, 1, logs.FilterMessage("camera world matrix not invertible").Len())
	assert.Equal(t, 1, singular)
}
