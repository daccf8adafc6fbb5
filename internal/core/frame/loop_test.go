package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/orbit/internal/core/camera"
	"github.com/zeusync/orbit/internal/core/clock"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/scene"
	"github.com/zeusync/orbit/internal/input"
)

func steppedClock(step time.Duration) *clock.Clock {
	t := time.Unix(0, 0)
	return clock.NewWithSource(func() time.Time {
		now := t
		t = t.Add(step)
		return now
	})
}

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.New(10, []scene.BodySpec{
		{Name: "sun", Scale: 0.1, Spin: 0.5},
		{Name: "earth", Translation: math3d.V3(-15, 0, 0), Scale: 0.03, Orbit: 1},
	})
	require.NoError(t, err)
	return s
}

func TestTickBuildsSnapshot(t *testing.T) {
	cam := camera.New(camera.WithPosition(math3d.V3(0, 0, 20)))
	in := input.NewState()
	l := New(cam, in,
		WithClock(steppedClock(16*time.Millisecond)),
		WithScene(testScene(t)),
		WithProjection(PerspectiveFunc(45, 0.1, 1000), 2),
	)

	snap, err := l.Tick()
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Frame)
	assert.Equal(t, 0.0, snap.DeltaTime)
	assert.Equal(t, math3d.V3(0, 0, 20), snap.CameraPosition)
	assert.Equal(t, math3d.Perspective(45, 2, 0.1, 1000), snap.Projection)
	assert.Equal(t, cam.ViewMatrix(), snap.View)
	assert.Equal(t, snap.View.Premultiply(snap.Projection), snap.ViewProjection)
	require.Len(t, snap.Bodies, 2)
	assert.Equal(t, "sun", snap.Bodies[0].Name)

	in.Set(input.Flags{MoveForward: true})
	snap, err = l.Tick()
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Frame)
	assert.InDelta(t, 0.016, snap.DeltaTime, 1e-9)
	assert.True(t, snap.Input.MoveForward)
	assert.True(t, snap.CameraPosition.ApproxEqual(math3d.V3(0, 0, 19), 1e-12))

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, snap.Frame, last.Frame)
}

func TestTickCarriesSkybox(t *testing.T) {
	faces := scene.Skybox(150)
	l := New(camera.New(), nil, WithSkybox(faces), WithClock(steppedClock(time.Millisecond)))

	snap, err := l.Tick()
	require.NoError(t, err)
	assert.Equal(t, faces, snap.Skybox)

	// snapshots own their copy
	snap.Skybox[0].World = math3d.Identity()
	next, err := l.Tick()
	require.NoError(t, err)
	assert.Equal(t, faces[0], next.Skybox[0])

	bare, err := New(camera.New(), nil).Tick()
	require.NoError(t, err)
	assert.Empty(t, bare.Skybox)
}

func TestTickAdvancesSceneBeforeSnapshot(t *testing.T) {
	s := testScene(t)
	l := New(camera.New(), nil, WithScene(s), WithClock(steppedClock(time.Millisecond)))

	snap, err := l.Tick()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.Ticks())

	earth, _ := s.Body("earth")
	assert.Equal(t, earth.World, snap.Bodies[1].World)
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	var order []string
	record := func(name string, p Priority) System {
		return SystemFunc(name, p, func(float64, *Snapshot) error {
			order = append(order, name)
			return nil
		})
	}
	boom := errors.New("boom")
	l := New(camera.New(), nil,
		WithClock(steppedClock(time.Millisecond)),
		WithSystems(
			record("late", PriorityLast),
			record("early", PriorityFirst),
			SystemFunc("broken", PriorityNormal, func(float64, *Snapshot) error { return boom }),
			record("normal", PriorityNormal),
		),
	)

	snap, err := l.Tick()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "system broken")
	assert.Equal(t, int64(1), snap.Frame)
	assert.Equal(t, []string{"early", "normal", "late"}, order)
}

func TestSystemCanAmendSnapshot(t *testing.T) {
	l := New(camera.New(), nil,
		WithClock(steppedClock(time.Millisecond)),
		WithSystems(SystemFunc("ortho", PriorityNormal, func(_ float64, s *Snapshot) error {
			s.Projection = math3d.Orthographic(-1, 1, 1, -1, 0.1, 10)
			return nil
		})),
	)
	snap, err := l.Tick()
	require.NoError(t, err)
	assert.Equal(t, math3d.Orthographic(-1, 1, 1, -1, 0.1, 10), snap.ViewProjection)
}

func TestSetAspect(t *testing.T) {
	l := New(camera.New(), nil, WithClock(steppedClock(time.Millisecond)))
	l.SetAspect(1)
	l.SetAspect(-3)
	snap, err := l.Tick()
	require.NoError(t, err)
	assert.Equal(t, math3d.Perspective(45, 1, 0.1, 1000), snap.Projection)
}

func TestPick(t *testing.T) {
	l := New(camera.New(camera.WithPosition(math3d.V3(0, 0, 20))), nil,
		WithClock(steppedClock(time.Millisecond)),
		WithScene(testScene(t)),
	)

	_, _, _, err := l.Pick(0, 0)
	assert.ErrorIs(t, err, ErrNoFrame)

	_, err = l.Tick()
	require.NoError(t, err)

	b, hit, ok, err := l.Pick(0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sun", b.Name())
	assert.True(t, hit.Point.ApproxEqual(math3d.V3(0, 0, 1), 1e-6))

	_, _, ok, err = l.Pick(0.99, 0.99)
	require.NoError(t, err)
	assert.False(t, ok)

	noScene := New(camera.New(), nil)
	_, _, _, err = noScene.Pick(0, 0)
	assert.ErrorIs(t, err, ErrNoScene)
}

func TestCloseStopsTicks(t *testing.T) {
	l := New(camera.New(), nil)
	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.Close(), ErrClosed)

	_, err := l.Tick()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRunUntilCancelled(t *testing.T) {
	l := New(camera.New(), input.Static{YawLeft: true})
	ctx, cancel := context.WithCancel(context.Background())

	frames := make(chan Snapshot, 64)
	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx, time.Millisecond, func(s Snapshot) {
			select {
			case frames <- s:
			default:
			}
		})
	}()

	first := <-frames
	assert.Equal(t, int64(1), first.Frame)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsOnClose(t *testing.T) {
	l := New(camera.New(), nil)
	require.NoError(t, l.Close())

	err := l.Run(context.Background(), time.Millisecond, nil)
	assert.NoError(t, err)
}
