package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/orbit/internal/core/events/bus"
	"github.com/zeusync/orbit/internal/core/geometry"
	"github.com/zeusync/orbit/internal/core/math3d"
)

func solar(t *testing.T, opts ...Option) *Scene {
	t.Helper()
	s, err := New(10, []BodySpec{
		{Name: "sun", Scale: 0.1, Spin: 0.5},
		{Name: "moon", Parent: "earth", Offset: math3d.V3(0, 0, 3), Scale: 0.01, Angle: 60},
		{Name: "earth", Translation: math3d.V3(-15, 0, 0), Scale: 0.03, Orbit: 1, Spin: 1},
		{Name: "mars", Translation: math3d.V3(-20, 0, 0), Scale: 0.02, Orbit: 0.4},
	}, opts...)
	require.NoError(t, err)
	return s
}

func TestNewPlacesBodies(t *testing.T) {
	s := solar(t)

	earth, ok := s.Body("earth")
	require.True(t, ok)
	want := math3d.Translation(-15, 0, 0).Multiply(math3d.Scaling(0.03, 0.03, 0.03))
	assert.True(t, earth.World.ApproxEqual(want, 1e-12))

	moon, ok := s.Body("moon")
	require.True(t, ok)
	assert.True(t, moon.Position().ApproxEqual(math3d.V3(-15, 0, 3), 1e-12))
	assert.Equal(t, 60.0, moon.Spec.Angle)

	_, ok = s.Body("pluto")
	assert.False(t, ok)

	names := make([]string, 0, 4)
	for _, b := range s.Bodies() {
		names = append(names, b.Name())
	}
	assert.Equal(t, []string{"sun", "moon", "earth", "mars"}, names)
}

func TestAdvanceOrbitsAndSpins(t *testing.T) {
	s := solar(t)
	s.Advance()

	earth, _ := s.Body("earth")
	rad := math3d.Radians(1)
	assert.True(t, earth.Position().ApproxEqual(math3d.V3(-15*math.Cos(rad), 0, 15*math.Sin(rad)), 1e-12))

	want := math3d.Translation(-15, 0, 0).
		Multiply(math3d.Scaling(0.03, 0.03, 0.03)).
		Premultiply(math3d.RotationY(1)).
		Multiply(math3d.RotationY(1))
	assert.True(t, earth.World.ApproxEqual(want, 1e-12))

	sun, _ := s.Body("sun")
	assert.True(t, sun.Position().ApproxEqual(math3d.Zero3, 1e-12))
	assert.True(t, sun.World.ApproxEqual(math3d.Scaling(0.1, 0.1, 0.1).Multiply(math3d.RotationY(0.5)), 1e-12))

	for i := 1; i < 90; i++ {
		s.Advance()
	}
	assert.Equal(t, uint64(90), s.Ticks())

	earth, _ = s.Body("earth")
	assert.True(t, earth.Position().ApproxEqual(math3d.V3(0, 0, 15), 1e-9))
	assert.InDelta(t, 15, earth.Position().Length(), 1e-9)
}

func TestMoonFollowsEarth(t *testing.T) {
	s := solar(t)
	for i := 0; i < 45; i++ {
		s.Advance()
	}
	earth, _ := s.Body("earth")
	moon, _ := s.Body("moon")

	assert.True(t, moon.Position().ApproxEqual(earth.Position().Add(math3d.V3(0, 0, 3)), 1e-9))
	// Scale stays 0.01 along each axis.
	assert.InDelta(t, 0.01, moon.World.TransformDirection(math3d.V3(1, 0, 0)).Length(), 1e-12)
}

func TestPickNearest(t *testing.T) {
	b := bus.New()
	var picked []Picked
	_, err := b.Subscribe(EventPicked, func(e bus.Event) error {
		picked = append(picked, e.Data().(Picked))
		return nil
	})
	require.NoError(t, err)

	s := solar(t, WithBus(b))

	body, hit, ok := s.Pick(geometry.NewRay(math3d.V3(-15, 0, 50), math3d.V3(0, 0, -1)))
	require.True(t, ok)
	assert.Equal(t, "moon", body.Name())
	assert.InDelta(t, 46.9, hit.Distance, 1e-9)
	assert.True(t, hit.Normal.ApproxEqual(math3d.V3(0, 0, 1), 1e-9))

	require.Len(t, picked, 1)
	assert.Equal(t, "moon", picked[0].Name)

	_, _, ok = s.Pick(geometry.NewRay(math3d.V3(100, 100, 100), math3d.V3(1, 0, 0)))
	assert.False(t, ok)
	assert.Len(t, picked, 1)
}

func TestBounds(t *testing.T) {
	s := solar(t)
	earth, _ := s.Body("earth")
	sp := s.Bounds(earth)
	assert.InDelta(t, 0.3, sp.Radius, 1e-12)
	assert.True(t, sp.Center.ApproxEqual(math3d.V3(-15, 0, 0), 1e-12))
}

func TestNewRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name  string
		specs []BodySpec
		err   error
	}{
		{
			name:  "duplicate",
			specs: []BodySpec{{Name: "a", Scale: 1}, {Name: "a", Scale: 1}},
			err:   ErrDuplicateBody,
		},
		{
			name:  "unknown parent",
			specs: []BodySpec{{Name: "a", Scale: 1, Parent: "b"}},
			err:   ErrUnknownParent,
		},
		{
			name:  "cycle",
			specs: []BodySpec{{Name: "a", Scale: 1, Parent: "b"}, {Name: "b", Scale: 1, Parent: "a"}},
			err:   ErrParentCycle,
		},
		{
			name:  "scale",
			specs: []BodySpec{{Name: "a"}},
			err:   ErrInvalidScale,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(1, tt.specs)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSkybox(t *testing.T) {
	faces := Skybox(150)
	require.Len(t, faces, 6)

	want := map[string]math3d.Vector3{
		"neg_x": math3d.V3(-150, 0, 0),
		"pos_x": math3d.V3(150, 0, 0),
		"neg_y": math3d.V3(0, -150, 0),
		"pos_y": math3d.V3(0, 150, 0),
		"neg_z": math3d.V3(0, 0, -150),
		"pos_z": math3d.V3(0, 0, 150),
	}
	for _, f := range faces {
		center := f.World.TransformPoint(math3d.Zero3)
		assert.True(t, center.ApproxEqual(want[f.Name], 1e-9), f.Name)
		// Each quad faces the center of the cube.
		n := f.World.TransformDirection(math3d.V3(0, 0, 1)).Normalize()
		assert.InDelta(t, 1, math.Abs(n.Dot(center.Normalize())), 1e-9, f.Name)
	}
}
