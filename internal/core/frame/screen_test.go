package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/orbit/internal/core/math3d"
)

func TestProject(t *testing.T) {
	view := math3d.Translation(0, 0, -20)
	proj := math3d.Perspective(45, 1, 0.1, 1000)
	snap := Snapshot{
		View:           view,
		Projection:     proj,
		ViewProjection: view.Premultiply(proj),
		Bodies: []BodyState{
			{Name: "near", World: math3d.Translation(0, 0, 10), Radius: 0.5},
			{Name: "behind", World: math3d.Translation(0, 0, 30), Radius: 1},
			{Name: "sun", World: math3d.Scaling(0.1, 0.1, 0.1), Radius: 1},
		},
	}

	circles := snap.Project(800, 800)
	require.Len(t, circles, 2)
	assert.Equal(t, "sun", circles[0].Name)
	assert.Equal(t, "near", circles[1].Name)
	assert.Less(t, circles[1].Depth, circles[0].Depth)

	sun := circles[0]
	assert.InDelta(t, 400, sun.X, 1e-3)
	assert.InDelta(t, 400, sun.Y, 1e-3)
	f := 1 / math.Tan(math3d.Radians(22.5))
	assert.InDelta(t, f/20*400, sun.Radius, 1e-3)
}

func TestProjectScreenAxes(t *testing.T) {
	proj := math3d.Perspective(90, 1, 1, 100)
	snap := Snapshot{
		Projection:     proj,
		ViewProjection: proj,
		Bodies: []BodyState{
			{Name: "upper-right", World: math3d.Translation(5, 5, -10), Radius: 1},
		},
	}
	c := snap.Project(200, 100)
	require.Len(t, c, 1)
	// (5, 5) at distance 10 with a 90° frustum is half way to the edges.
	assert.InDelta(t, 150, c[0].X, 1e-3)
	assert.InDelta(t, 25, c[0].Y, 1e-3)
}

func TestToNDC(t *testing.T) {
	x, y := ToNDC(400, 300, 800, 600)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	x, y = ToNDC(0, 0, 800, 600)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, 1.0, y)
}
