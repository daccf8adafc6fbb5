package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/orbit/internal/config"
	"github.com/zeusync/orbit/internal/core/camera"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/scene"
	"github.com/zeusync/orbit/internal/input"
)

func quietConfig() *config.Config {
	cfg := config.Default()
	cfg.Log.Level = "silent"
	return cfg
}

func TestInitializeApp(t *testing.T) {
	app, err := InitializeApp(quietConfig())
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	orbit, ok := app.Camera.(*camera.OrbitCamera)
	require.True(t, ok)
	assert.Equal(t, 40.0, orbit.Radius)
	assert.Equal(t, -15.0, orbit.Pitch)

	app.Input.Set(input.Flags{MoveForward: true})
	snap, err := app.Loop.Tick()
	require.NoError(t, err)
	assert.Len(t, snap.Bodies, 10)
	assert.Equal(t, scene.Skybox(150), snap.Skybox)
	assert.InDelta(t, 39, snap.CameraPosition.Length(), 1e-9)

	moon, ok := app.Scene.Body("moon")
	require.True(t, ok)
	earth, _ := app.Scene.Body("earth")
	assert.True(t, moon.Position().ApproxEqual(earth.Position().Add(math3d.V3(0, 0, 3)), 1e-9))
}

func TestInitializeFreeCamera(t *testing.T) {
	cfg := quietConfig()
	cfg.Camera.Kind = "free"
	cfg.Camera.Position = config.Vec3{1, 2, 3}

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	free, ok := app.Camera.(*camera.Camera)
	require.True(t, ok)
	assert.Equal(t, math3d.V3(1, 2, 3), free.Position())
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	cfg := quietConfig()
	cfg.Camera.Kind = "drone"
	_, err := InitializeApp(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = quietConfig()
	cfg.Scene.Bodies[4].Parent = "vulcan"
	_, err = InitializeApp(cfg)
	assert.Error(t, err)
}

func TestLogEvents(t *testing.T) {
	app, err := InitializeApp(quietConfig())
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	require.NoError(t, app.LogEvents())
	_, err = app.Loop.Tick()
	require.NoError(t, err)

	body, _, ok, err := app.Loop.Pick(0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sun", body.Name())

	m := app.Bus.GetMetrics()
	assert.Equal(t, uint64(1), m.Published)
	assert.Equal(t, uint64(1), m.DeliveredHandlers)
	assert.Zero(t, m.Errors)
}
