// Package injector wires the viewer together with google/wire. Edit
// injector.go and ProviderSet, then regenerate wire_gen.go.
package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/orbit/internal/config"
	"github.com/zeusync/orbit/internal/core/camera"
	"github.com/zeusync/orbit/internal/core/clock"
	"github.com/zeusync/orbit/internal/core/events/bus"
	"github.com/zeusync/orbit/internal/core/frame"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/core/scene"
	"github.com/zeusync/orbit/internal/input"
	"github.com/zeusync/orbit/internal/stream"
)

// App is the assembled viewer.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Bus    bus.EventBus
	Input  *input.State
	Camera camera.Viewer
	Scene  *scene.Scene
	Loop   *frame.Loop
	Hub    *stream.Hub
}

// Close stops the frame loop and the stream hub and flushes the logger.
func (a *App) Close() error {
	_ = a.Loop.Close()
	_ = a.Hub.Close()
	_ = a.Logger.Sync()
	return nil
}

// LogEvents logs picks at info and replaced singular views at warn.
func (a *App) LogEvents() error {
	_, err := a.Bus.Subscribe(scene.EventPicked, func(e bus.Event) error {
		if p, ok := e.Data().(scene.Picked); ok {
			a.Logger.Info("picked", log.String("body", p.Name), log.Float64("distance", p.Hit.Distance))
		}
		return nil
	})
	if err != nil {
		return err
	}
	_, err = a.Bus.Subscribe(camera.EventSingularView, func(e bus.Event) error {
		a.Logger.Warn("singular camera world replaced by identity", log.String("source", e.Source()))
		return nil
	})
	return err
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideInput,
	ProvideCamera,
	ProvideScene,
	ProvideLoop,
	ProvideHub,
	wire.Bind(new(log.Log), new(*log.Logger)),
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.NewWithEncoding(log.ParseLevel(cfg.Log.Level), cfg.Log.Encoding)
}

func ProvideBus() bus.EventBus { return bus.New() }

func ProvideInput() *input.State { return input.NewState() }

func ProvideCamera(cfg *config.Config, logger log.Log, b bus.EventBus) (camera.Viewer, error) {
	c := cfg.Camera
	opts := []camera.Option{
		camera.WithSteps(camera.ParseStepMode(c.StepMode), c.MoveStep, c.YawStep),
		camera.WithYaw(c.Yaw),
		camera.WithLogger(logger),
		camera.WithBus(b),
	}
	switch c.Kind {
	case "free":
		return camera.New(append(opts, camera.WithPosition(c.Position.Vector()))...), nil
	case "orbit":
		opts = append(opts,
			camera.WithPitch(c.Orbit.Pitch),
			camera.WithRadiusLimits(c.Orbit.MinRadius, c.Orbit.MaxRadius),
		)
		return camera.NewOrbit(c.Orbit.Target.Vector(), c.Orbit.Radius, opts...), nil
	default:
		return nil, fmt.Errorf("%w: camera kind %q", config.ErrInvalidConfig, c.Kind)
	}
}

func ProvideScene(cfg *config.Config, logger log.Log, b bus.EventBus) (*scene.Scene, error) {
	specs := make([]scene.BodySpec, len(cfg.Scene.Bodies))
	for i, bc := range cfg.Scene.Bodies {
		specs[i] = scene.BodySpec{
			Name:        bc.Name,
			Translation: bc.Translation.Vector(),
			Scale:       bc.Scale,
			Orbit:       bc.Orbit,
			Spin:        bc.Spin,
			Parent:      bc.Parent,
			Offset:      bc.Offset.Vector(),
			Angle:       bc.Angle,
		}
	}
	return scene.New(cfg.Scene.BaseRadius, specs, scene.WithLogger(logger), scene.WithBus(b))
}

func ProvideLoop(cfg *config.Config, cam camera.Viewer, in *input.State, s *scene.Scene, logger log.Log, b bus.EventBus) *frame.Loop {
	opts := []frame.Option{
		frame.WithClock(clock.New()),
		frame.WithScene(s),
		frame.WithProjection(cfg.Projection.Matrix, cfg.Projection.Aspect),
		frame.WithLogger(logger),
		frame.WithBus(b),
	}
	if d := cfg.Scene.SkyboxDistance; d > 0 {
		opts = append(opts, frame.WithSkybox(scene.Skybox(d)))
	}
	return frame.New(cam, in, opts...)
}

func ProvideHub(cfg *config.Config, in *input.State, loop *frame.Loop, logger log.Log) *stream.Hub {
	return stream.NewHub(in,
		stream.WithPicker(loop),
		stream.WithWriteTimeout(cfg.Stream.WriteTimeout),
		stream.WithLogger(logger),
	)
}
