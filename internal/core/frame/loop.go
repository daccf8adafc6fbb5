// Package frame drives one tick of the viewer: sample the clock and the
// input, update the camera, advance the scene, and hand out a Snapshot with
// every matrix a renderer needs.
package frame

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/orbit/internal/core/camera"
	"github.com/zeusync/orbit/internal/core/clock"
	"github.com/zeusync/orbit/internal/core/events/bus"
	"github.com/zeusync/orbit/internal/core/geometry"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/core/scene"
	"github.com/zeusync/orbit/internal/input"
)

var (
	ErrClosed  = errors.New("frame loop closed")
	ErrNoScene = errors.New("frame loop has no scene")
	ErrNoFrame = errors.New("no frame rendered yet")
)

// BodyState is a body's world matrix for one frame.
type BodyState struct {
	ID    uuid.UUID
	Name  string
	World math3d.Matrix4
	// Radius is the world space radius of the body's bounding sphere.
	Radius float64
}

// Snapshot is everything produced by one tick. It shares nothing with the
// loop and may be handed to other goroutines.
type Snapshot struct {
	Frame          int64
	DeltaTime      float64
	Input          input.Flags
	CameraPosition math3d.Vector3
	View           math3d.Matrix4
	Projection     math3d.Matrix4
	ViewProjection math3d.Matrix4
	Bodies         []BodyState
	// Skybox holds the faces set by WithSkybox. They do not change between
	// frames.
	Skybox []scene.Face
}

// ProjectionFunc builds the projection for the current aspect ratio.
type ProjectionFunc func(aspect float64) math3d.Matrix4

// PerspectiveFunc is a ProjectionFunc with a fixed vertical field of view
// and clip planes.
func PerspectiveFunc(fovY, near, far float64) ProjectionFunc {
	return func(aspect float64) math3d.Matrix4 {
		return math3d.Perspective(fovY, aspect, near, far)
	}
}

type Option func(*Loop)

func WithScene(s *scene.Scene) Option { return func(l *Loop) { l.scene = s } }

func WithClock(c *clock.Clock) Option { return func(l *Loop) { l.clock = c } }

func WithProjection(fn ProjectionFunc, aspect float64) Option {
	return func(l *Loop) {
		l.projection = fn
		l.aspect = aspect
	}
}

// WithSystems adds systems run on every tick in priority order.
func WithSystems(systems ...System) Option {
	return func(l *Loop) { l.systems = append(l.systems, systems...) }
}

func WithLogger(lg log.Log) Option {
	return func(l *Loop) {
		if lg != nil {
			l.logger = lg
		}
	}
}

func WithBus(b bus.EventBus) Option { return func(l *Loop) { l.bus = b } }

// WithSkybox adds faces to every snapshot, see scene.Skybox.
func WithSkybox(faces []scene.Face) Option {
	return func(l *Loop) { l.skybox = append([]scene.Face(nil), faces...) }
}

// Loop is driven from a single goroutine through Tick or Run. Pick,
// SetAspect, Last and Close may be called from any goroutine.
type Loop struct {
	camera camera.Viewer
	input  input.Source
	clock  *clock.Clock
	scene  *scene.Scene

	projection ProjectionFunc
	systems    []System
	skybox     []scene.Face

	logger log.Log
	bus    bus.EventBus

	mu     sync.RWMutex
	aspect float64
	last   *Snapshot
	closed bool
}

func New(cam camera.Viewer, src input.Source, opts ...Option) *Loop {
	l := &Loop{
		camera:     cam,
		input:      src,
		projection: PerspectiveFunc(45, 0.1, 1000),
		aspect:     16.0 / 9.0,
		logger:     log.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.clock == nil {
		l.clock = clock.New()
	}
	if l.input == nil {
		l.input = input.Static{}
	}
	if l.scene != nil {
		l.systems = append([]System{advanceScene(l.scene)}, l.systems...)
	}
	sortSystems(l.systems)
	l.logger = l.logger.With(log.String("component", "frame"))
	return l
}

func advanceScene(s *scene.Scene) System {
	return SystemFunc("scene.advance", PriorityFirst, func(float64, *Snapshot) error {
		s.Advance()
		return nil
	})
}

// SetAspect changes the aspect ratio used from the next tick on.
func (l *Loop) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	l.mu.Lock()
	l.aspect = aspect
	l.mu.Unlock()
}

// Tick runs one frame. System errors are joined and returned together with
// the snapshot, which is complete either way.
func (l *Loop) Tick() (Snapshot, error) {
	l.mu.RLock()
	closed, aspect := l.closed, l.aspect
	l.mu.RUnlock()
	if closed {
		return Snapshot{}, ErrClosed
	}

	dt := l.clock.Tick()
	flags := l.input.Poll()
	l.camera.Update(dt, flags)

	snap := Snapshot{
		Frame:          l.clock.Frame(),
		DeltaTime:      dt,
		Input:          flags,
		CameraPosition: l.camera.Position(),
		View:           l.camera.ViewMatrix(),
		Projection:     l.projection(aspect),
	}

	var errs []error
	for _, s := range l.systems {
		if err := s.Update(dt, &snap); err != nil {
			errs = append(errs, fmt.Errorf("system %s: %w", s.Name(), err))
		}
	}

	if l.scene != nil {
		bodies := l.scene.Bodies()
		snap.Bodies = make([]BodyState, len(bodies))
		for i, b := range bodies {
			snap.Bodies[i] = BodyState{ID: b.ID, Name: b.Name(), World: b.World, Radius: l.scene.Bounds(b).Radius}
		}
	}
	if len(l.skybox) > 0 {
		snap.Skybox = append([]scene.Face(nil), l.skybox...)
	}
	snap.ViewProjection = snap.View.Premultiply(snap.Projection)

	l.mu.Lock()
	l.last = &snap
	l.mu.Unlock()

	err := errors.Join(errs...)
	if err != nil {
		l.logger.Warn("frame systems failed", log.Int64("frame", snap.Frame), log.Error(err))
	}
	return snap, err
}

// Last returns the most recent snapshot.
func (l *Loop) Last() (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.last == nil {
		return Snapshot{}, false
	}
	return *l.last, true
}

// Pick casts a ray through the normalized device coordinates (x, y) of the
// last frame and returns the nearest body it hits.
func (l *Loop) Pick(x, y float64) (scene.Body, geometry.Hit, bool, error) {
	if l.scene == nil {
		return scene.Body{}, geometry.Hit{}, false, ErrNoScene
	}
	snap, ok := l.Last()
	if !ok {
		return scene.Body{}, geometry.Hit{}, false, ErrNoFrame
	}
	ray, err := geometry.RayFromNDC(snap.ViewProjection, x, y)
	if err != nil {
		return scene.Body{}, geometry.Hit{}, false, err
	}
	b, hit, found := l.scene.Pick(ray)
	return b, hit, found, nil
}

// Run ticks every interval until ctx is done or the loop is closed, passing
// each snapshot to sink.
func (l *Loop) Run(ctx context.Context, interval time.Duration, sink func(Snapshot)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Info("frame loop started", log.Duration("interval", interval))
	defer l.logger.Info("frame loop stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap, err := l.Tick()
			if errors.Is(err, ErrClosed) {
				return nil
			}
			if sink != nil {
				sink(snap)
			}
		}
	}
}

// Close stops Run and makes further ticks fail with ErrClosed.
func (l *Loop) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.closed = true
	return nil
}
