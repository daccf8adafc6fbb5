// Package scene keeps the bodies of the solar system viewer and their world
// matrices, advances them once per tick and resolves picking rays.
package scene

import (
	"fmt"
	"sync"

	"github.com/zeusync/orbit/internal/core/events/bus"
	"github.com/zeusync/orbit/internal/core/geometry"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
)

const (
	EventPicked = "scene.picked"

	eventSource = "scene"
)

// Picked is the payload of EventPicked.
type Picked struct {
	Name string
	Hit  geometry.Hit
}

type Option func(*Scene)

func WithLogger(l log.Log) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithBus(b bus.EventBus) Option { return func(s *Scene) { s.bus = b } }

// Scene is safe for concurrent use.
type Scene struct {
	mu         sync.RWMutex
	bodies     []*Body
	index      map[string]int
	order      []int // roots first, then children after their parent
	baseRadius float64
	ticks      uint64

	logger log.Log
	bus    bus.EventBus
}

// New places the bodies. baseRadius is the radius of the unit mesh that each
// body scales, used for picking bounds.
func New(baseRadius float64, specs []BodySpec, opts ...Option) (*Scene, error) {
	s := &Scene{
		index:      make(map[string]int, len(specs)),
		baseRadius: baseRadius,
		logger:     log.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(log.String("component", "scene"))

	for i, spec := range specs {
		if spec.Scale <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidScale, spec.Name)
		}
		if _, dup := s.index[spec.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBody, spec.Name)
		}
		s.index[spec.Name] = i
		s.bodies = append(s.bodies, newBody(spec))
	}

	order, err := s.resolveOrder()
	if err != nil {
		return nil, err
	}
	s.order = order
	s.placeChildren()

	s.logger.Info("scene ready", log.Int("bodies", len(s.bodies)))
	return s, nil
}

func (s *Scene) resolveOrder() ([]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(s.bodies))
	order := make([]int, 0, len(s.bodies))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %q", ErrParentCycle, s.bodies[i].Name())
		}
		state[i] = visiting
		if p := s.bodies[i].Spec.Parent; p != "" {
			pi, ok := s.index[p]
			if !ok {
				return fmt.Errorf("%w: %q wants %q", ErrUnknownParent, s.bodies[i].Name(), p)
			}
			if err := visit(pi); err != nil {
				return err
			}
		}
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range s.bodies {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// placeChildren rebuilds every parented body without advancing its angle.
func (s *Scene) placeChildren() {
	for _, i := range s.order {
		b := s.bodies[i]
		if b.Spec.Parent == "" {
			continue
		}
		spin := b.Spec.Spin
		b.Spec.Spin = 0
		b.follow(s.bodies[s.index[b.Spec.Parent]])
		b.Spec.Spin = spin
	}
}

// Advance runs one tick: root bodies orbit (rotation applied on the left)
// and spin (rotation applied on the right), then children follow.
func (s *Scene) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, i := range s.order {
		b := s.bodies[i]
		if b.Spec.Parent == "" {
			b.advance()
			continue
		}
		b.follow(s.bodies[s.index[b.Spec.Parent]])
	}
	s.ticks++
}

// Ticks is the number of Advance calls so far.
func (s *Scene) Ticks() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticks
}

// Bodies returns a copy of every body in declaration order.
func (s *Scene) Bodies() []Body {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Body, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = *b
	}
	return out
}

func (s *Scene) Body(name string) (Body, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[name]
	if !ok {
		return Body{}, false
	}
	return *s.bodies[i], true
}

// Bounds is the bounding sphere of a body: its world position and the base
// radius times its scale.
func (s *Scene) Bounds(b Body) geometry.Sphere {
	return geometry.NewSphere(b.Position(), s.baseRadius*b.Spec.Scale)
}

// Pick casts r against every body and returns the nearest hit. A hit is
// published as EventPicked.
func (s *Scene) Pick(r geometry.Ray) (Body, geometry.Hit, bool) {
	bodies := s.Bodies()
	spheres := make([]geometry.Sphere, len(bodies))
	for i, b := range bodies {
		spheres[i] = s.Bounds(b)
	}

	idx, hit := geometry.Nearest(r, spheres...)
	if idx < 0 {
		return Body{}, hit, false
	}
	picked := bodies[idx]
	s.logger.Debug("body picked",
		log.String("body", picked.Name()),
		log.Float64("distance", hit.Distance),
		log.Vector("point", hit.Point),
	)
	if s.bus != nil {
		ev := bus.NewEvent(EventPicked, eventSource, Picked{Name: picked.Name(), Hit: hit})
		if err := s.bus.Publish(ev); err != nil {
			s.logger.Warn("event handler failed", log.String("event", EventPicked), log.Error(err))
		}
	}
	return picked, hit, true
}

// Face is one quad of the skybox cube.
type Face struct {
	Name  string
	World math3d.Matrix4
}

// Skybox returns the six inward facing quads of a cube with half extent
// distance, each a unit quad scaled by distance, turned to face the center
// and pushed out along its axis.
func Skybox(distance float64) []Face {
	scale := math3d.Scaling(distance, distance, distance)
	face := func(name string, t math3d.Vector3, r math3d.Matrix4) Face {
		return Face{Name: name, World: math3d.TRS(math3d.TranslationV3(t.Scale(distance)), r, scale)}
	}
	return []Face{
		face("neg_x", math3d.V3(-1, 0, 0), math3d.RotationY(-90)),
		face("pos_x", math3d.V3(1, 0, 0), math3d.RotationY(90)),
		face("neg_y", math3d.V3(0, -1, 0), math3d.RotationX(-90)),
		face("pos_y", math3d.V3(0, 1, 0), math3d.RotationX(90)),
		face("neg_z", math3d.V3(0, 0, -1), math3d.RotationY(180)),
		face("pos_z", math3d.V3(0, 0, 1), math3d.RotationY(0)),
	}
}
