package frame

import "sort"

// Priority orders systems inside a tick; lower runs first.
type Priority uint16

const (
	PriorityFirst  Priority = 100
	PriorityNormal Priority = 500
	PriorityLast   Priority = 900
)

// System runs once per tick after the camera has consumed input. It may
// change the snapshot being built.
type System interface {
	Name() string
	Priority() Priority
	Update(deltaTime float64, snap *Snapshot) error
}

type funcSystem struct {
	name     string
	priority Priority
	fn       func(float64, *Snapshot) error
}

func (s funcSystem) Name() string                                   { return s.name }
func (s funcSystem) Priority() Priority                             { return s.priority }
func (s funcSystem) Update(deltaTime float64, snap *Snapshot) error { return s.fn(deltaTime, snap) }

// SystemFunc wraps fn as a System.
func SystemFunc(name string, priority Priority, fn func(deltaTime float64, snap *Snapshot) error) System {
	return funcSystem{name: name, priority: priority, fn: fn}
}

// sortSystems keeps registration order among equal priorities.
func sortSystems(systems []System) {
	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].Priority() < systems[j].Priority()
	})
}
