// Package input defines the per-tick movement flags the camera consumes and
// the sources that produce them.
package input

import "sync"

// Flags is the input state sampled once per tick.
type Flags struct {
	MoveForward  bool `json:"moveForward"`
	MoveBackward bool `json:"moveBackward"`
	YawLeft      bool `json:"yawLeft"`
	YawRight     bool `json:"yawRight"`
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.MoveForward || f.MoveBackward || f.YawLeft || f.YawRight
}

// Source is polled by the frame loop once per tick.
type Source interface {
	Poll() Flags
}

// SourceFunc adapts a function to Source.
type SourceFunc func() Flags

func (f SourceFunc) Poll() Flags { return f() }

// Static always reports the same flags.
type Static Flags

func (s Static) Poll() Flags { return Flags(s) }

// State holds the latest flags written by a transport goroutine (websocket
// reader, window callback) and read by the tick. Safe for concurrent use.
type State struct {
	mu    sync.Mutex
	flags Flags
}

func NewState() *State { return &State{} }

func (s *State) Set(f Flags) {
	s.mu.Lock()
	s.flags = f
	s.mu.Unlock()
}

func (s *State) Poll() Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

// Reset clears every flag, e.g. when the client that owned them disconnects.
func (s *State) Reset() { s.Set(Flags{}) }
