// Package hostview is a desktop window that drives the frame loop and draws
// every body as a projected circle. Arrow keys or WASD steer the camera; a
// left click picks the body under the cursor.
package hostview

import "github.com/zeusync/orbit/internal/input"

// Keys is the state of the steering keys for one tick.
type Keys struct {
	Up, Down, Left, Right bool
}

// Flags maps the keys onto camera input: up and down walk, left and right
// yaw.
func (k Keys) Flags() input.Flags {
	return input.Flags{
		MoveForward:  k.Up,
		MoveBackward: k.Down,
		YawLeft:      k.Left,
		YawRight:     k.Right,
	}
}
