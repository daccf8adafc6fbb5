package stream

import (
	"github.com/google/uuid"

	"github.com/zeusync/orbit/internal/input"
)

const (
	TypeFrame  = "frame"
	TypePicked = "picked"
	TypeError  = "error"
)

// Message is what the server sends. Exactly one payload is set, matching
// Type. Replies to a pick request echo its ID in Request.
type Message struct {
	Type    string      `json:"type"`
	Request string      `json:"request,omitempty"`
	Frame   *Frame      `json:"frame,omitempty"`
	Picked  *PickResult `json:"picked,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Frame carries column-major float32 matrices ready for uniformMatrix4fv
// with transpose=false. A matrix equal to the one last sent to the same
// client is left out; the client keeps its previous value.
type Frame struct {
	Frame      int64        `json:"frame"`
	View       *[16]float32 `json:"view,omitempty"`
	Projection *[16]float32 `json:"projection,omitempty"`
	Camera     [3]float64   `json:"camera"`
	Bodies     []BodyFrame  `json:"bodies,omitempty"`
	Skybox     []FaceFrame  `json:"skybox,omitempty"`
}

type BodyFrame struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name"`
	World *[16]float32 `json:"world,omitempty"`
}

type FaceFrame struct {
	Name  string       `json:"name"`
	World *[16]float32 `json:"world,omitempty"`
}

// ClientMessage is what a client sends: new input flags, a pick request, or
// both.
type ClientMessage struct {
	Input *input.Flags `json:"input,omitempty"`
	Pick  *PickRequest `json:"pick,omitempty"`
}

// PickRequest is a point in normalized device coordinates. ID is chosen by
// the client and comes back in the reply's Message.Request.
type PickRequest struct {
	ID string  `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// PickResult describes the nearest body under a pick. On a miss only Hit is
// meaningful: the body and intersection fields are left out.
type PickResult struct {
	Hit      bool        `json:"hit"`
	ID       *uuid.UUID  `json:"id,omitempty"`
	Name     string      `json:"name,omitempty"`
	Point    *[3]float64 `json:"point,omitempty"`
	Normal   *[3]float64 `json:"normal,omitempty"`
	Distance *float64    `json:"distance,omitempty"`
}
