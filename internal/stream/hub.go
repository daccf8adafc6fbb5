// Package stream pushes frame snapshots to browser renderers over websocket
// and feeds their input back into the frame loop.
package stream

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/orbit/internal/core/frame"
	"github.com/zeusync/orbit/internal/core/geometry"
	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/core/scene"
	"github.com/zeusync/orbit/internal/input"
)

const sendBuffer = 16

// Picker resolves a pick request against the last frame.
type Picker interface {
	Pick(x, y float64) (scene.Body, geometry.Hit, bool, error)
}

type Option func(*Hub)

func WithPicker(p Picker) Option { return func(h *Hub) { h.picker = p } }

func WithWriteTimeout(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

func WithLogger(l log.Log) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// Hub is an http.Handler that upgrades every request to a websocket client.
type Hub struct {
	upgrader     websocket.Upgrader
	input        *input.State
	picker       Picker
	writeTimeout time.Duration
	logger       log.Log

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub writes client input into state.
func NewHub(state *input.State, opts ...Option) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		input:        state,
		writeTimeout: 2 * time.Second,
		logger:       log.NewNop(),
		clients:      make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(log.String("component", "stream"))
	return h
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan Message
	// fingerprints of the matrices last queued for this client
	seen map[string]uint64
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.String("remote", r.RemoteAddr), log.Error(err))
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan Message, sendBuffer),
		seen: make(map[string]uint64),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}
	h.logger.Info("client connected", log.String("client", c.id.String()), log.String("remote", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	remaining := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
	}
	if remaining == 0 && h.input != nil {
		h.input.Reset()
	}
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		h.logger.Info("client disconnected", log.String("client", c.id.String()))
	}()

	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("client read failed", log.String("client", c.id.String()), log.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(p, &msg); err != nil || (msg.Input == nil && msg.Pick == nil) {
			h.logger.Debug("bad client message", log.String("client", c.id.String()), log.Error(errors.Join(ErrInvalidMessage, err)))
			h.enqueue(c, Message{Type: TypeError, Error: ErrInvalidMessage.Error()})
			continue
		}
		if msg.Input != nil && h.input != nil {
			h.input.Set(*msg.Input)
		}
		if msg.Pick != nil {
			h.enqueue(c, h.pick(*msg.Pick))
		}
	}
}

func (h *Hub) pick(req PickRequest) Message {
	if h.picker == nil {
		return Message{Type: TypeError, Request: req.ID, Error: ErrNoPicker.Error()}
	}
	body, hit, ok, err := h.picker.Pick(req.X, req.Y)
	if err != nil {
		return Message{Type: TypeError, Request: req.ID, Error: err.Error()}
	}
	res := &PickResult{Hit: ok}
	if ok {
		id := body.ID
		point, normal, dist := vec(hit.Point), vec(hit.Normal), hit.Distance
		res.ID = &id
		res.Name = body.Name()
		res.Point = &point
		res.Normal = &normal
		res.Distance = &dist
	}
	return Message{Type: TypePicked, Request: req.ID, Picked: res}
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			h.logger.Warn("client write failed", log.String("client", c.id.String()), log.Error(err))
			_ = c.conn.Close()
			// keep draining so enqueue never blocks on a dead client
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(h.writeTimeout))
}

// enqueue drops the message when the client is not keeping up.
func (h *Hub) enqueue(c *client, msg Message) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		h.logger.Debug("client too slow, message dropped", log.String("client", c.id.String()), log.String("type", msg.Type))
		return false
	}
}

// Broadcast sends snap to every client, leaving out matrices the client
// already has.
func (h *Hub) Broadcast(snap frame.Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}

	for c := range h.clients {
		f, marks := frameFor(c.seen, snap)
		select {
		case c.send <- Message{Type: TypeFrame, Frame: f}:
			for k, v := range marks {
				c.seen[k] = v
			}
		default:
			h.logger.Debug("client too slow, frame dropped", log.String("client", c.id.String()), log.Int64("frame", snap.Frame))
		}
	}
	return nil
}

// frameFor builds the payload for one client and the fingerprints to
// remember once it is queued.
func frameFor(seen map[string]uint64, snap frame.Snapshot) (*Frame, map[string]uint64) {
	marks := make(map[string]uint64, len(snap.Bodies)+len(snap.Skybox)+2)
	changed := func(key string, m math3d.Matrix4) *[16]float32 {
		fp := m.Fingerprint()
		if last, ok := seen[key]; ok && last == fp {
			return nil
		}
		marks[key] = fp
		cm := m.ColumnMajor32()
		return &cm
	}

	f := &Frame{
		Frame:      snap.Frame,
		View:       changed("view", snap.View),
		Projection: changed("projection", snap.Projection),
		Camera:     vec(snap.CameraPosition),
	}
	if len(snap.Bodies) > 0 {
		f.Bodies = make([]BodyFrame, len(snap.Bodies))
		for i, b := range snap.Bodies {
			f.Bodies[i] = BodyFrame{ID: b.ID, Name: b.Name, World: changed(b.ID.String(), b.World)}
		}
	}
	if len(snap.Skybox) > 0 {
		f.Skybox = make([]FaceFrame, len(snap.Skybox))
		for i, face := range snap.Skybox {
			f.Skybox[i] = FaceFrame{Name: face.Name, World: changed("skybox/"+face.Name, face.World)}
		}
	}
	return f, marks
}

// Close disconnects every client. Later connections get 503 and Broadcast
// returns ErrHubClosed.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.logger.Info("stream hub closed")
	return nil
}

func vec(v math3d.Vector3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
