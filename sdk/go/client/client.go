// Package client is a Go client for the orbit frame stream. It keeps the
// full matrix state of the scene, filling in matrices the server leaves out
// because they did not change, and sends input and pick requests back.
package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/orbit/internal/core/math3d"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/input"
	"github.com/zeusync/orbit/internal/stream"
)

// Client represents one stream connection
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	// Reassembled scene
	stateMu sync.RWMutex
	state   View
	bodyIdx map[uuid.UUID]int

	// Pick calls waiting for a reply, by request id
	pendingMu sync.Mutex
	pending   map[string]chan stream.Message

	eventHandlers map[EventType][]EventHandler
	handlerMutex  sync.RWMutex

	// Lifecycle
	connected int32 // atomic bool
	closed    int32 // atomic bool
	done      chan struct{}

	config Config
	logger log.Log

	workerGroup sync.WaitGroup
}

// Config holds configuration for the client
type Config struct {
	// ServerURL is the websocket endpoint, e.g. ws://localhost:8080/ws.
	ServerURL      string
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration

	LogLevel log.Level
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() Config {
	return Config{
		ServerURL:      "ws://localhost:8080/ws",
		ConnectTimeout: 10 * time.Second,
		WriteTimeout:   2 * time.Second,
		LogLevel:       log.LevelInfo,
	}
}

// View is the scene as last reported by the server, with row-major matrices.
type View struct {
	Frame      int64
	View       math3d.Matrix4
	Projection math3d.Matrix4
	Camera     math3d.Vector3
	Bodies     []Body
	Skybox     []Face
}

type Body struct {
	ID    uuid.UUID
	Name  string
	World math3d.Matrix4
}

// Face is one skybox quad, by name.
type Face struct {
	Name  string
	World math3d.Matrix4
}

// EventHandler defines a function type for handling client events
type EventHandler func(event Event) error

// EventType represents different types of client events
type EventType string

const (
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeFrame        EventType = "frame"
	EventTypePicked       EventType = "picked"
	EventTypeError        EventType = "error"
)

// Event represents a client event. View is set for frames, Picked for picks.
type Event struct {
	Type      EventType
	Timestamp time.Time
	View      *View
	Picked    *stream.PickResult
	Error     error
}

// NewClient creates a new stream client
func NewClient(config Config) *Client {
	c := &Client{
		bodyIdx:       make(map[uuid.UUID]int),
		pending:       make(map[string]chan stream.Message),
		eventHandlers: make(map[EventType][]EventHandler),
		done:          make(chan struct{}),
		config:        config,
		logger:        log.New(config.LogLevel).With(log.String("component", "client")),
	}
	c.state.View = math3d.Identity()
	c.state.Projection = math3d.Identity()
	return c
}

// Connect dials the server and starts receiving frames.
func (c *Client) Connect(ctx context.Context) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return ErrClientClosed
	}
	if atomic.LoadInt32(&c.connected) == 1 {
		return ErrAlreadyConnected
	}
	if c.config.ServerURL == "" {
		return fmt.Errorf("%w: empty server URL", ErrInvalidConfig)
	}

	c.logger.Info("Connecting to server", log.String("url", c.config.ServerURL))

	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.config.ServerURL, nil)
	if err != nil {
		c.logger.Error("Failed to connect to server", log.String("url", c.config.ServerURL), log.Error(err))
		return err
	}

	c.conn = conn
	atomic.StoreInt32(&c.connected, 1)

	c.workerGroup.Add(1)
	go c.messageReceiver()

	c.emitEvent(Event{Type: EventTypeConnected, Timestamp: time.Now()})
	return nil
}

// Disconnect closes the connection and waits for the receiver to stop.
func (c *Client) Disconnect() error {
	if !atomic.CompareAndSwapInt32(&c.connected, 1, 0) {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.config.WriteTimeout))
	c.writeMu.Unlock()
	_ = c.conn.Close()

	c.workerGroup.Wait()
	c.emitEvent(Event{Type: EventTypeDisconnected, Timestamp: time.Now()})
	c.logger.Info("Disconnected from server")
	return nil
}

// Close closes the client and releases all resources
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if atomic.LoadInt32(&c.connected) == 1 {
		_ = c.Disconnect()
	}
	close(c.done)
	return nil
}

func (c *Client) IsConnected() bool { return atomic.LoadInt32(&c.connected) == 1 }

// SendInput replaces the server side input flags.
func (c *Client) SendInput(flags input.Flags) error {
	return c.send(stream.ClientMessage{Input: &flags})
}

// Pick asks the server which body lies under the normalized device
// coordinates (x, y) of its last frame. A reply that arrives after ctx is
// done is discarded.
func (c *Client) Pick(ctx context.Context, x, y float64) (stream.PickResult, error) {
	id := uuid.NewString()
	reply := make(chan stream.Message, 1)

	c.pendingMu.Lock()
	c.pending[id] = reply
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.send(stream.ClientMessage{Pick: &stream.PickRequest{ID: id, X: x, Y: y}}); err != nil {
		return stream.PickResult{}, err
	}
	select {
	case msg := <-reply:
		if msg.Type == stream.TypeError {
			return stream.PickResult{}, fmt.Errorf("%w: %s", ErrServer, msg.Error)
		}
		return *msg.Picked, nil
	case <-ctx.Done():
		return stream.PickResult{}, ctx.Err()
	case <-c.done:
		return stream.PickResult{}, ErrClientClosed
	}
}

// State returns a copy of the reassembled scene.
func (c *Client) State() View {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state.clone()
}

func (v View) clone() View {
	v.Bodies = append([]Body(nil), v.Bodies...)
	v.Skybox = append([]Face(nil), v.Skybox...)
	return v
}

// OnEvent registers an event handler. Handlers run on their own goroutine.
func (c *Client) OnEvent(eventType EventType, handler EventHandler) {
	c.handlerMutex.Lock()
	defer c.handlerMutex.Unlock()
	c.eventHandlers[eventType] = append(c.eventHandlers[eventType], handler)
}

func (c *Client) send(msg stream.ClientMessage) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return ErrClientClosed
	}
	if atomic.LoadInt32(&c.connected) == 0 {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.config.WriteTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	}
	return c.conn.WriteJSON(msg)
}

// messageReceiver handles incoming messages
func (c *Client) messageReceiver() {
	defer c.workerGroup.Done()
	c.logger.Debug("Message receiver started")

	for {
		var msg stream.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if atomic.CompareAndSwapInt32(&c.connected, 1, 0) {
				c.logger.Warn("Connection lost", log.Error(err))
				_ = c.conn.Close()
				c.emitEvent(Event{Type: EventTypeDisconnected, Timestamp: time.Now(), Error: err})
			}
			c.logger.Debug("Message receiver stopped")
			return
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg stream.Message) {
	now := time.Now()
	switch msg.Type {
	case stream.TypeFrame:
		if msg.Frame == nil {
			return
		}
		v := c.merge(msg.Frame)
		c.emitEvent(Event{Type: EventTypeFrame, Timestamp: now, View: &v})
	case stream.TypePicked, stream.TypeError:
		if msg.Type == stream.TypePicked && msg.Picked == nil {
			return
		}
		c.deliver(msg)
		if msg.Type == stream.TypePicked {
			c.emitEvent(Event{Type: EventTypePicked, Timestamp: now, Picked: msg.Picked})
		} else {
			c.emitEvent(Event{Type: EventTypeError, Timestamp: now, Error: fmt.Errorf("%w: %s", ErrServer, msg.Error)})
		}
	default:
		c.logger.Debug("Unknown message type", log.String("type", msg.Type))
	}
}

// deliver hands a reply to the Pick waiting for it.
func (c *Client) deliver(msg stream.Message) {
	if msg.Request == "" {
		return
	}
	c.pendingMu.Lock()
	reply, ok := c.pending[msg.Request]
	delete(c.pending, msg.Request)
	c.pendingMu.Unlock()

	if !ok {
		c.logger.Debug("Reply dropped, nobody is waiting", log.String("type", msg.Type), log.String("request", msg.Request))
		return
	}
	reply <- msg
}

// merge applies a frame to the state. Matrices missing from the frame keep
// their previous value.
func (c *Client) merge(f *stream.Frame) View {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	c.state.Frame = f.Frame
	c.state.Camera = math3d.V3(f.Camera[0], f.Camera[1], f.Camera[2])
	if f.View != nil {
		c.state.View = math3d.FromColumnMajor32(*f.View)
	}
	if f.Projection != nil {
		c.state.Projection = math3d.FromColumnMajor32(*f.Projection)
	}

	bodies := make([]Body, len(f.Bodies))
	idx := make(map[uuid.UUID]int, len(f.Bodies))
	for i, b := range f.Bodies {
		body := Body{ID: b.ID, Name: b.Name, World: math3d.Identity()}
		if prev, ok := c.bodyIdx[b.ID]; ok {
			body.World = c.state.Bodies[prev].World
		}
		if b.World != nil {
			body.World = math3d.FromColumnMajor32(*b.World)
		}
		bodies[i] = body
		idx[b.ID] = i
	}
	c.state.Bodies = bodies
	c.bodyIdx = idx

	prevFaces := make(map[string]math3d.Matrix4, len(c.state.Skybox))
	for _, face := range c.state.Skybox {
		prevFaces[face.Name] = face.World
	}
	var faces []Face
	for _, ff := range f.Skybox {
		face := Face{Name: ff.Name, World: math3d.Identity()}
		if prev, ok := prevFaces[ff.Name]; ok {
			face.World = prev
		}
		if ff.World != nil {
			face.World = math3d.FromColumnMajor32(*ff.World)
		}
		faces = append(faces, face)
	}
	c.state.Skybox = faces

	return c.state.clone()
}

// emitEvent emits an event to registered handlers
func (c *Client) emitEvent(event Event) {
	c.handlerMutex.RLock()
	handlers := c.eventHandlers[event.Type]
	c.handlerMutex.RUnlock()

	for _, handler := range handlers {
		go func(h EventHandler) {
			if err := h(event); err != nil {
				c.logger.Error("Event handler error", log.Error(err))
			}
		}(handler)
	}
}
