// Package config describes everything the frame loop needs at startup:
// logging, camera, projection, the scene bodies and the stream endpoint.
package config

import (
	"time"

	"github.com/zeusync/orbit/internal/core/math3d"
)

type Config struct {
	Log        LogConfig        `json:"log" yaml:"log"`
	Camera     CameraConfig     `json:"camera" yaml:"camera"`
	Projection ProjectionConfig `json:"projection" yaml:"projection"`
	Scene      SceneConfig      `json:"scene" yaml:"scene"`
	Stream     StreamConfig     `json:"stream" yaml:"stream"`
}

type LogConfig struct {
	Level    string `json:"level" yaml:"level"`
	Encoding string `json:"encoding" yaml:"encoding"`
}

// Vec3 is a three element list in config files.
type Vec3 []float64

func (v Vec3) Vector() math3d.Vector3 {
	if len(v) != 3 {
		return math3d.Zero3
	}
	return math3d.V3(v[0], v[1], v[2])
}

type CameraConfig struct {
	// Kind is "free" or "orbit".
	Kind     string  `json:"kind" yaml:"kind"`
	Position Vec3    `json:"position,omitempty" yaml:"position,omitempty"`
	Yaw      float64 `json:"yaw,omitempty" yaml:"yaw,omitempty"`
	// StepMode is "per_tick" or "per_second".
	StepMode string      `json:"step_mode" yaml:"step_mode"`
	MoveStep float64     `json:"move_step" yaml:"move_step"`
	YawStep  float64     `json:"yaw_step" yaml:"yaw_step"`
	Orbit    OrbitConfig `json:"orbit,omitempty" yaml:"orbit,omitempty"`
}

type OrbitConfig struct {
	Target    Vec3    `json:"target,omitempty" yaml:"target,omitempty"`
	Radius    float64 `json:"radius" yaml:"radius"`
	MinRadius float64 `json:"min_radius,omitempty" yaml:"min_radius,omitempty"`
	MaxRadius float64 `json:"max_radius,omitempty" yaml:"max_radius,omitempty"`
	Pitch     float64 `json:"pitch,omitempty" yaml:"pitch,omitempty"`
}

type ProjectionConfig struct {
	// Kind is "perspective" or "orthographic".
	Kind   string  `json:"kind" yaml:"kind"`
	FovY   float64 `json:"fov_y" yaml:"fov_y"`
	Aspect float64 `json:"aspect" yaml:"aspect"`
	Near   float64 `json:"near" yaml:"near"`
	Far    float64 `json:"far" yaml:"far"`

	Left   float64 `json:"left,omitempty" yaml:"left,omitempty"`
	Right  float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Top    float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
}

// Matrix builds the configured projection for the given aspect ratio. A
// non-positive aspect falls back to the configured one.
func (p ProjectionConfig) Matrix(aspect float64) math3d.Matrix4 {
	if aspect <= 0 {
		aspect = p.Aspect
	}
	if p.Kind == "orthographic" {
		return math3d.Orthographic(p.Left, p.Right, p.Top, p.Bottom, p.Near, p.Far)
	}
	return math3d.Perspective(p.FovY, aspect, p.Near, p.Far)
}

type SceneConfig struct {
	// BaseRadius is the radius of the unit mesh every body is scaled from.
	BaseRadius     float64      `json:"base_radius" yaml:"base_radius"`
	// SkyboxDistance is the half extent of the skybox cube; zero disables it.
	SkyboxDistance float64      `json:"skybox_distance,omitempty" yaml:"skybox_distance,omitempty"`
	Bodies         []BodyConfig `json:"bodies" yaml:"bodies"`
}

type BodyConfig struct {
	Name        string  `json:"name" yaml:"name"`
	Translation Vec3    `json:"translation,omitempty" yaml:"translation,omitempty"`
	Scale       float64 `json:"scale" yaml:"scale"`
	// Orbit is the per-tick rotation (degrees) about the world Y axis.
	Orbit float64 `json:"orbit,omitempty" yaml:"orbit,omitempty"`
	// Spin is the per-tick rotation (degrees) about the body's own Y axis.
	Spin float64 `json:"spin,omitempty" yaml:"spin,omitempty"`

	// Parent makes the body follow another body's position, placed at
	// Offset and turned by Angle degrees around it.
	Parent string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Offset Vec3    `json:"offset,omitempty" yaml:"offset,omitempty"`
	Angle  float64 `json:"angle,omitempty" yaml:"angle,omitempty"`
}

type StreamConfig struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	Addr         string        `json:"addr" yaml:"addr"`
	Path         string        `json:"path" yaml:"path"`
	TickRate     int           `json:"tick_rate" yaml:"tick_rate"`
	WriteTimeout time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
}

// TickInterval is the period between frame ticks.
func (s StreamConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

// Default is the solar system viewer setup.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Encoding: "json"},
		Camera: CameraConfig{
			Kind:     "orbit",
			Position: Vec3{0, 0, 40},
			StepMode: "per_tick",
			MoveStep: 1,
			YawStep:  0.25,
			Orbit: OrbitConfig{
				Target:    Vec3{0, 0, 0},
				Radius:    40,
				MinRadius: 2,
				MaxRadius: 140,
				Pitch:     -15,
			},
		},
		Projection: ProjectionConfig{
			Kind:   "perspective",
			FovY:   45,
			Aspect: 16.0 / 9.0,
			Near:   0.1,
			Far:    1000,
		},
		Scene: SceneConfig{
			BaseRadius:     10,
			SkyboxDistance: 150,
			Bodies: []BodyConfig{
				{Name: "sun", Scale: 0.1, Spin: 0.5},
				{Name: "mercury", Translation: Vec3{-8, 0, 0}, Scale: 0.017, Orbit: 0.5},
				{Name: "venus", Translation: Vec3{-11, 0, 0}, Scale: 0.024, Orbit: 0.6},
				{Name: "earth", Translation: Vec3{-15, 0, 0}, Scale: 0.03, Orbit: 1, Spin: 1},
				{Name: "moon", Parent: "earth", Offset: Vec3{0, 0, 3}, Scale: 0.01, Angle: 60},
				{Name: "mars", Translation: Vec3{-20, 0, 0}, Scale: 0.02, Orbit: 0.4},
				{Name: "jupiter", Translation: Vec3{-25, 0, 0}, Scale: 0.05, Orbit: 0.2},
				{Name: "saturn", Translation: Vec3{-31.5, 0, 0}, Scale: 0.045, Orbit: 0.3},
				{Name: "uranus", Translation: Vec3{-37, 0, 0}, Scale: 0.038, Orbit: 0.2},
				{Name: "neptune", Translation: Vec3{-42, 0, 0}, Scale: 0.034, Orbit: 0.15},
			},
		},
		Stream: StreamConfig{
			Enabled:      true,
			Addr:         ":8080",
			Path:         "/ws",
			TickRate:     60,
			WriteTimeout: 2 * time.Second,
		},
	}
}
