package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// LoadYAML decodes a config from r on top of Default. Keys missing from the
// document keep their default values; lists are replaced wholesale.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return c, c.Validate()
}

// LoadJSON loads config from JSON reader, with the same defaulting as LoadYAML.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return c, c.Validate()
}

// LoadFile picks the decoder from the file extension (.json, otherwise YAML).
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(f)
	}
	return LoadYAML(f)
}

// Validate reports every problem found, joined, each wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error", "silent", "off":
	default:
		bad("log.level %q", c.Log.Level)
	}
	switch c.Log.Encoding {
	case "", "json", "console":
	default:
		bad("log.encoding %q", c.Log.Encoding)
	}

	cam := c.Camera
	switch cam.Kind {
	case "free":
		if cam.Position != nil && len(cam.Position) != 3 {
			bad("camera.position needs 3 components, got %d", len(cam.Position))
		}
	case "orbit":
		if cam.Orbit.Target != nil && len(cam.Orbit.Target) != 3 {
			bad("camera.orbit.target needs 3 components, got %d", len(cam.Orbit.Target))
		}
		if cam.Orbit.Radius <= 0 {
			bad("camera.orbit.radius must be positive")
		}
		if cam.Orbit.MaxRadius > 0 && cam.Orbit.MinRadius > cam.Orbit.MaxRadius {
			bad("camera.orbit.min_radius exceeds max_radius")
		}
	default:
		bad("camera.kind %q", cam.Kind)
	}
	switch cam.StepMode {
	case "", "per_tick", "per_second":
	default:
		bad("camera.step_mode %q", cam.StepMode)
	}
	if cam.MoveStep < 0 || cam.YawStep < 0 {
		bad("camera steps must not be negative")
	}

	p := c.Projection
	switch p.Kind {
	case "perspective":
		if p.FovY <= 0 || p.FovY >= 180 {
			bad("projection.fov_y must be in (0, 180), got %v", p.FovY)
		}
		if p.Aspect <= 0 {
			bad("projection.aspect must be positive")
		}
		if p.Near <= 0 {
			bad("projection.near must be positive")
		}
	case "orthographic":
		if p.Left == p.Right || p.Top == p.Bottom {
			bad("projection ortho box is degenerate")
		}
	default:
		bad("projection.kind %q", p.Kind)
	}
	if p.Far <= p.Near {
		bad("projection.far must exceed near")
	}

	if c.Scene.BaseRadius <= 0 {
		bad("scene.base_radius must be positive")
	}
	if c.Scene.SkyboxDistance < 0 {
		bad("scene.skybox_distance must not be negative")
	} else if c.Scene.SkyboxDistance >= p.Far {
		bad("scene.skybox_distance must be inside projection.far")
	}
	names := make(map[string]struct{}, len(c.Scene.Bodies))
	for i, b := range c.Scene.Bodies {
		if b.Name == "" {
			bad("scene.bodies[%d] has no name", i)
			continue
		}
		if _, dup := names[b.Name]; dup {
			bad("scene body %q defined twice", b.Name)
		}
		names[b.Name] = struct{}{}
		if b.Scale <= 0 {
			bad("scene body %q: scale must be positive", b.Name)
		}
		if b.Translation != nil && len(b.Translation) != 3 {
			bad("scene body %q: translation needs 3 components", b.Name)
		}
		if b.Offset != nil && len(b.Offset) != 3 {
			bad("scene body %q: offset needs 3 components", b.Name)
		}
	}
	for _, b := range c.Scene.Bodies {
		if b.Parent == "" {
			continue
		}
		if b.Parent == b.Name {
			bad("scene body %q is its own parent", b.Name)
		} else if _, ok := names[b.Parent]; !ok {
			bad("scene body %q: unknown parent %q", b.Name, b.Parent)
		}
	}

	if c.Stream.Enabled {
		if c.Stream.Addr == "" {
			bad("stream.addr is empty")
		}
		if !strings.HasPrefix(c.Stream.Path, "/") {
			bad("stream.path must start with /")
		}
	}
	if c.Stream.TickRate <= 0 {
		bad("stream.tick_rate must be positive")
	}

	return errors.Join(errs...)
}
