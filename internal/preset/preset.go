// Package preset loads emitter configurations from YAML, so effect scenes
// (fire, smoke, embers) ship as data instead of hardcoded structs.
package preset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Behrtron/pyre/internal/engine"
)

// Emitter is one named, renderable emitter definition.
type Emitter struct {
	Name   string
	Sprite string  // sprite shape name, resolved by the renderer
	Size   float64 // base sprite size in world units
	Config engine.EmitterConfig
}

type fileYAML struct {
	Emitters []emitterYAML `yaml:"emitters"`
}

type emitterYAML struct {
	Name               string    `yaml:"name"`
	Sprite             string    `yaml:"sprite"`
	Size               float64   `yaml:"size"`
	Direction          []float64 `yaml:"direction"`
	Velocity           []float64 `yaml:"velocity"`
	DirectionAngle     []float64 `yaml:"direction_angle"`
	VelocityAngle      []float64 `yaml:"velocity_angle"`
	Offset             []float64 `yaml:"offset"`
	OriginAcceleration []float64 `yaml:"origin_acceleration"`
	Age                []float64 `yaml:"age"`
	Burst              []int     `yaml:"burst"`
	Capacity           uint      `yaml:"capacity"`
	EmissionRate       uint      `yaml:"emission_rate"`
	Origin             []float64 `yaml:"origin"`
	ExternalAccel      []float64 `yaml:"external_acceleration"`
	StartColor         []int     `yaml:"start_color"`
	EndColor           []int     `yaml:"end_color"`
	Blend              string    `yaml:"blend"`
	Gravity            float64   `yaml:"gravity"`
	Collision          bool      `yaml:"collision"`
}

// Load parses a preset document. Field values are checked for shape (pair,
// triple, RGBA quad); the semantic well-formedness of ranges remains the
// author's responsibility, as in the engine itself.
func Load(r io.Reader) ([]Emitter, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}

	var f fileYAML
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if len(f.Emitters) == 0 {
		return nil, fmt.Errorf("preset defines no emitters")
	}

	out := make([]Emitter, 0, len(f.Emitters))
	for i, ey := range f.Emitters {
		e, err := ey.build()
		if err != nil {
			return nil, fmt.Errorf("emitter %d (%q): %w", i, ey.Name, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// LoadFile loads a preset document from disk.
func LoadFile(path string) ([]Emitter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (ey emitterYAML) build() (Emitter, error) {
	var cfg engine.EmitterConfig
	var err error

	if cfg.Direction, err = vec3(ey.Direction, "direction"); err != nil {
		return Emitter{}, err
	}
	if cfg.Origin, err = vec3(ey.Origin, "origin"); err != nil {
		return Emitter{}, err
	}
	if cfg.ExternalAcceleration, err = vec3(ey.ExternalAccel, "external_acceleration"); err != nil {
		return Emitter{}, err
	}

	ranges := []struct {
		dst  *engine.FloatRange
		vals []float64
		name string
	}{
		{&cfg.Velocity, ey.Velocity, "velocity"},
		{&cfg.DirectionAngle, ey.DirectionAngle, "direction_angle"},
		{&cfg.VelocityAngle, ey.VelocityAngle, "velocity_angle"},
		{&cfg.Offset, ey.Offset, "offset"},
		{&cfg.OriginAcceleration, ey.OriginAcceleration, "origin_acceleration"},
		{&cfg.Age, ey.Age, "age"},
	}
	for _, r := range ranges {
		if *r.dst, err = floatRange(r.vals, r.name); err != nil {
			return Emitter{}, err
		}
	}

	if cfg.Burst, err = intRange(ey.Burst); err != nil {
		return Emitter{}, err
	}
	if cfg.StartColor, err = rgba(ey.StartColor, "start_color"); err != nil {
		return Emitter{}, err
	}
	if cfg.EndColor, err = rgba(ey.EndColor, "end_color"); err != nil {
		return Emitter{}, err
	}

	switch ey.Blend {
	case "", "alpha":
		cfg.Blend = engine.BlendAlpha
	case "additive":
		cfg.Blend = engine.BlendAdditive
	default:
		return Emitter{}, fmt.Errorf("unknown blend mode %q", ey.Blend)
	}

	if ey.Capacity == 0 {
		return Emitter{}, fmt.Errorf("capacity must be set")
	}
	cfg.Capacity = ey.Capacity
	cfg.EmissionRate = ey.EmissionRate
	cfg.Gravity = ey.Gravity
	cfg.Collision = ey.Collision

	size := ey.Size
	if size <= 0 {
		size = 0.3
	}

	return Emitter{Name: ey.Name, Sprite: ey.Sprite, Size: size, Config: cfg}, nil
}

func floatRange(vals []float64, name string) (engine.FloatRange, error) {
	switch len(vals) {
	case 0:
		return engine.FloatRange{}, nil
	case 2:
		return engine.FloatRange{Min: vals[0], Max: vals[1]}, nil
	}
	return engine.FloatRange{}, fmt.Errorf("%s: want [min, max], got %d values", name, len(vals))
}

func intRange(vals []int) (engine.IntRange, error) {
	switch len(vals) {
	case 0:
		return engine.IntRange{}, nil
	case 2:
		return engine.IntRange{Min: vals[0], Max: vals[1]}, nil
	}
	return engine.IntRange{}, fmt.Errorf("burst: want [min, max], got %d values", len(vals))
}

func vec3(vals []float64, name string) (engine.Vec3, error) {
	switch len(vals) {
	case 0:
		return engine.Vec3{}, nil
	case 3:
		return engine.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
	}
	return engine.Vec3{}, fmt.Errorf("%s: want [x, y, z], got %d values", name, len(vals))
}

func rgba(vals []int, name string) (engine.RGBA, error) {
	if len(vals) != 4 {
		return engine.RGBA{}, fmt.Errorf("%s: want [r, g, b, a], got %d values", name, len(vals))
	}
	for _, v := range vals {
		if v < 0 || v > 255 {
			return engine.RGBA{}, fmt.Errorf("%s: channel %d outside 0..255", name, v)
		}
	}
	return engine.RGBA{R: uint8(vals[0]), G: uint8(vals[1]), B: uint8(vals[2]), A: uint8(vals[3])}, nil
}
