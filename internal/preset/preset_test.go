package preset

import (
	"strings"
	"testing"

	"github.com/Behrtron/pyre/internal/engine"
)

const fireDoc = `
emitters:
  - name: fire
    sprite: soft
    direction: [0, 1, 0]
    velocity: [1, 2]
    direction_angle: [-10, 10]
    velocity_angle: [-5, 5]
    offset: [0, 0.5]
    origin_acceleration: [0.2, 0.5]
    age: [0.5, 1.5]
    burst: [0, 0]
    capacity: 500
    emission_rate: 200
    origin: [0, -2, 0]
    start_color: [255, 150, 0, 255]
    end_color: [255, 50, 0, 0]
    blend: additive
  - name: smoke
    capacity: 300
    emission_rate: 100
    direction: [0, 1, 0]
    velocity: [0.5, 1.5]
    age: [2, 4]
    start_color: [100, 100, 100, 150]
    end_color: [50, 50, 50, 0]
    blend: alpha
`

func TestLoadFireScene(t *testing.T) {
	emitters, err := Load(strings.NewReader(fireDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(emitters) != 2 {
		t.Fatalf("got %d emitters, want 2", len(emitters))
	}

	fire := emitters[0]
	if fire.Name != "fire" || fire.Sprite != "soft" {
		t.Errorf("fire identity = %q/%q", fire.Name, fire.Sprite)
	}
	cfg := fire.Config
	if cfg.Capacity != 500 || cfg.EmissionRate != 200 {
		t.Errorf("capacity/rate = %d/%d", cfg.Capacity, cfg.EmissionRate)
	}
	if cfg.Velocity != (engine.FloatRange{Min: 1, Max: 2}) {
		t.Errorf("velocity range = %+v", cfg.Velocity)
	}
	if cfg.Origin != (engine.Vec3{Y: -2}) {
		t.Errorf("origin = %+v", cfg.Origin)
	}
	if cfg.StartColor != (engine.RGBA{R: 255, G: 150, B: 0, A: 255}) {
		t.Errorf("start color = %+v", cfg.StartColor)
	}
	if cfg.Blend != engine.BlendAdditive {
		t.Errorf("blend = %v, want additive", cfg.Blend)
	}
	if emitters[1].Config.Blend != engine.BlendAlpha {
		t.Errorf("smoke blend = %v, want alpha", emitters[1].Config.Blend)
	}
}

func TestLoadedConfigDrivesAnEmitter(t *testing.T) {
	emitters, err := Load(strings.NewReader(fireDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	e := engine.NewEmitter(emitters[0].Config, 42)
	e.Start()
	e.Update(0.1) // 200/s over 0.1s
	if n := e.ActiveCount(); n != 20 {
		t.Errorf("spawned %d particles, want 20", n)
	}
}

func TestLoadRejectsMalformedDocs(t *testing.T) {
	cases := map[string]string{
		"empty":       `emitters: []`,
		"bad range":   "emitters:\n  - capacity: 10\n    velocity: [1, 2, 3]\n    start_color: [0,0,0,0]\n    end_color: [0,0,0,0]",
		"bad color":   "emitters:\n  - capacity: 10\n    start_color: [300, 0, 0, 0]\n    end_color: [0,0,0,0]",
		"bad blend":   "emitters:\n  - capacity: 10\n    start_color: [0,0,0,0]\n    end_color: [0,0,0,0]\n    blend: screen",
		"no capacity": "emitters:\n  - name: x\n    start_color: [0,0,0,0]\n    end_color: [0,0,0,0]",
		"not yaml":    `{{{`,
	}
	for name, doc := range cases {
		if _, err := Load(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: Load accepted a malformed document", name)
		}
	}
}
