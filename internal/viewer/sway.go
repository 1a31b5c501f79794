package viewer

import (
	"github.com/aquilax/go-perlin"

	"github.com/Behrtron/pyre/internal/engine"
)

// Sway drifts the shared emitter origin with smooth noise so the flame
// column wanders like a real fire instead of standing rigid. It feeds the
// engine exclusively through SetOrigin, the one sanctioned config mutation.
type Sway struct {
	noise *perlin.Perlin
	base  engine.Vec3
	amp   float64
}

func NewSway(base engine.Vec3, amp float64, seed int64) *Sway {
	return &Sway{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		base:  base,
		amp:   amp,
	}
}

// At returns the swayed origin at time t (seconds).
func (s *Sway) At(t float64) engine.Vec3 {
	return engine.Vec3{
		X: s.base.X + s.noise.Noise2D(t*0.35, 0)*s.amp,
		Y: s.base.Y,
		Z: s.base.Z + s.noise.Noise2D(0, t*0.35+7.3)*s.amp,
	}
}
