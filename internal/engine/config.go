package engine

// BlendMode tags how an emitter's particles composite. The core never
// interprets it; the renderer does.
type BlendMode uint8

const (
	BlendAlpha    BlendMode = iota // standard alpha blend (smoke, dust)
	BlendAdditive                  // additive blend (fire, embers, glow)
)

// ModelRef is an opaque handle to the visual model drawn for each of an
// emitter's particles. The core only carries it through to the renderer.
type ModelRef uint32

// EmitterConfig describes one emitter: spawn kinematics, lifetime
// distribution, pool capacity, emission rate, forces, fade endpoints, and
// collision behavior. It is captured at emitter construction and never
// mutated afterwards, with one exception: origin relocation through
// Emitter.SetOrigin. No field is validated; behavior is defined only for
// well-formed values (range Min <= Max, Capacity > 0).
type EmitterConfig struct {
	// Direction is the base emission direction. Normalized to unit length
	// when the emitter is constructed.
	Direction Vec3

	Velocity           FloatRange // initial speed along the spawn direction
	DirectionAngle     FloatRange // pitch jitter, degrees
	VelocityAngle      FloatRange // yaw jitter, degrees
	Offset             FloatRange // spawn distance from origin along the spawn direction
	OriginAcceleration FloatRange // restoring pull toward the origin, per particle
	Age                FloatRange // particle lifetime, seconds

	Burst IntRange // one-shot spawn amount for Burst()

	Capacity     uint // pool size, fixed at construction
	EmissionRate uint // particles per second while emitting

	Origin               Vec3 // spawn point and scale reference
	ExternalAcceleration Vec3 // constant acceleration, captured per particle at spawn

	StartColor RGBA
	EndColor   RGBA

	Blend BlendMode
	Model ModelRef

	Gravity   float64
	Collision bool // bounce off the ground plane at y = 0
}
