package engine

// Particle is one reusable pool slot. A slot is either inert
// (active == false, available for spawning) or simulating a single
// particle's lifetime. Slots are recycled in place, never freed.
type Particle struct {
	origin        Vec3 // attractor point, copied from the config at spawn
	position      Vec3
	velocity      Vec3
	externalAccel Vec3 // captured at spawn; later config edits don't reach live particles

	originAccel float64 // restoring pull magnitude, sampled at spawn
	age         float64 // seconds since spawn
	ttl         float64 // sampled lifetime; expired once age > ttl
	scale       float64 // distance-based visual scale

	active bool
}

func (p *Particle) IsExpired() bool { return p.age > p.ttl }

func (p *Particle) Active() bool { return p.active }

func (p *Particle) Position() Vec3 { return p.position }

func (p *Particle) Scale() float64 { return p.scale }

// Fade returns the age/ttl interpolation fraction in [0, 1].
func (p *Particle) Fade() float64 {
	if p.ttl <= 0 {
		return 1
	}
	f := p.age / p.ttl
	if f > 1 {
		f = 1
	}
	return f
}

// Init (re)spawns the slot: the base direction is jittered by a sampled yaw
// then a sampled pitch, and velocity, offset, lifetime, and the restoring
// pull are all drawn fresh. A lifetime range including zero can produce a
// particle that expires on its first Update; that is permitted.
func (p *Particle) Init(cfg *EmitterConfig, r *Rand) {
	p.age = 0
	p.origin = cfg.Origin

	dir := rotate(cfg.Direction, cfg.DirectionAngle.Sample(r), cfg.VelocityAngle.Sample(r))

	p.velocity = dir.Scale(cfg.Velocity.Sample(r))
	p.position = cfg.Origin.Add(dir.Scale(cfg.Offset.Sample(r)))
	p.originAccel = cfg.OriginAcceleration.Sample(r)
	p.externalAccel = cfg.ExternalAcceleration
	p.ttl = cfg.Age.Sample(r)
	p.scale = 1
	p.active = true
}

// Update advances the particle by dt. Expiry is checked lazily after aging:
// an expired particle deactivates and takes no partial step, so it can
// outlive its nominal ttl by less than one dt. Integration is semi-implicit
// Euler (velocity first, then position).
//
// The restoring pull targets the origin captured at spawn, while the scale
// heuristic reads the live cfg.Origin — so SetOrigin moves the scale
// reference but not the attractor of already-live particles. Intentional.
func (p *Particle) Update(dt float64, cfg *EmitterConfig) {
	if !p.active {
		return
	}

	p.age += dt
	if p.IsExpired() {
		p.active = false
		return
	}

	p.velocity.Y -= cfg.Gravity * dt
	toOrigin := p.origin.Sub(p.position).Normalize()
	p.velocity = p.velocity.Add(toOrigin.Scale(p.originAccel * dt))
	p.velocity = p.velocity.Add(p.externalAccel.Scale(dt))
	p.position = p.position.Add(p.velocity.Scale(dt))

	if cfg.Collision && p.position.Y <= 0 {
		p.position.Y = 0
		p.velocity.Y *= -0.5 // simple bounce with energy loss
	}

	p.scale = 1.0 / (p.position.Distance(cfg.Origin)*0.1 + 1.0)
}
