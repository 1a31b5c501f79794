package engine

import (
	"runtime"
	"sync"
)

// parallelMinSlots is the pool size below which Update skips the worker
// fan-out; goroutine overhead dominates for tiny pools.
const parallelMinSlots = 256

// Emitter owns a fixed pool of particle slots plus the emission schedule
// that decides which slots (re)spawn each tick. The pool is sized once at
// construction and never grows; the number of active slots can therefore
// never exceed the configured capacity.
//
// Update may be called from multiple emitters concurrently (each emitter
// exclusively owns its slots and RNG), but the caller must not invoke
// SetOrigin, Start, Stop, or Burst on an emitter while its Update is in
// flight.
type Emitter struct {
	cfg       EmitterConfig
	particles []Particle

	// mustEmit carries the fractional spawn budget across ticks, so an
	// emission rate of 0.5/s yields one spawn every two seconds instead of
	// rounding to zero every tick.
	mustEmit   float64
	isEmitting bool

	rng *Rand
}

// NewEmitter allocates the slot pool and normalizes the configured
// direction. The config is copied; later edits by the caller are invisible.
func NewEmitter(cfg EmitterConfig, seed uint64) *Emitter {
	cfg.Direction = cfg.Direction.Normalize()
	return &Emitter{
		cfg:       cfg,
		particles: make([]Particle, cfg.Capacity),
		rng:       NewRand(seed),
	}
}

func (e *Emitter) Start() { e.isEmitting = true }
func (e *Emitter) Stop()  { e.isEmitting = false }

// SetOrigin re-points the configured spawn origin. Live particles keep
// pulling toward their captured spawn-time origin; only the scale reference
// and future spawns move.
func (e *Emitter) SetOrigin(origin Vec3) { e.cfg.Origin = origin }

// Config returns a copy of the emitter's configuration. The original is
// only mutable through SetOrigin.
func (e *Emitter) Config() EmitterConfig { return e.cfg }

func (e *Emitter) Capacity() int { return len(e.particles) }

func (e *Emitter) ActiveCount() int {
	n := 0
	for i := range e.particles {
		if e.particles[i].active {
			n++
		}
	}
	return n
}

// Burst spawns a sampled amount of particles immediately, ignoring the
// emission rate. Slots are claimed in index order; if fewer inactive slots
// remain than requested, the burst silently spawns fewer.
func (e *Emitter) Burst() {
	amount := e.cfg.Burst.Sample(e.rng)
	for i := range e.particles {
		if amount <= 0 {
			return
		}
		p := &e.particles[i]
		if !p.active {
			p.Init(&e.cfg, e.rng)
			amount--
		}
	}
}

// Update advances the pool by dt and returns how many slots were touched:
// already-active particles that stepped plus particles spawned this tick.
//
// Spawning runs as a sequential pre-pass: the integer part of the
// accumulated budget is claimed against inactive slots (index order) before
// any parallel work starts. That keeps the shared budget counters and the
// RNG draw order race-free by construction, and freshly spawned slots are
// active by the time the parallel pass runs, so they integrate in the same
// tick rather than lagging one behind.
func (e *Emitter) Update(dt float64) int {
	if e.isEmitting {
		e.mustEmit += dt * float64(e.cfg.EmissionRate)
		emitNow := int(e.mustEmit)
		for i := range e.particles {
			if emitNow == 0 {
				break
			}
			p := &e.particles[i]
			if p.active {
				continue
			}
			p.Init(&e.cfg, e.rng)
			emitNow--
			e.mustEmit--
		}
	}

	// Per-slot work is independent once spawning is done: each slot is
	// touched by exactly one worker and the config is read-only.
	if len(e.particles) < parallelMinSlots {
		return e.updateRange(dt, 0, len(e.particles))
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(e.particles) {
		workers = len(e.particles)
	}
	counts := make([]int, workers)
	chunk := (len(e.particles) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(e.particles) {
			hi = len(e.particles)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			counts[w] = e.updateRange(dt, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func (e *Emitter) updateRange(dt float64, lo, hi int) int {
	n := 0
	for i := lo; i < hi; i++ {
		p := &e.particles[i]
		if !p.active {
			continue
		}
		p.Update(dt, &e.cfg)
		n++
	}
	return n
}

// ParticleInstance is the per-particle render view handed to the drawing
// collaborator: world position, uniform scale, the age/ttl fraction, and
// the already-faded color.
type ParticleInstance struct {
	Position Vec3
	Scale    float64
	Fade     float64
	Color    RGBA
}

// AppendInstances appends a render instance for every currently active
// particle and returns the extended slice. Call between Update and the next
// Update; the buffer can be reused across frames to avoid allocation.
func (e *Emitter) AppendInstances(dst []ParticleInstance) []ParticleInstance {
	for i := range e.particles {
		p := &e.particles[i]
		if !p.active {
			continue
		}
		f := p.Fade()
		dst = append(dst, ParticleInstance{
			Position: p.position,
			Scale:    p.scale,
			Fade:     f,
			Color:    LinearFade(e.cfg.StartColor, e.cfg.EndColor, f),
		})
	}
	return dst
}
