package engine

import "sync"

// ParticleSystem composes independently configured emitters into one
// steppable unit. It exclusively owns every registered emitter; emitters
// never interact, so Update is a pure fan-out/fan-in.
type ParticleSystem struct {
	emitters []*Emitter
}

// Register takes ownership of the emitter and appends it in registration
// order.
func (s *ParticleSystem) Register(e *Emitter) {
	s.emitters = append(s.emitters, e)
}

func (s *ParticleSystem) Emitters() []*Emitter { return s.emitters }

func (s *ParticleSystem) Start() {
	for _, e := range s.emitters {
		e.Start()
	}
}

func (s *ParticleSystem) Stop() {
	for _, e := range s.emitters {
		e.Stop()
	}
}

func (s *ParticleSystem) Burst() {
	for _, e := range s.emitters {
		e.Burst()
	}
}

// SetOrigin re-points every emitter's spawn origin.
func (s *ParticleSystem) SetOrigin(origin Vec3) {
	for _, e := range s.emitters {
		e.SetOrigin(origin)
	}
}

// Update steps every emitter by dt, in parallel, and returns the summed
// per-emitter counts. Order across emitters is unobservable since addition
// commutes and each emitter owns its state outright.
func (s *ParticleSystem) Update(dt float64) int {
	if len(s.emitters) == 0 {
		return 0
	}
	if len(s.emitters) == 1 {
		return s.emitters[0].Update(dt)
	}

	counts := make([]int, len(s.emitters))
	var wg sync.WaitGroup
	for i, e := range s.emitters {
		wg.Add(1)
		go func(i int, e *Emitter) {
			defer wg.Done()
			counts[i] = e.Update(dt)
		}(i, e)
	}
	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
