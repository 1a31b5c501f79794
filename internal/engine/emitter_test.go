package engine

import "testing"

func TestCapacityBoundHolds(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 10
	cfg.EmissionRate = 1000
	cfg.Burst = IntRange{Min: 8, Max: 8}
	cfg.Age = FloatRange{Min: 0.01, Max: 0.05}

	e := NewEmitter(cfg, 99)
	e.Start()
	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			e.Burst()
		}
		e.Update(0.016)
		if n := e.ActiveCount(); n > 10 {
			t.Fatalf("tick %d: %d active slots, capacity 10", i, n)
		}
	}
}

func TestSpawnBudgetConservedAcrossTickPartitions(t *testing.T) {
	const rate = 7
	const total = 3.0 // seconds

	partitions := map[string][]float64{
		"coarse":  {1.0, 1.0, 1.0},
		"fine":    repeat(0.01, 300),
		"uneven":  {0.5, 0.25, 1.25, 0.75, 0.25},
		"single":  {3.0},
		"sixlong": repeat(0.5, 6),
	}

	for name, steps := range partitions {
		cfg := baseConfig()
		cfg.Capacity = 1000
		cfg.EmissionRate = rate
		cfg.Age = FloatRange{Min: 1000, Max: 1000} // nothing expires during the run

		e := NewEmitter(cfg, 5)
		e.Start()
		for _, dt := range steps {
			e.Update(dt)
		}

		// Nothing expired, so active slots == spawns attempted.
		got := e.ActiveCount()
		want := int(rate * total)
		if got < want-1 || got > want+1 {
			t.Errorf("%s: spawned %d particles over %vs at %d/s, want %d (±1)", name, got, total, rate, want)
		}
	}
}

func TestSubUnitEmissionAccumulates(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 10
	cfg.EmissionRate = 1
	cfg.Age = FloatRange{Min: 1000, Max: 1000}

	e := NewEmitter(cfg, 5)
	e.Start()

	// 0.3s ticks at 1/s: nothing until the accumulator crosses a whole unit.
	spawnedAt := -1
	for i := 1; i <= 4; i++ {
		e.Update(0.3)
		if e.ActiveCount() > 0 && spawnedAt < 0 {
			spawnedAt = i
		}
	}
	if spawnedAt != 4 {
		t.Errorf("first spawn after tick %d, want 4 (accumulator at 1.2)", spawnedAt)
	}
	if n := e.ActiveCount(); n != 1 {
		t.Errorf("spawned %d, want 1", n)
	}
}

func TestStopIsIdempotentAndDrains(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 50
	cfg.EmissionRate = 100
	cfg.Age = FloatRange{Min: 0.2, Max: 0.2}

	e := NewEmitter(cfg, 12)
	e.Start()
	e.Update(0.1)
	if e.ActiveCount() == 0 {
		t.Fatal("no particles spawned before Stop")
	}

	e.Stop()
	e.Stop() // repeated stops are harmless
	peak := e.ActiveCount()
	for i := 0; i < 50; i++ {
		e.Update(0.05)
		if n := e.ActiveCount(); n > peak {
			t.Fatalf("spawned after Stop: %d > %d", n, peak)
		}
	}
	if n := e.ActiveCount(); n != 0 {
		t.Errorf("%d particles still active after draining", n)
	}
}

func TestBurstFillsThenExhaustsPool(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 10
	cfg.Burst = IntRange{Min: 5, Max: 5}
	cfg.Age = FloatRange{Min: 1000, Max: 1000}

	e := NewEmitter(cfg, 3)

	e.Burst()
	if n := e.ActiveCount(); n != 5 {
		t.Fatalf("first burst: %d active, want 5", n)
	}
	e.Burst()
	if n := e.ActiveCount(); n != 10 {
		t.Fatalf("second burst: %d active, want 10", n)
	}
	e.Burst()
	if n := e.ActiveCount(); n != 10 {
		t.Errorf("third burst on a full pool: %d active, want 10", n)
	}
}

func TestFreshSpawnsAdvanceInTheirSpawnTick(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 4
	cfg.EmissionRate = 1000
	cfg.Age = FloatRange{Min: 10, Max: 10}

	e := NewEmitter(cfg, 8)
	e.Start()

	const dt = 0.016
	n := e.Update(dt)
	if n != 4 {
		t.Fatalf("Update returned %d, want 4 (all spawned and advanced)", n)
	}
	for i := range e.particles {
		if e.particles[i].age != dt {
			t.Errorf("slot %d: age = %v after its spawn tick, want %v", i, e.particles[i].age, dt)
		}
	}
}

func TestUpdateCountsAdvancedSlots(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 10
	cfg.Burst = IntRange{Min: 6, Max: 6}
	cfg.Age = FloatRange{Min: 1000, Max: 1000}

	e := NewEmitter(cfg, 21)
	e.Burst()
	if n := e.Update(0.016); n != 6 {
		t.Errorf("Update returned %d, want 6", n)
	}
	// Not emitting: the inactive slots contribute nothing.
	if n := e.Update(0.016); n != 6 {
		t.Errorf("second Update returned %d, want 6", n)
	}
}

func TestSetOriginMovesScaleReferenceOnly(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 1
	cfg.Burst = IntRange{Min: 1, Max: 1}
	cfg.Velocity = FloatRange{}
	cfg.Age = FloatRange{Min: 1000, Max: 1000}
	cfg.OriginAcceleration = FloatRange{Min: 3, Max: 3}

	e := NewEmitter(cfg, 2)
	e.Burst()

	far := Vec3{X: 100}
	e.SetOrigin(far)
	e.Update(0.1)

	p := &e.particles[0]

	// Scale reads the live config origin, 100 units away.
	d := p.position.Distance(far)
	want := 1.0 / (d*0.1 + 1.0)
	if diff := p.scale - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("scale = %v, want %v against the relocated origin", p.scale, want)
	}

	// The restoring pull still targets the captured spawn origin, so the
	// particle does not accelerate toward the new one.
	if p.velocity.X != 0 {
		t.Errorf("velocity.X = %v, particle is chasing the relocated origin", p.velocity.X)
	}
}

func TestLargePoolParallelPath(t *testing.T) {
	cfg := baseConfig()
	cfg.Capacity = 4096 // well past the serial threshold
	cfg.Burst = IntRange{Min: 4096, Max: 4096}
	cfg.Age = FloatRange{Min: 1000, Max: 1000}
	cfg.Velocity = FloatRange{Min: 1, Max: 2}

	e := NewEmitter(cfg, 77)
	e.Burst()
	if n := e.Update(0.016); n != 4096 {
		t.Errorf("parallel Update returned %d, want 4096", n)
	}
	if n := e.ActiveCount(); n != 4096 {
		t.Errorf("%d active after parallel Update, want 4096", n)
	}
}

func repeat(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
