package engine

// Rand is a tiny deterministic RNG (xorshift64*). Each emitter owns one so
// concurrent emitters never contend on shared random state.
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

// FloatRange is a closed interval [Min, Max] sampled uniformly per draw.
// Min <= Max is the caller's responsibility; a degenerate range always
// yields Min.
type FloatRange struct {
	Min, Max float64
}

func (fr FloatRange) Sample(r *Rand) float64 {
	if fr.Max <= fr.Min {
		return fr.Min
	}
	return fr.Min + (fr.Max-fr.Min)*r.Float64()
}

// IntRange is the integer counterpart of FloatRange, endpoints inclusive.
type IntRange struct {
	Min, Max int
}

func (ir IntRange) Sample(r *Rand) int {
	if ir.Max <= ir.Min {
		return ir.Min
	}
	return ir.Min + r.Intn(ir.Max-ir.Min+1)
}
