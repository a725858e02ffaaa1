package vmath

// FastRand is a xorshift64 generator shared by spawners and synthetic sources
// Not safe for concurrent use; each owner keeps its own instance
type FastRand struct {
	state uint64
}

// NewFastRand seeds a generator, zero is remapped since xorshift would stick at zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// Next advances the state and returns the raw value
func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), zero for non-positive n
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IntRange returns a value in [lo, hi], both inclusive
func (r *FastRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	// 53 significant bits
	return float64(r.Next()>>11) / (1 << 53)
}
