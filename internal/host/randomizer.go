package host

// Randomizer is the host simulation's shared deterministic random stream.
// Every draw advances the stream by exactly one step; callers substituting
// their own selection for the host's must still consume exactly one value,
// or recorded simulations desynchronize.
type Randomizer struct {
	state uint64
}

func NewRandomizer(seed uint64) *Randomizer {
	return &Randomizer{state: seed}
}

// Int32 returns a uniform value in [0, n). n == 0 returns 0. One step.
func (r *Randomizer) Int32(n uint32) uint32 {
	v := r.next()
	if n == 0 {
		return 0
	}
	return uint32(v % uint64(n))
}

func (r *Randomizer) next() uint64 {
	// 64-bit LCG (Knuth MMIX constants), high bits used.
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state >> 16
}
