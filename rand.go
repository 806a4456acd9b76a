package beanfall

import (
	"math/rand/v2"
	"time"
)

// Rand is the seeded generator every randomized particle field is drawn
// from. Two generators built from the same seed produce the same sequence,
// so a fixed seed reproduces a field exactly.
type Rand struct {
	seed uint64
	r    *rand.Rand
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *Rand {
	return &Rand{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewTimeRand seeds a generator from the wall clock. Use it when
// reproducibility does not matter.
func NewTimeRand() *Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Seed returns the seed the generator was created with.
func (r *Rand) Seed() uint64 {
	return r.seed
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Range returns a value in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return min + r.r.Float64()*(max-min)
}

// Signed returns a value in [-half, half), the (Math.random()-0.5)*2h idiom.
func (r *Rand) Signed(half float64) float64 {
	return (r.r.Float64() - 0.5) * 2 * half
}
