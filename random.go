package sort_bench

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Random is the pseudorandom source shared by the generators and the random
// quicksort pivot. It is seeded once at construction and never reseeded.
// Not safe for concurrent use.
type Random struct {
	seed int64
	r    *rand.Rand
}

// NewRandom returns a source seeded with seed. If seed is 0, a seed is drawn
// from the system entropy source (falling back to the clock), so each run
// differs. A non-zero seed gives reproducible results.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = entropySeed()
	}
	return &Random{seed: seed, r: rand.New(rand.NewSource(seed))}
}

func entropySeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// Seed returns the seed the source was created with.
func (r *Random) Seed() int64 {
	return r.seed
}

func (r *Random) Intn(n int) int {
	return r.r.Intn(n)
}

// IntRange returns a uniform integer in [lo, hi].
func (r *Random) IntRange(lo, hi int) int {
	return lo + r.r.Intn(hi-lo+1)
}

// FloatRange returns a uniform float in [lo, hi).
func (r *Random) FloatRange(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}
