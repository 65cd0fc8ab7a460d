package hostile

import (
	"math/rand"
	"time"
)

// Rand is the single random source a Manager draws from. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

func newDefaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// uniform returns a value in [lo, hi).
func uniform(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// between returns an integer in [lo, hi].
func between(r Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(r.Intn(int(hi-lo+1)))
}

func chance(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

func coin(r Rand) float64 {
	if r.Intn(2) == 0 {
		return -1
	}
	return 1
}
