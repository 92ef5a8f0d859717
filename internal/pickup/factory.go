package pickup

import (
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// Factory hands out one generator per metric key. With a Seed every key gets
// its own reproducible stream; without one each generator draws fresh
// randomness.
type Factory struct {
	Seed *uint64
	// Now is the clock used for the as-of date; nil means time.Now.
	Now func() time.Time
}

// For returns a new generator for key.
func (f Factory) For(key string) *Generator {
	if f.Seed == nil {
		return New(SeededSource(rand.Uint64()), f.Now)
	}
	return New(SeededSource(SeedFor(*f.Seed, key)), f.Now)
}

// SeedFor mixes a metric key into a base seed.
func SeedFor(seed uint64, key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return seed ^ h.Sum64()
}
