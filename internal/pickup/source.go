package pickup

import "math/rand/v2"

// Source yields uniform values in [0,1).
type Source interface {
	Float64() float64
}

// SeededSource returns a reproducible PCG source.
func SeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeeded returns a generator with a reproducible PCG source.
func NewSeeded(seed uint64) *Generator {
	return New(SeededSource(seed), nil)
}

// NewRandom returns a generator seeded from the runtime's entropy.
func NewRandom() *Generator {
	return NewSeeded(rand.Uint64())
}
