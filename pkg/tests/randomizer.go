package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	random *rand.Rand
}

func NewRandomizer() Randomizer {
	return Randomizer{
		random: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // for tests
	}
}

func (r Randomizer) Float64() float64 {
	return r.random.Float64()
}

// Features returns n positive measurements spread over a few orders of
// magnitude, like the area and smoothness columns of a real sample.
func (r Randomizer) Features(n int) []float64 {
	features := make([]float64, n)

	for i := range features {
		scale := []float64{0.01, 1, 100, 1000}[r.random.Intn(4)] //nolint:mnd // skip
		features[i] = r.random.Float64() * scale
	}

	return features
}
