package strategy

import (
	"math/rand"

	"github.com/wildfunctions/onemax_sweep/pkg/genome"
)

// Mutate returns a copy of g with each gene flipped independently with
// probability rate.
func Mutate(g genome.Genome, rate float64, rng *rand.Rand) genome.Genome {
	m := g.Clone()
	for i := range m {
		if rng.Float64() < rate {
			m[i] ^= 1
		}
	}
	return m
}
