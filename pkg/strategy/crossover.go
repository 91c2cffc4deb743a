package strategy

import (
	"math/rand"

	"github.com/wildfunctions/onemax_sweep/pkg/genome"
)

// Crossover performs single-point crossover with probability rate, returning
// two new children that swap tails at a cut in [1, len-1]. Otherwise the
// children are copies of the parents. The parents are never modified.
func Crossover(a, b genome.Genome, rate float64, rng *rand.Rand) (genome.Genome, genome.Genome) {
	if rng.Float64() >= rate || len(a) < 2 {
		return a.Clone(), b.Clone()
	}

	cut := 1 + rng.Intn(len(a)-1)

	c1 := make(genome.Genome, 0, len(a))
	c1 = append(c1, a[:cut]...)
	c1 = append(c1, b[cut:]...)

	c2 := make(genome.Genome, 0, len(b))
	c2 = append(c2, b[:cut]...)
	c2 = append(c2, a[cut:]...)

	return c1, c2
}
