package strategy

import (
	"math/rand"

	"github.com/wildfunctions/onemax_sweep/pkg/genome"
)

const (
	tournamentMinShare = 0.6
	tournamentMaxShare = 0.8
)

// TournamentSize draws a tournament size uniformly between 60% and 80% of
// the population (both floored, inclusive), never below 1.
func TournamentSize(popSize int, rng *rand.Rand) int {
	lo := int(float64(popSize) * tournamentMinShare)
	hi := int(float64(popSize) * tournamentMaxShare)
	k := lo + rng.Intn(hi-lo+1)
	if k < 1 {
		k = 1
	}
	return k
}

// TournamentSelect samples k distinct individuals and returns a copy of the
// fittest. When several share the top fitness the last one sampled wins.
func TournamentSelect(pop genome.Population, fitnesses []float64, k int, rng *rand.Rand) genome.Genome {
	if k > len(pop) {
		k = len(pop)
	}
	sample := rng.Perm(len(pop))[:k]

	bestIdx := sample[0]
	for _, idx := range sample[1:] {
		if fitnesses[idx] >= fitnesses[bestIdx] {
			bestIdx = idx
		}
	}

	return pop[bestIdx].Clone()
}

// RouletteSelect picks an individual with probability proportional to its
// fitness. A population with zero total fitness always yields the first
// individual.
func RouletteSelect(pop genome.Population, fitnesses []float64, rng *rand.Rand) genome.Genome {
	var total float64
	for _, f := range fitnesses {
		total += f
	}
	if total == 0.0 {
		return pop[0].Clone()
	}

	pick := rng.Float64() * total
	var current float64
	for i, f := range fitnesses {
		current += f
		if current > pick {
			return pop[i].Clone()
		}
	}

	// rounding can leave the cumulative sum just short of pick
	return pop[0].Clone()
}
