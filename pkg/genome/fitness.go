package genome

import "math"

// TargetFitness is the fitness of a genome made only of ones.
const TargetFitness = 1.0

// Fitness returns the fraction of genes set to 1. An empty genome scores 0.
func Fitness(g Genome) float64 {
	f := float64(g.Ones()) / float64(len(g))
	if math.IsNaN(f) {
		return 0.0
	}
	return f
}

// PopulationFitness scores every genome, preserving order.
func PopulationFitness(pop Population) []float64 {
	fitnesses := make([]float64, len(pop))
	for i, g := range pop {
		fitnesses[i] = Fitness(g)
	}
	return fitnesses
}

// BestFitness returns the largest value, or -Inf for an empty slice.
func BestFitness(fitnesses []float64) float64 {
	best := math.Inf(-1)
	for _, f := range fitnesses {
		best = math.Max(best, f)
	}
	return best
}

// BestIndex returns the index of the first genome holding the best fitness, or -1.
func BestIndex(fitnesses []float64) int {
	idx := -1
	best := math.Inf(-1)
	for i, f := range fitnesses {
		if f > best {
			best = f
			idx = i
		}
	}
	return idx
}

// GenerationFitness is the mean fitness over populationSize genomes.
// A zero population size or a NaN sum yields 0.
func GenerationFitness(fitnesses []float64, populationSize int) float64 {
	if populationSize == 0 {
		return 0.0
	}
	var sum float64
	for _, f := range fitnesses {
		sum += f
	}
	sum /= float64(populationSize)
	if math.IsNaN(sum) {
		return 0.0
	}
	return sum
}
