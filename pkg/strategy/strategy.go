package strategy

import (
	"math/rand"

	"github.com/wildfunctions/onemax_sweep/pkg/genome"
)

// Mode identifies a parent selection scheme.
type Mode int

const (
	Tournament Mode = iota
	Roulette
)

// ParseMode maps a selection name to a Mode. Only "roulette" selects
// roulette; every other value, including the empty string, is tournament.
func ParseMode(name string) Mode {
	if name == "roulette" {
		return Roulette
	}
	return Tournament
}

func (m Mode) String() string {
	if m == Roulette {
		return "roulette"
	}
	return "tournament"
}

// Names returns the recognised selection names.
func Names() []string {
	return []string{Tournament.String(), Roulette.String()}
}

// Operators bundles the selection scheme with the crossover and mutation
// rates used to breed one generation from the previous one.
type Operators struct {
	Mode          Mode
	CrossoverRate float64
	MutationRate  float64
}

// Select picks one parent from the population according to o.Mode.
func (o Operators) Select(pop genome.Population, fitnesses []float64, rng *rand.Rand) genome.Genome {
	if o.Mode == Roulette {
		return RouletteSelect(pop, fitnesses, rng)
	}
	return TournamentSelect(pop, fitnesses, TournamentSize(len(pop), rng), rng)
}

// Evolve builds the next population of the given size. Parents are selected
// in pairs, crossed over and each child mutated. For an odd size the last
// slot is a single selected parent, mutated without crossover.
func (o Operators) Evolve(
	pop genome.Population,
	fitnesses []float64,
	size int,
	rng *rand.Rand,
) genome.Population {
	next := make(genome.Population, 0, size)

	for i := 0; i < size/2; i++ {
		p1 := o.Select(pop, fitnesses, rng)
		p2 := o.Select(pop, fitnesses, rng)
		c1, c2 := Crossover(p1, p2, o.CrossoverRate, rng)
		next = append(next, Mutate(c1, o.MutationRate, rng))
		next = append(next, Mutate(c2, o.MutationRate, rng))
	}
	if size%2 != 0 {
		p := o.Select(pop, fitnesses, rng)
		next = append(next, Mutate(p, o.MutationRate, rng))
	}

	return next
}
