// Package trial runs one genetic algorithm from a random population until it
// converges on the all-ones genome or exhausts its generation budget.
package trial

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wildfunctions/onemax_sweep/pkg/genome"
	"github.com/wildfunctions/onemax_sweep/pkg/strategy"
)

// epsilon matches the float64 machine epsilon.
const epsilon = 0x1p-52

// Config holds the parameters of a single trial.
type Config struct {
	Population              int
	GenomeLength            int
	Generations             int
	Operators               strategy.Operators
	TargetGenerationFitness float64

	// Logger receives a debug trace per generation. Nil disables tracing.
	Logger *zap.Logger
}

// Outcome is what a trial reports when it stops.
type Outcome struct {
	Generation        int     `json:"generation"`
	GenerationFitness float64 `json:"generation_fitness"`
	BestFitness       float64 `json:"best_fitness"`
}

// Run evolves a random population for at most cfg.Generations generations.
//
// A generation whose mean fitness reaches cfg.TargetGenerationFitness while
// also containing an all-ones genome stops the trial early and is returned
// as is. Otherwise the generation with the highest mean fitness is returned.
func Run(cfg Config, rng *rand.Rand) Outcome {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	population := genome.NewPopulation(rng, cfg.Population, cfg.GenomeLength)
	fitnesses := genome.PopulationFitness(population)

	var best Outcome
	bestPopulation := population

	for gen := 0; gen < cfg.Generations; gen++ {
		population = cfg.Operators.Evolve(population, fitnesses, cfg.Population, rng)
		fitnesses = genome.PopulationFitness(population)
		genFitness := genome.GenerationFitness(fitnesses, cfg.Population)
		genBest := genome.BestFitness(fitnesses)

		if ce := log.Check(zapcore.DebugLevel, "generation"); ce != nil {
			ce.Write(
				zap.Int("generation", gen),
				zap.Float64("best_fitness", genBest),
				zap.Float64("generation_fitness", genFitness),
			)
		}

		if genFitness >= best.GenerationFitness {
			best = Outcome{Generation: gen, GenerationFitness: genFitness, BestFitness: genBest}
			bestPopulation = population
		}

		if genFitness >= cfg.TargetGenerationFitness && math.Abs(genBest-genome.TargetFitness) < epsilon {
			logSolution(log, "ideal solution found", population, fitnesses, gen, genFitness)
			return Outcome{Generation: gen, GenerationFitness: genFitness, BestFitness: genBest}
		}
	}

	logSolution(log, "generation budget exhausted", bestPopulation,
		genome.PopulationFitness(bestPopulation), best.Generation, best.GenerationFitness)
	return best
}

func logSolution(log *zap.Logger, msg string, pop genome.Population, fitnesses []float64, gen int, genFitness float64) {
	ce := log.Check(zapcore.DebugLevel, msg)
	if ce == nil {
		return
	}
	idx := genome.BestIndex(fitnesses)
	if idx < 0 {
		ce.Write(zap.Int("generation", gen))
		return
	}
	ce.Write(
		zap.Int("generation", gen),
		zap.Stringer("best_solution", pop[idx]),
		zap.Float64("best_fitness", fitnesses[idx]),
		zap.Float64("generation_fitness", genFitness),
	)
}
