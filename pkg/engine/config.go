package engine

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/wildfunctions/onemax_sweep/pkg/grid"
)

// Config holds all parameters for a hyperparameter sweep.
type Config struct {
	Runs                    int        `yaml:"runs" json:"runs"`
	Generations             int        `yaml:"generations" json:"generations"`
	Population              int        `yaml:"population" json:"population"`
	GenomeLength            int        `yaml:"genome_length" json:"genome_length"`
	Selection               string     `yaml:"selection" json:"selection"` // "tournament" or "roulette"; anything else is tournament
	TargetGenerationFitness float64    `yaml:"target_generation_fitness" json:"target_generation_fitness"`
	TargetProblemFitness    float64    `yaml:"target_problem_fitness" json:"target_problem_fitness"`
	Mutation                grid.Range `yaml:"mutation" json:"mutation"`
	Crossover               grid.Range `yaml:"crossover" json:"crossover"`
	Workers                 int        `yaml:"workers" json:"workers"`
	Seed                    int64      `yaml:"seed" json:"seed"`
	Format                  string     `yaml:"format" json:"format"` // "text" or "json"
	Verbose                 bool       `yaml:"verbose" json:"verbose"`
	TraceTrials             bool       `yaml:"trace_trials" json:"trace_trials"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Runs:                    10,
		Generations:             500,
		Population:              90,
		GenomeLength:            25,
		Selection:               "tournament",
		TargetGenerationFitness: 0.995,
		TargetProblemFitness:    0.999,
		Mutation:                grid.Range{Min: 0.001, Max: 0.01, Count: 8, Invert: true},
		Crossover:               grid.Range{Min: 0.1, Max: 0.6, Count: 5},
		Workers:                 DefaultWorkers(),
		Seed:                    0, // 0 = random
		Format:                  "text",
	}
}

// DefaultWorkers leaves two logical CPUs free, but never returns less than 1.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 2
	if n < 1 {
		n = 1
	}
	return n
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Runs < 1:
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	case c.Generations < 1:
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	case c.Population < 1:
		return fmt.Errorf("population must be positive, got %d", c.Population)
	case c.GenomeLength < 1:
		return fmt.Errorf("genome length must be positive, got %d", c.GenomeLength)
	}
	if err := validateRange("mutation", c.Mutation); err != nil {
		return err
	}
	if err := validateRange("crossover", c.Crossover); err != nil {
		return err
	}
	if c.Format != "" && c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("unknown output format: %s (available: text, json)", c.Format)
	}
	return nil
}

var errRateOutOfRange = errors.New("rate must be within [0, 1]")

func validateRange(name string, r grid.Range) error {
	if r.Min < 0 || r.Min > 1 || r.Max < 0 || r.Max > 1 {
		return fmt.Errorf("%s range [%g, %g]: %w", name, r.Min, r.Max, errRateOutOfRange)
	}
	return nil
}
