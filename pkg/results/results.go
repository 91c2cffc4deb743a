// Package results accumulates trial outcomes for one rate pair and reduces
// them to a single weighted score.
package results

import (
	"fmt"
	"io"

	"github.com/wildfunctions/onemax_sweep/pkg/trial"
)

// Score weights.
const (
	WeightBestFitness      = 0.4
	WeightAvgGeneration    = 0.1
	WeightAvgGenerationFit = 0.3
	WeightAvgBestFitness   = 0.2
)

// Results is an append-only accumulator. Every Add recomputes all aggregates,
// so reads are always consistent with the outcomes added so far.
// It is not safe for concurrent use.
type Results struct {
	MaxGenerations int     `json:"max_generations"`
	MaxFitness     float64 `json:"max_fitness"`

	Outcomes []trial.Outcome `json:"outcomes"`

	AvgGeneration        float64 `json:"avg_generation"`
	AvgGenerationFitness float64 `json:"avg_generation_fitness"`
	AvgBestFitness       float64 `json:"avg_best_fitness"`
	BestFitness          float64 `json:"best_fitness"`
	Score                float64 `json:"score"`
}

// New returns an empty accumulator.
func New(maxGenerations int, maxFitness float64) *Results {
	r := &Results{MaxGenerations: maxGenerations, MaxFitness: maxFitness}
	r.recompute()
	return r
}

// Add appends an outcome and refreshes the aggregates and score.
func (r *Results) Add(o trial.Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.recompute()
}

// Len returns the number of outcomes added.
func (r *Results) Len() int { return len(r.Outcomes) }

// Clone returns a deep copy.
func (r *Results) Clone() *Results {
	c := *r
	c.Outcomes = append([]trial.Outcome(nil), r.Outcomes...)
	return &c
}

func (r *Results) recompute() {
	n := len(r.Outcomes)
	if n == 0 {
		r.AvgGeneration = float64(r.MaxGenerations)
		r.AvgGenerationFitness = 0
		r.AvgBestFitness = 0
		r.BestFitness = 0
		r.Score = 0
		return
	}

	var sumGen, sumGenFit, sumBest float64
	best := r.Outcomes[0].BestFitness
	for _, o := range r.Outcomes {
		sumGen += float64(o.Generation)
		sumGenFit += o.GenerationFitness
		sumBest += o.BestFitness
		if o.BestFitness > best {
			best = o.BestFitness
		}
	}

	r.AvgGeneration = sumGen / float64(n)
	r.AvgGenerationFitness = sumGenFit / float64(n)
	r.AvgBestFitness = sumBest / float64(n)
	r.BestFitness = best
	r.Score = r.score()
}

// score is deliberately unclamped: an average generation far beyond
// MaxGenerations drives the generation term, and the score, negative.
func (r *Results) score() float64 {
	bestTerm := r.BestFitness / r.MaxFitness
	genTerm := 1.0 - (r.AvgGeneration-1.0)/float64(r.MaxGenerations)
	avgBestTerm := r.AvgBestFitness / r.MaxFitness

	return WeightBestFitness*bestTerm +
		WeightAvgGeneration*genTerm +
		WeightAvgGenerationFit*r.AvgGenerationFitness +
		WeightAvgBestFitness*avgBestTerm
}

// WriteSummary prints the aggregates in human-readable form.
func (r *Results) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Overall Score:          %.3f\n", r.Score)
	fmt.Fprintf(w, "Best Fitness:           %g\n", r.BestFitness)
	fmt.Fprintf(w, "Avg Generation Fitness: %.3f\n", r.AvgGenerationFitness)
	fmt.Fprintf(w, "Avg Best Fitness:       %.3f\n", r.AvgBestFitness)
	fmt.Fprintf(w, "Avg Generations Run:    %.3f of %d\n", r.AvgGeneration, r.MaxGenerations)
}
