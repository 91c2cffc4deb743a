package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wildfunctions/onemax_sweep/pkg/grid"
	"github.com/wildfunctions/onemax_sweep/pkg/results"
	"github.com/wildfunctions/onemax_sweep/pkg/strategy"
)

// CellReport summarizes one evaluated grid cell.
type CellReport struct {
	Point   grid.Point       `json:"point"`
	Results *results.Results `json:"results"`
	Skipped int              `json:"skipped,omitempty"` // remaining cells of the row pruned after this one
}

// FinalReport summarizes the entire sweep.
type FinalReport struct {
	Config        Config           `json:"config"`
	BestPoint     grid.Point       `json:"best_point"`
	Best          *results.Results `json:"best"`
	Cells         []CellReport     `json:"cells,omitempty"`
	TotalCells    int              `json:"total_cells"`
	TargetReached bool             `json:"target_reached"`
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at"`
}

// WriteTextHeader writes the sweep parameters before the run starts.
func WriteTextHeader(w io.Writer, cfg Config) {
	mutations := cfg.Mutation.Values()
	crossovers := cfg.Crossover.Values()

	fmt.Fprintf(w, "Running %d times the one max problem with genetic algorithms for:\n", cfg.Runs)
	fmt.Fprintf(w, "    Generations:           %d\n", cfg.Generations)
	fmt.Fprintf(w, "    Population Size:       %d\n", cfg.Population)
	fmt.Fprintf(w, "    Genome Length:         %d\n", cfg.GenomeLength)
	fmt.Fprintf(w, "    Parent selection mode: %s\n", strategy.ParseMode(cfg.Selection))
	fmt.Fprintf(w, "    Mutation Rate:         %.4f to %.4f\n", mutations[0], mutations[len(mutations)-1])
	fmt.Fprintf(w, "    Crossover Rate:        %.4f to %.4f\n", crossovers[0], crossovers[len(crossovers)-1])
	fmt.Fprintf(w, "    Workers:               %d\n", cfg.Workers)
	fmt.Fprintf(w, "    Seed:                  %d\n", cfg.Seed)
}

// sortByScore returns a copy of cells sorted by score descending.
func sortByScore(cells []CellReport) []CellReport {
	sorted := make([]CellReport, len(cells))
	copy(sorted, cells)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Results.Score > sorted[j].Results.Score
	})
	return sorted
}

// WriteCellTable writes every evaluated cell, best score first.
func WriteCellTable(w io.Writer, cells []CellReport) {
	fmt.Fprintln(w, "\n--- Evaluated cells ---")
	for i, c := range sortByScore(cells) {
		pruned := ""
		if c.Skipped > 0 {
			pruned = fmt.Sprintf(" (pruned %d)", c.Skipped)
		}
		fmt.Fprintf(w, "  #%d: mutation %.4f crossover %.4f | score %.4f | best %.3f | avg gens %.1f%s\n",
			i+1, c.Point.MutationRate, c.Point.CrossoverRate, c.Results.Score,
			c.Results.BestFitness, c.Results.AvgGeneration, pruned)
	}
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	if len(r.Cells) > 0 && r.Config.Verbose {
		WriteCellTable(w, r.Cells)
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintln(w, "\tBest results")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Best Mutation Rate: %g\n", r.BestPoint.MutationRate)
	fmt.Fprintf(w, "Best Crossover Rate: %g\n", r.BestPoint.CrossoverRate)
	r.Best.WriteSummary(w)
	fmt.Fprintf(w, "Cells Evaluated:        %d of %d\n", len(r.Cells), r.TotalCells)
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
