package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/wildfunctions/onemax_sweep/pkg/genome"
	"github.com/wildfunctions/onemax_sweep/pkg/grid"
	"github.com/wildfunctions/onemax_sweep/pkg/results"
	"github.com/wildfunctions/onemax_sweep/pkg/strategy"
	"github.com/wildfunctions/onemax_sweep/pkg/trial"
)

// Progress receives the number of grid cells completed or skipped.
type Progress interface {
	Add(n int) error
}

type nopProgress struct{}

func (nopProgress) Add(int) error { return nil }

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithProgress sets the progress sink.
func WithProgress(p Progress) Option {
	return func(e *Engine) { e.progress = p }
}

// Engine sweeps the mutation/crossover grid.
type Engine struct {
	cfg      Config
	mode     strategy.Mode
	log      *zap.Logger
	progress Progress
	rng      *rand.Rand

	evaluate func(point grid.Point, waves []int) *results.Results
}

// New creates a new engine from the given config.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers()
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}

	e := &Engine{
		cfg:      cfg,
		mode:     strategy.ParseMode(cfg.Selection),
		log:      zap.NewNop(),
		progress: nopProgress{},
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}
	e.evaluate = e.runCell
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the effective configuration, with workers and seed resolved.
func (e *Engine) Config() Config { return e.cfg }

// TotalCells is the size of the full grid, before pruning.
func (e *Engine) TotalCells() int {
	return len(e.cfg.Mutation.Values()) * len(e.cfg.Crossover.Values())
}

// Run evaluates the grid and returns the final report.
//
// Mutation rates form the outer loop and crossover rates the inner one.
// Within a row, a cell whose score does not beat the previous cell's skips
// the rest of the row, on the assumption that score is unimodal in the
// crossover rate. Once the best score reaches TargetProblemFitness the
// current row is abandoned; later rows are still evaluated.
func (e *Engine) Run() FinalReport {
	mutations := e.cfg.Mutation.Values()
	crossovers := e.cfg.Crossover.Values()
	waves := grid.DistributeRunTimes(e.cfg.Workers, e.cfg.Runs)

	e.log.Info("starting sweep",
		zap.Int("cells", len(mutations)*len(crossovers)),
		zap.Int("runs", e.cfg.Runs),
		zap.Ints("waves", waves),
		zap.Int("workers", e.cfg.Workers),
		zap.Stringer("selection", e.mode),
		zap.Int64("seed", e.cfg.Seed),
	)

	report := FinalReport{
		Config:     e.cfg,
		TotalCells: len(mutations) * len(crossovers),
		Best:       results.New(e.cfg.Generations, genome.TargetFitness),
		StartedAt:  time.Now().UTC(),
	}
	var bestScore float64

	for _, mutation := range mutations {
		var prevRowScore float64

		for i, crossover := range crossovers {
			point := grid.Point{MutationRate: mutation, CrossoverRate: crossover}
			res := e.evaluate(point, waves)
			score := res.Score
			cell := CellReport{Point: point, Results: res}

			e.log.Debug("cell evaluated",
				zap.Float64("mutation_rate", mutation),
				zap.Float64("crossover_rate", crossover),
				zap.Float64("score", score),
				zap.Float64("best_fitness", res.BestFitness),
			)

			// ties go to the newer cell
			if score >= bestScore {
				report.BestPoint = point
				report.Best = res.Clone()
				bestScore = score
				e.log.Info("new best",
					zap.Float64("mutation_rate", mutation),
					zap.Float64("crossover_rate", crossover),
					zap.Float64("score", score),
				)
			}

			if i != 0 && score <= prevRowScore {
				cell.Skipped = len(crossovers) - i - 1
				report.Cells = append(report.Cells, cell)
				e.log.Debug("row pruned",
					zap.Float64("mutation_rate", mutation),
					zap.Float64("score", score),
					zap.Float64("previous_score", prevRowScore),
					zap.Int("skipped", cell.Skipped),
				)
				e.advance(len(crossovers) - i)
				break
			}

			prevRowScore = score
			report.Cells = append(report.Cells, cell)
			e.advance(1)

			// TODO(sweep): this only leaves the crossover row; the outer loop keeps going after the target is met.
			if bestScore >= e.cfg.TargetProblemFitness {
				report.TargetReached = true
				e.log.Info("target score reached",
					zap.Float64("score", bestScore),
					zap.Float64("target", e.cfg.TargetProblemFitness),
				)
				break
			}
		}
	}

	report.FinishedAt = time.Now().UTC()
	e.log.Info("sweep finished",
		zap.Int("cells_evaluated", len(report.Cells)),
		zap.Float64("best_mutation_rate", report.BestPoint.MutationRate),
		zap.Float64("best_crossover_rate", report.BestPoint.CrossoverRate),
		zap.Float64("best_score", report.Best.Score),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

// runCell runs cfg.Runs independent trials for one grid point, wave by wave.
// Each trial owns a private random source seeded from the engine's, and
// writes only its own slot; outcomes are folded in slot order once every
// wave has joined.
func (e *Engine) runCell(point grid.Point, waves []int) *results.Results {
	cfg := trial.Config{
		Population:   e.cfg.Population,
		GenomeLength: e.cfg.GenomeLength,
		Generations:  e.cfg.Generations,
		Operators: strategy.Operators{
			Mode:          e.mode,
			CrossoverRate: point.CrossoverRate,
			MutationRate:  point.MutationRate,
		},
		TargetGenerationFitness: e.cfg.TargetGenerationFitness,
	}
	if e.cfg.TraceTrials {
		cfg.Logger = e.log.Named("trial")
	}

	var outcomes []trial.Outcome
	for _, size := range waves {
		seeds := make([]int64, size)
		for i := range seeds {
			seeds[i] = e.rng.Int63()
		}

		wave := make([]trial.Outcome, size)
		p := pool.New().WithMaxGoroutines(size)
		for i := range wave {
			p.Go(func() {
				wave[i] = trial.Run(cfg, rand.New(rand.NewSource(seeds[i])))
			})
		}
		// a panicking trial is re-raised here and aborts the sweep
		p.Wait()

		outcomes = append(outcomes, wave...)
	}

	res := results.New(e.cfg.Generations, genome.TargetFitness)
	for _, o := range outcomes {
		res.Add(o)
	}
	return res
}

func (e *Engine) advance(n int) {
	if err := e.progress.Add(n); err != nil {
		e.log.Warn("progress update failed", zap.Error(err))
	}
}
