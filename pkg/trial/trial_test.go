package trial

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wildfunctions/onemax_sweep/pkg/strategy"
)

func testConfig() Config {
	return Config{
		Population:   50,
		GenomeLength: 30,
		Generations:  500,
		Operators: strategy.Operators{
			Mode:          strategy.Tournament,
			CrossoverRate: 0.8,
			MutationRate:  0.01,
		},
		TargetGenerationFitness: 0.995,
	}
}

func assertInRange(t *testing.T, o Outcome, maxGen int) {
	t.Helper()
	assert.GreaterOrEqual(t, o.Generation, 0)
	assert.LessOrEqual(t, o.Generation, maxGen)
	assert.GreaterOrEqual(t, o.GenerationFitness, 0.0)
	assert.LessOrEqual(t, o.GenerationFitness, 1.0)
	assert.GreaterOrEqual(t, o.BestFitness, 0.0)
	assert.LessOrEqual(t, o.BestFitness, 1.0)
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig()
	for seed := int64(1); seed <= 5; seed++ {
		o := Run(cfg, rand.New(rand.NewSource(seed)))
		assertInRange(t, o, cfg.Generations)
		t.Logf("seed %d: gen %d, generation fitness %.3f, best %.3f",
			seed, o.Generation, o.GenerationFitness, o.BestFitness)
	}
}

func TestRun_Roulette(t *testing.T) {
	cfg := testConfig()
	cfg.Operators.Mode = strategy.Roulette
	cfg.Generations = 100
	o := Run(cfg, rand.New(rand.NewSource(42)))
	assertInRange(t, o, cfg.Generations)
}

func TestRun_EarlyStopOnTarget(t *testing.T) {
	cfg := testConfig()
	cfg.GenomeLength = 8
	cfg.TargetGenerationFitness = 0.5

	o := Run(cfg, rand.New(rand.NewSource(42)))
	assert.Less(t, o.Generation, cfg.Generations-1)
	assert.GreaterOrEqual(t, o.GenerationFitness, cfg.TargetGenerationFitness)
	assert.InDelta(t, 1.0, o.BestFitness, 1e-12)
}

func TestRun_ExhaustionReturnsBestGeneration(t *testing.T) {
	cfg := testConfig()
	cfg.Generations = 30
	cfg.TargetGenerationFitness = 2.0 // unreachable

	for seed := int64(1); seed <= 20; seed++ {
		core, logs := observer.New(zapcore.DebugLevel)
		cfg.Logger = zap.New(core)

		o := Run(cfg, rand.New(rand.NewSource(seed)))
		assertInRange(t, o, cfg.Generations-1)

		entries := logs.FilterMessage("generation").All()
		require.Len(t, entries, cfg.Generations)

		// fold the trace the same way: highest mean wins, later generation on a tie
		var want Outcome
		for _, e := range entries {
			fields := e.ContextMap()
			genFitness := fields["generation_fitness"].(float64)
			if genFitness >= want.GenerationFitness {
				want = Outcome{
					Generation:        int(fields["generation"].(int64)),
					GenerationFitness: genFitness,
					BestFitness:       fields["best_fitness"].(float64),
				}
			}
		}
		assert.Equal(t, want, o, "seed %d", seed)
	}
}

func TestRun_Deterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Generations = 50
	a := Run(cfg, rand.New(rand.NewSource(7)))
	b := Run(cfg, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestRun_ZeroGenerations(t *testing.T) {
	cfg := testConfig()
	cfg.Generations = 0
	assert.Equal(t, Outcome{}, Run(cfg, rand.New(rand.NewSource(1))))
}

func TestRun_TracesGenerations(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := testConfig()
	cfg.Generations = 5
	cfg.TargetGenerationFitness = 2.0
	cfg.Logger = zap.New(core)

	Run(cfg, rand.New(rand.NewSource(3)))

	require.Equal(t, 5, logs.FilterMessage("generation").Len())
	assert.Equal(t, 1, logs.FilterMessage("generation budget exhausted").Len())
}
