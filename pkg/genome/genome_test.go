package genome

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitness_KnownGenomes(t *testing.T) {
	assert.Equal(t, 0.0, Fitness(Genome{0, 0, 0, 0, 0}))
	assert.Equal(t, 1.0, Fitness(Genome{1, 1, 1, 1, 1}))
	assert.Equal(t, 0.5, Fitness(Genome{0, 1, 0, 1, 0, 1, 1, 0}))
}

func TestFitness_EmptyGenome(t *testing.T) {
	assert.Equal(t, 0.0, Fitness(Genome{}))
	assert.Equal(t, 0.0, Fitness(nil))
}

func TestFitness_InRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		f := Fitness(Random(rng, rng.Intn(40)))
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestRandom_LengthAndGenes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	assert.Empty(t, Random(rng, 0))

	g := Random(rng, 64)
	require.Len(t, g, 64)
	for _, gene := range g {
		assert.Contains(t, []byte{0, 1}, gene)
	}
}

func TestRandom_IsRoughlyBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := Random(rng, 20000)
	assert.InDelta(t, 0.5, Fitness(g), 0.02)
}

func TestNewPopulation_Shape(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pop := NewPopulation(rng, 9, 13)
	require.Len(t, pop, 9)
	for _, g := range pop {
		assert.Len(t, g, 13)
	}
}

func TestClone_Independent(t *testing.T) {
	g := Genome{1, 0, 1}
	c := g.Clone()
	c[0] = 0
	assert.Equal(t, Genome{1, 0, 1}, g)
}

func TestPopulationFitness_PreservesOrder(t *testing.T) {
	pop := Population{{1, 1}, {0, 0}, {1, 0}}
	assert.Equal(t, []float64{1.0, 0.0, 0.5}, PopulationFitness(pop))
	assert.Empty(t, PopulationFitness(Population{}))
}

func TestBestFitness(t *testing.T) {
	assert.Equal(t, 0.9, BestFitness([]float64{0.1, 0.9, 0.4}))
	assert.True(t, math.IsInf(BestFitness(nil), -1))
	assert.Equal(t, 1, BestIndex([]float64{0.1, 0.9, 0.9}))
	assert.Equal(t, -1, BestIndex(nil))
}

func TestGenerationFitness(t *testing.T) {
	assert.InDelta(t, 0.5, GenerationFitness([]float64{0.25, 0.75}, 2), 1e-12)
	assert.Equal(t, 0.0, GenerationFitness([]float64{0.5}, 0))
	assert.Equal(t, 0.0, GenerationFitness([]float64{math.NaN()}, 1))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0110", Genome{0, 1, 1, 0}.String())
}
