package genome

import (
	"math/rand"
	"strings"
)

// Genome is a fixed-length bit string. Each gene is 0 or 1.
type Genome []byte

// Population is an ordered set of genomes evaluated together in one generation.
type Population []Genome

// Random returns a genome whose genes are independently 0 or 1 with equal probability.
func Random(rng *rand.Rand, length int) Genome {
	if length <= 0 {
		return Genome{}
	}
	g := make(Genome, length)
	for i := range g {
		g[i] = byte(rng.Intn(2))
	}
	return g
}

// NewPopulation builds size random genomes of the given length.
func NewPopulation(rng *rand.Rand, size, length int) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = Random(rng, length)
	}
	return pop
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// Ones returns the number of genes set to 1.
func (g Genome) Ones() int {
	n := 0
	for _, gene := range g {
		n += int(gene)
	}
	return n
}

// String returns the genes as a compact bit string, e.g. "01101".
func (g Genome) String() string {
	var sb strings.Builder
	sb.Grow(len(g))
	for _, gene := range g {
		sb.WriteByte('0' + gene)
	}
	return sb.String()
}
