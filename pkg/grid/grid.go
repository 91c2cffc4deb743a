// Package grid generates the rate values swept by the engine and splits a
// cell's trials into concurrent waves.
package grid

// EquallySpaced returns count values evenly spaced from min to max inclusive.
// With invert the sequence runs from max down to min. A count of one or less
// yields just min.
func EquallySpaced(min, max float64, count int, invert bool) []float64 {
	if count <= 1 {
		return []float64{min}
	}
	if invert {
		min, max = max, min
	}

	step := (max - min) / float64(count-1)
	values := make([]float64, count)
	for i := range values {
		values[i] = min + float64(i)*step
	}
	return values
}

// DistributeRunTimes splits trials into waves of at most workers each: full
// waves first, then one wave with the remainder. Both inputs are raised to 1.
func DistributeRunTimes(workers, trials int) []int {
	if workers < 1 {
		workers = 1
	}
	if trials < 1 {
		trials = 1
	}

	full, rem := trials/workers, trials%workers
	waves := make([]int, full, full+1)
	for i := range waves {
		waves[i] = workers
	}
	if rem != 0 {
		waves = append(waves, rem)
	}
	return waves
}

// Point is one (mutation rate, crossover rate) cell of the sweep grid.
type Point struct {
	MutationRate  float64 `json:"mutation_rate" yaml:"mutation_rate"`
	CrossoverRate float64 `json:"crossover_rate" yaml:"crossover_rate"`
}

// Range describes an equally spaced sequence of rates.
type Range struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Count  int     `json:"count" yaml:"count"`
	Invert bool    `json:"invert" yaml:"invert"`
}

// Values expands the range.
func (r Range) Values() []float64 {
	return EquallySpaced(r.Min, r.Max, r.Count, r.Invert)
}
