package scatter

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/woodlandatlas/woodmap/pkg/errors"
)

// CountDist is a discrete distribution over per-cell point counts.
// Counts and Weights are parallel slices; weights need not sum to one.
type CountDist struct {
	Counts  []int     `json:"counts" toml:"counts"`
	Weights []float64 `json:"weights" toml:"weights"`
}

// DefaultCountDist plants two or three icons per cell, favoring three.
func DefaultCountDist() CountDist {
	return CountDist{Counts: []int{2, 3}, Weights: []float64{0.3, 0.7}}
}

// Validate checks that the distribution is well formed.
// Returns CONFIG_ERROR with the first violation found.
func (d CountDist) Validate() error {
	return errors.ValidateCountDistribution(d.Counts, d.Weights)
}

// Supports reports whether n can be drawn from the distribution.
func (d CountDist) Supports(n int) bool {
	for _, c := range d.Counts {
		if c == n {
			return true
		}
	}
	return false
}

// Sampler binds the distribution to a random stream. All draws consume
// values from rng, so a fixed seed reproduces the same count sequence.
func (d CountDist) Sampler(rng *rand.Rand) (*CountSampler, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &CountSampler{
		counts: d.Counts,
		cat:    distuv.NewCategorical(d.Weights, rng),
	}, nil
}

// CountSampler draws per-cell counts from a CountDist.
type CountSampler struct {
	counts []int
	cat    distuv.Categorical
}

// Draw returns the next count.
func (s *CountSampler) Draw() int {
	return s.counts[int(s.cat.Rand())]
}
