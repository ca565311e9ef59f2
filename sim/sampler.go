package sim

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Sampler draws the stochastic inputs of a run: how many patients of one
// class arrive within a minute, and how many minutes a surgery takes.
type Sampler interface {
	// ArrivalCount draws from Poisson(rate).
	ArrivalCount(rate float64) int

	// ServiceDuration draws from LogNormal(mu, sigma), rounded to whole
	// minutes, never negative.
	ServiceDuration(mu, sigma float64) int
}

// NewSampler returns a Sampler backed by gonum distributions. All draws
// consume the same seeded source, so a run is reproducible given its seed.
func NewSampler(seed uint64) Sampler {
	return &distSampler{src: rand.NewSource(seed)}
}

type distSampler struct {
	src rand.Source
}

func (s *distSampler) ArrivalCount(rate float64) int {
	if rate == 0 {
		return 0
	}

	dist := distuv.Poisson{
		Lambda: rate,
		Src:    s.src,
	}

	return int(dist.Rand())
}

func (s *distSampler) ServiceDuration(mu, sigma float64) int {
	var duration float64
	if sigma == 0 {
		// Degenerate log-normal, distuv rejects a zero sigma.
		duration = math.Exp(mu)
	} else {
		dist := distuv.LogNormal{
			Mu:    mu,
			Sigma: sigma,
			Src:   s.src,
		}
		duration = dist.Rand()
	}

	minutes := int(math.Round(duration))
	if minutes < 0 {
		minutes = 0
	}

	return minutes
}
