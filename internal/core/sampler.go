package core

import (
	"math"
	"math/rand"
	"time"
)

// LayerSampler draws insertion layers from an exponential-like distribution
// parameterized by mL, clamped into [0, L-1]. It is owned by a single Index
// and must never be shared across instances.
type LayerSampler struct {
	rng *rand.Rand
	mL  float64
	l   int
}

// NewLayerSampler builds a sampler for an index with l layers and the given
// mL scale factor. A seed of 0 selects a non-deterministic source; any other
// seed makes the sampler's output sequence reproducible.
func NewLayerSampler(l int, mL float64, seed int64) *LayerSampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &LayerSampler{
		rng: rand.New(rand.NewSource(seed)),
		mL:  mL,
		l:   l,
	}
}

// Sample draws u in (0, 1], computes floor(-ln(u) * mL), and clamps the
// result into [0, L-1].
func (s *LayerSampler) Sample() int {
	u := s.rng.Float64()
	for u == 0 {
		u = s.rng.Float64()
	}

	layer := int(math.Floor(-math.Log(u) * s.mL))
	if layer < 0 {
		layer = 0
	}
	if layer > s.l-1 {
		layer = s.l - 1
	}

	return layer
}
