package calculation

import (
	"math"
	"math/rand"
)

// NormalSource yields standard-normal samples. The Monte Carlo simulator
// takes its randomness through this interface so tests can pin a seed.
type NormalSource interface {
	NormFloat64() float64
}

// BoxMullerSource generates standard-normal samples from a seeded uniform
// generator via the Box-Muller transform, caching the spare deviate of each
// pair. It is not safe for concurrent use; the simulator gives each worker
// its own source.
type BoxMullerSource struct {
	rng      *rand.Rand
	spare    float64
	hasSpare bool
}

// NewBoxMullerSource creates a seeded source.
func NewBoxMullerSource(seed int64) *BoxMullerSource {
	return &BoxMullerSource{rng: rand.New(rand.NewSource(seed))}
}

// NormFloat64 returns the next standard-normal sample.
func (s *BoxMullerSource) NormFloat64() float64 {
	if s.hasSpare {
		s.hasSpare = false
		return s.spare
	}
	var u1 float64
	for u1 == 0 {
		u1 = s.rng.Float64()
	}
	u2 := s.rng.Float64()
	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2
	s.spare = r * math.Sin(theta)
	s.hasSpare = true
	return r * math.Cos(theta)
}
