package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplerFloat64Range(t *testing.T) {
	s := newSampler(1)
	for i := 0; i < 100; i++ {
		v := s.Float64(10, 20)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 20.0)
	}
}

func TestSamplerFlipCoinExtremes(t *testing.T) {
	s := newSampler(1)
	assert.False(t, s.FlipCoin(0))
	assert.True(t, s.FlipCoin(1))
}

func TestSamplerIntGetUniqueNDistinct(t *testing.T) {
	s := newSampler(42)
	xs := s.IntGetUniqueN(0, 10, 5)
	assert.Len(t, xs, 5)
	seen := map[int]bool{}
	for _, x := range xs {
		assert.False(t, seen[x], "duplicate draw %d", x)
		seen[x] = true
		assert.GreaterOrEqual(t, x, 0)
		assert.Less(t, x, 10)
	}
}

func TestSamplerSameSeedReproducible(t *testing.T) {
	a := newSampler(7)
	b := newSampler(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(0, 1), b.Float64(0, 1))
	}
}

func TestDraw01StaysInUnitInterval(t *testing.T) {
	s := newSampler(3)
	dists := []Distribution{Uniform, Normal, Beta, Binomial, ChiSquare, Exponential, Poisson}
	for _, d := range dists {
		for i := 0; i < 50; i++ {
			v := s.Draw01(d, DistParams{}, 10)
			assert.GreaterOrEqual(t, v, 0.0, "distribution %d", d)
			assert.Less(t, v, 1.0, "distribution %d", d)
		}
	}
}

func TestDrawIntWithinBounds(t *testing.T) {
	s := newSampler(5)
	for i := 0; i < 50; i++ {
		v := s.DrawInt(Uniform, DistParams{}, 10, 3, 8)
		assert.GreaterOrEqual(t, v, 3)
		assert.Less(t, v, 8)
	}
}
