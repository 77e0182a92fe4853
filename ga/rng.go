package ga

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution names the closed set of samplers the engine supports.
// RouletteDistribution and Distribution selection schemes, and the
// Distribution crossover strategy, are parameterised by one of these.
type Distribution int

const (
	Uniform Distribution = iota
	Normal
	Beta
	Binomial
	ChiSquare
	Exponential
	Poisson
)

// DistParams holds the (optional) parameters for a Distribution draw. Zero
// values mean "use the context-derived default" per sampler.Draw01/DrawInt.
type DistParams struct {
	Mu, Sigma float64 // Normal
	A, B      float64 // Beta (a, b >= 1e-37)
	N         int     // Binomial trials
	P         float64 // Binomial success probability
	DF        float64 // ChiSquare degrees of freedom
	Lambda    float64 // Exponential / Poisson mean
}

// sampler wraps a driver-thread-local PRNG with the distribution family the
// engine supports. It is never touched by fitness workers: only the
// Engine's single goroutine samples from it, which is what keeps a seeded
// run reproducible even with parallel fitness evaluation.
//
// The uniform/shuffle primitives (Float64(lo,hi), FlipCoin, IntGetUniqueN,
// IntShuffle) stay on math/rand rather than a global-state RNG package,
// since a package-level generator would break the per-Engine seed
// isolation this type exists to provide. The named statistical
// distributions (normal, beta, binomial, chi-square, exponential, poisson)
// are served by gonum.org/v1/gonum/stat/distuv.
type sampler struct {
	rng *rand.Rand
}

func newSampler(seed int64) *sampler {
	return &sampler{rng: rand.New(rand.NewSource(seed))}
}

// expRandSource adapts *rand.Rand to golang.org/x/exp/rand.Source, which
// gonum's distuv package requires for its Src field.
type expRandSource struct {
	rng *rand.Rand
}

func (s expRandSource) Uint64() uint64   { return s.rng.Uint64() }
func (s expRandSource) Seed(seed uint64) { s.rng.Seed(int64(seed)) }

// Float64 draws a uniform value in [lo, hi).
func (s *sampler) Float64(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Intn draws a uniform integer in [0, n).
func (s *sampler) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// FlipCoin reports true with probability p.
func (s *sampler) FlipCoin(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// IntGetUniqueN draws n distinct integers from [lo, hi). When the range
// holds fewer than n values, n is reduced to the range size.
func (s *sampler) IntGetUniqueN(lo, hi, n int) []int {
	span := hi - lo
	if n > span {
		n = span
	}
	pool := make([]int, span)
	for i := range pool {
		pool[i] = lo + i
	}
	s.shuffleInts(pool)
	out := make([]int, n)
	copy(out, pool[:n])
	return out
}

// IntShuffle permutes xs in place (Fisher-Yates).
func (s *sampler) IntShuffle(xs []int) { s.shuffleInts(xs) }

func (s *sampler) shuffleInts(xs []int) {
	s.rng.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
}

// Draw01 samples a value in [0, 1) from the named distribution, applying a
// context-derived default when a parameter is left at its zero value. ctx
// is that default (binomial trials, chi-square df, exponential/poisson
// mean): selection schemes pass the population size, crossover's
// Distribution strategy passes the effective chromosome length.
func (s *sampler) Draw01(d Distribution, p DistParams, ctx int) float64 {
	switch d {
	case Uniform:
		return s.rng.Float64()
	case Normal:
		sigma := p.Sigma
		if sigma == 0 {
			sigma = 1
		}
		v := distuv.Normal{Mu: p.Mu, Sigma: sigma, Src: expRandSource{s.rng}}.Rand()
		return clamp01(v/6 + 0.5)
	case Beta:
		a, b := p.A, p.B
		if a < 1e-37 {
			a = 1e-37
		}
		if b < 1e-37 {
			b = 1e-37
		}
		v := distuv.Beta{Alpha: a, Beta: b, Src: expRandSource{s.rng}}.Rand()
		if math.IsNaN(v) {
			// Both underlying gamma draws underflowed to zero. For shape
			// parameters this small the mass sits at the endpoints, 1 with
			// probability a/(a+b).
			v = 0
			if s.rng.Float64() < a/(a+b) {
				v = 1
			}
		}
		return clamp01(v)
	case Binomial:
		n := p.N
		if n == 0 {
			n = ctx
		}
		prob := p.P
		if prob == 0 {
			prob = 0.5
		}
		v := distuv.Binomial{N: float64(n), P: prob, Src: expRandSource{s.rng}}.Rand()
		if n == 0 {
			return 0
		}
		return clamp01(v / float64(n))
	case ChiSquare:
		df := p.DF
		if df == 0 {
			df = float64(ctx) // default df = N
		}
		if df <= 0 {
			df = 1
		}
		v := distuv.ChiSquared{K: df, Src: expRandSource{s.rng}}.Rand()
		return clamp01(v / (df * 3))
	case Exponential:
		mu := p.Lambda
		if mu == 0 {
			mu = float64(ctx)
		}
		if mu <= 0 {
			mu = 1
		}
		v := distuv.Exponential{Rate: 1 / mu, Src: expRandSource{s.rng}}.Rand()
		return clamp01(v / (mu * 4))
	case Poisson:
		mu := p.Lambda
		if mu == 0 {
			mu = float64(ctx)
		}
		if mu <= 0 {
			mu = 1
		}
		v := distuv.Poisson{Lambda: mu, Src: expRandSource{s.rng}}.Rand()
		return clamp01(v / (mu * 3))
	default:
		return s.rng.Float64()
	}
}

// DrawInt maps Draw01's [0,1) sample linearly into [lo, hi).
func (s *sampler) DrawInt(d Distribution, p DistParams, ctx, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	u := s.Draw01(d, p, ctx)
	idx := lo + int(u*float64(hi-lo))
	if idx >= hi {
		idx = hi - 1
	}
	if idx < lo {
		idx = lo
	}
	return idx
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 0.9999999999
	}
	return v
}
