package ga

import "sort"

// SelectionScheme tags the closed set of parent-selection strategies.
// Implemented as a tagged variant rather than a callback interface, to
// keep the inner selection loop branch-predictable.
type SelectionScheme int

const (
	RouletteBasic SelectionScheme = iota
	Roulette
	RouletteDistribution
	DistributionSelection
)

// SelectionConfig carries a scheme and its parameters.
type SelectionConfig struct {
	Scheme       SelectionScheme
	Distribution Distribution
	DistParams   DistParams
}

// selector chooses P parent indices per call, reading the current
// population's fitness vector and never mutating it.
type selector struct {
	cfg SelectionConfig
	rng *sampler
	log logger
}

func newSelector(cfg SelectionConfig, rng *sampler, log logger) *selector {
	return &selector{cfg: cfg, rng: rng, log: log}
}

// Select returns p parent indices into pop.
func (s *selector) Select(pop *population, p int) []int {
	switch s.cfg.Scheme {
	case RouletteBasic:
		return s.rouletteBasic(allIndices(pop.size()), pop, p)
	case Roulette:
		ranked := pop.rankedIndices()
		top := ranked[:max1((len(ranked)+1)/2)]
		return s.rouletteBasic(top, pop, p)
	case RouletteDistribution:
		return s.rouletteDistribution(pop, p)
	case DistributionSelection:
		out := make([]int, p)
		for i := range out {
			out[i] = s.rng.DrawInt(s.cfg.Distribution, s.cfg.DistParams, pop.size(), 0, pop.size())
		}
		return out
	default:
		return s.rouletteBasic(allIndices(pop.size()), pop, p)
	}
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// rouletteBasic samples p indices from the candidate subset with
// probability proportional to fitness, degrading to uniform sampling when
// the fitness sum is non-positive.
func (s *selector) rouletteBasic(candidates []int, pop *population, p int) []int {
	total := 0.0
	for _, i := range candidates {
		if f := pop.fitnessAt(i); f > 0 {
			total += f
		}
	}
	if total <= 0 {
		s.log.Warnf("ga: selection degenerate (all-nonpositive fitness over %d candidates), falling back to uniform", len(candidates))
		out := make([]int, p)
		for i := range out {
			out[i] = candidates[s.rng.Intn(len(candidates))]
		}
		return out
	}

	cum := make([]float64, len(candidates))
	acc := 0.0
	for i, idx := range candidates {
		f := pop.fitnessAt(idx)
		if f < 0 {
			f = 0
		}
		acc += f
		cum[i] = acc
	}

	out := make([]int, p)
	for i := range out {
		u := s.rng.Float64(0, total)
		j := sort.Search(len(cum), func(k int) bool { return cum[k] > u })
		if j >= len(cum) {
			j = len(cum) - 1
		}
		out[i] = candidates[j]
	}
	return out
}

// rouletteDistribution draws u from the configured Distribution mapped into
// [0, total_fitness) and binary-searches the cumulative fitness curve, P
// times.
func (s *selector) rouletteDistribution(pop *population, p int) []int {
	candidates := allIndices(pop.size())
	total := 0.0
	cum := make([]float64, len(candidates))
	for i, idx := range candidates {
		f := pop.fitnessAt(idx)
		if f < 0 {
			f = 0
		}
		total += f
		cum[i] = total
	}
	if total <= 0 {
		s.log.Warnf("ga: selection degenerate (all-nonpositive fitness), falling back to uniform")
		out := make([]int, p)
		for i := range out {
			out[i] = candidates[s.rng.Intn(len(candidates))]
		}
		return out
	}

	out := make([]int, p)
	for i := range out {
		u01 := s.rng.Draw01(s.cfg.Distribution, s.cfg.DistParams, pop.size())
		u := u01 * total
		j := sort.Search(len(cum), func(k int) bool { return cum[k] > u })
		if j >= len(cum) {
			j = len(cum) - 1
		}
		out[i] = candidates[j]
	}
	return out
}

// logger is the minimal surface selection needs from a
// logrus.FieldLogger, kept narrow so tests can supply a no-op stub.
type logger interface {
	Warnf(format string, args ...interface{})
}
