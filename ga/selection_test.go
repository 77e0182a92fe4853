package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogger struct{ warnings []string }

func (s *stubLogger) Warnf(format string, args ...interface{}) {
	s.warnings = append(s.warnings, format)
}

func populationWithFitness(t *testing.T, fitness []float64) *population {
	l := mustBitLayout(t, 1)
	pop := newPopulation(l, len(fitness))
	for i, f := range fitness {
		c, err := Encode(l, []int{0})
		require.NoError(t, err)
		pop.members[i] = c
		pop.setFitness(i, f)
	}
	return pop
}

func TestRouletteBasicFavorsHigherFitness(t *testing.T) {
	pop := populationWithFitness(t, []float64{0, 0, 0, 100})
	s := newSelector(SelectionConfig{Scheme: RouletteBasic}, newSampler(1), &stubLogger{})

	hits := 0
	for i := 0; i < 200; i++ {
		parents := s.Select(pop, 1)
		if parents[0] == 3 {
			hits++
		}
	}
	assert.Greater(t, hits, 150)
}

func TestRouletteBasicDegenerateFallsBackToUniform(t *testing.T) {
	pop := populationWithFitness(t, []float64{0, 0, 0, 0})
	log := &stubLogger{}
	s := newSelector(SelectionConfig{Scheme: RouletteBasic}, newSampler(1), log)

	parents := s.Select(pop, 2)
	assert.Len(t, parents, 2)
	assert.NotEmpty(t, log.warnings)
}

func TestRouletteRestrictsToTopHalf(t *testing.T) {
	pop := populationWithFitness(t, []float64{1, 2, 3, 4})
	s := newSelector(SelectionConfig{Scheme: Roulette}, newSampler(1), &stubLogger{})

	for i := 0; i < 50; i++ {
		parents := s.Select(pop, 1)
		assert.Contains(t, []int{2, 3}, parents[0])
	}
}

func TestDistributionSelectionWithinRange(t *testing.T) {
	pop := populationWithFitness(t, []float64{1, 1, 1, 1, 1})
	s := newSelector(SelectionConfig{Scheme: DistributionSelection, Distribution: Uniform}, newSampler(1), &stubLogger{})

	parents := s.Select(pop, 10)
	assert.Len(t, parents, 10)
	for _, p := range parents {
		assert.GreaterOrEqual(t, p, 0)
		assert.Less(t, p, 5)
	}
}
