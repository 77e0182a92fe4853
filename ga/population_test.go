package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBitLayout(t *testing.T, length int) *Layout {
	l, err := NewLayout(Layout{Kind: BitVector, Length: length})
	require.NoError(t, err)
	return l
}

func TestRankedIndicesDescendingWithStableTies(t *testing.T) {
	l := mustBitLayout(t, 1)
	pop := newPopulation(l, 5)
	for i := range pop.members {
		c, _ := Encode(l, []int{0})
		pop.members[i] = c
	}
	pop.setFitness(0, 3)
	pop.setFitness(1, 5)
	pop.setFitness(2, 5)
	pop.setFitness(3, 1)
	pop.setFitness(4, 3)

	ranked := pop.rankedIndices()
	assert.Equal(t, []int{1, 2, 0, 4, 3}, ranked)
}

func TestReplaceAtClearsFitness(t *testing.T) {
	l := mustBitLayout(t, 1)
	pop := newPopulation(l, 2)
	c, _ := Encode(l, []int{1})
	pop.replaceAt(0, c)
	pop.setFitness(0, 9)

	c2, _ := Encode(l, []int{0})
	pop.replaceAt(0, c2)

	assert.False(t, pop.hasFitness(0))
	assert.Equal(t, float64(0), pop.fitnessAt(0))
}

func TestInjectOverwritesPrefixAndValidates(t *testing.T) {
	l := mustBitLayout(t, 1)
	pop := newPopulation(l, 3)
	for i := range pop.members {
		c, _ := Encode(l, []int{0})
		pop.members[i] = c
	}

	good, _ := Encode(l, []int{1})
	err := pop.inject([]*Chromosome{good})
	require.NoError(t, err)
	assert.True(t, pop.at(0).Gene(0).Bit)
	assert.False(t, pop.hasFitness(0))
}
