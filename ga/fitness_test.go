package ga

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateOneUsesCache(t *testing.T) {
	l := mustBitLayout(t, 1)
	var calls int32
	fe := newFitnessEvaluator(func(_ *Engine, c *Chromosome) (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 1, nil
	}, true, 1, false)

	c, _ := Encode(l, []int{1})
	f1, cached1, err := fe.evaluateOne(nil, c)
	require.NoError(t, err)
	assert.False(t, cached1)
	assert.Equal(t, float64(1), f1)

	f2, cached2, err := fe.evaluateOne(nil, c.Clone())
	require.NoError(t, err)
	assert.True(t, cached2)
	assert.Equal(t, float64(1), f2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEvaluateOneStrictModeCatchesMutation(t *testing.T) {
	l := mustBitLayout(t, 1)
	fe := newFitnessEvaluator(func(_ *Engine, c *Chromosome) (float64, error) {
		c.SetGene(0, GeneValue{Defined: true, Bit: true})
		return 1, nil
	}, false, 1, true)

	c, _ := Encode(l, []int{0})
	_, _, err := fe.evaluateOne(nil, c)
	assert.ErrorIs(t, err, ErrChromosomeMutated)
}

func TestEvaluateOneWrapsCallbackError(t *testing.T) {
	l := mustBitLayout(t, 1)
	boom := errors.New("boom")
	fe := newFitnessEvaluator(func(_ *Engine, c *Chromosome) (float64, error) {
		return 0, boom
	}, false, 1, false)

	c, _ := Encode(l, []int{0})
	_, _, err := fe.evaluateOne(nil, c)
	assert.ErrorIs(t, err, ErrFitness)
}

func TestEvaluatePopulationFillsIndexAligned(t *testing.T) {
	l := mustBitLayout(t, 1)
	fe := newFitnessEvaluator(func(_ *Engine, c *Chromosome) (float64, error) {
		return float64(Decode(c)[0]), nil
	}, false, 4, false)

	pop := newPopulation(l, 8)
	for i := range pop.members {
		v := 0
		if i%2 == 0 {
			v = 1
		}
		c, _ := Encode(l, []int{v})
		pop.members[i] = c
	}

	err := fe.evaluatePopulation(context.Background(), nil, pop)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		want := float64(0)
		if i%2 == 0 {
			want = 1
		}
		assert.Equal(t, want, pop.fitnessAt(i))
	}
}

func TestEvaluatePopulationSkipsAlreadySetFitness(t *testing.T) {
	l := mustBitLayout(t, 1)
	var calls int32
	fe := newFitnessEvaluator(func(_ *Engine, c *Chromosome) (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 1, nil
	}, false, 1, false)

	pop := newPopulation(l, 3)
	for i := range pop.members {
		c, _ := Encode(l, []int{0})
		pop.members[i] = c
	}
	pop.setFitness(0, 5)

	err := fe.evaluatePopulation(context.Background(), nil, pop)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, float64(5), pop.fitnessAt(0))
}
