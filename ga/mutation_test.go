package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateBitVectorFlipsUnderP1(t *testing.T) {
	l, err := NewLayout(Layout{Kind: BitVector, Length: 8})
	require.NoError(t, err)
	c, err := Encode(l, []int{0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	mutate(l, c, 1.0, newSampler(1))

	for _, v := range Decode(c) {
		assert.Equal(t, 1, v)
	}
}

func TestMutateBitVectorNoopUnderP0(t *testing.T) {
	l, err := NewLayout(Layout{Kind: BitVector, Length: 8})
	require.NoError(t, err)
	c, err := Encode(l, []int{0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	mutate(l, c, 0.0, newSampler(1))

	for _, v := range Decode(c) {
		assert.Equal(t, 0, v)
	}
}

func TestMutateCombinationKeepsPermutation(t *testing.T) {
	l, err := NewLayout(Layout{Kind: Combination, Length: 5, Alphabet: []string{"a", "b", "c", "d", "e"}})
	require.NoError(t, err)
	c, err := Encode(l, []int{0, 1, 2, 3, 4})
	require.NoError(t, err)

	mutate(l, c, 1.0, newSampler(1))

	assertIsPermutation(t, Decode(c), 5)
}

func TestMutateRangeVectorStaysInBounds(t *testing.T) {
	l, err := NewLayout(Layout{Kind: RangeVector, Length: 3, Positions: []GeneSpec{
		{Lo: 2, Hi: 6}, {Lo: 0, Hi: 1}, {Lo: -5, Hi: -1},
	}})
	require.NoError(t, err)
	c, err := Encode(l, []int{2, 0, -5})
	require.NoError(t, err)

	mutate(l, c, 1.0, newSampler(2))

	vals := Decode(c)
	assert.GreaterOrEqual(t, vals[0], 2)
	assert.LessOrEqual(t, vals[0], 6)
	assert.GreaterOrEqual(t, vals[1], 0)
	assert.LessOrEqual(t, vals[1], 1)
	assert.GreaterOrEqual(t, vals[2], -5)
	assert.LessOrEqual(t, vals[2], -1)
}

func TestMutateLengthLevel1GrowthRespectsMaxLength(t *testing.T) {
	l, err := NewLayout(Layout{Kind: BitVector, Length: 2, MaxLength: 2, VariableLevel: 1})
	require.NoError(t, err)
	c, err := Encode(l, []int{0, 1})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		mutateLength(l, c, newSampler(int64(i)))
	}
	assert.LessOrEqual(t, c.HolePrefix()+c.Len(), l.MaxLength)
}

func TestMutateLengthLevel2ShrinkGrowsHolePrefix(t *testing.T) {
	l, err := NewLayout(Layout{Kind: BitVector, Length: 4, MaxLength: 6, VariableLevel: 2})
	require.NoError(t, err)
	c, err := Encode(l, []int{1, 0, 1, 0})
	require.NoError(t, err)

	before := c.HolePrefix()
	for i := 0; i < 50 && c.HolePrefix() == before; i++ {
		mutateLength(l, c, newSampler(int64(i)))
	}
	assert.Greater(t, c.HolePrefix(), before)
	assert.LessOrEqual(t, c.HolePrefix()+c.Len(), l.MaxLength)
}
