package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutBitVector(t *testing.T) {
	l, err := NewLayout(Layout{Kind: BitVector, Length: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, l.totalBits)
	for i := 0; i < 8; i++ {
		assert.Equal(t, uint8(1), l.bitWidths[i])
	}
}

func TestNewLayoutRangeVectorBitWidth(t *testing.T) {
	l, err := NewLayout(Layout{
		Kind:   RangeVector,
		Length: 2,
		Positions: []GeneSpec{
			{Lo: 0, Hi: 3},  // 4 values -> 2 bits
			{Lo: 0, Hi: 15}, // 16 values -> 4 bits
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), l.bitWidths[0])
	assert.Equal(t, uint8(4), l.bitWidths[1])
}

func TestNewLayoutRejectsMismatchedPositionCount(t *testing.T) {
	_, err := NewLayout(Layout{Kind: RangeVector, Length: 3, Positions: []GeneSpec{{Lo: 0, Hi: 1}}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewLayoutRejectsVariableLengthCombination(t *testing.T) {
	_, err := NewLayout(Layout{Kind: Combination, Length: 3, Alphabet: []string{"a", "b", "c"}, VariableLevel: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewLayoutRejectsListVectorSingletonAlphabet(t *testing.T) {
	_, err := NewLayout(Layout{Kind: ListVector, Length: 1, Positions: []GeneSpec{{Alphabet: []string{"only"}}}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLayoutPositionAtFallsBackToWidestForGrowthSlots(t *testing.T) {
	l, err := NewLayout(Layout{
		Kind:          RangeVector,
		Length:        2,
		MaxLength:     4,
		VariableLevel: 1,
		Positions: []GeneSpec{
			{Lo: 0, Hi: 1},  // narrow
			{Lo: 0, Hi: 99}, // widest
		},
	})
	require.NoError(t, err)
	// growth slot 2 must use the widest position's domain, and its bit
	// width must agree with what NewLayout assigned that slot.
	grown := l.PositionAt(2)
	assert.Equal(t, 0, grown.Lo)
	assert.Equal(t, 99, grown.Hi)
	assert.Equal(t, uint8(bitsFor(grown.cardinality())), l.bitWidths[2])
}

func TestBitsFor(t *testing.T) {
	assert.Equal(t, 1, bitsFor(1))
	assert.Equal(t, 1, bitsFor(2))
	assert.Equal(t, 2, bitsFor(3))
	assert.Equal(t, 2, bitsFor(4))
	assert.Equal(t, 3, bitsFor(5))
	assert.Equal(t, 8, bitsFor(256))
}
