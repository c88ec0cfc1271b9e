package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCombination_SortsAndDropsRepeats(t *testing.T) {
	c := NewCombination(5, 1, 3, 1)
	assert.Equal(t, Combination{1, 3, 5}, c)
	assert.Equal(t, "1,3,5", c.String())
	assert.Equal(t, "1 3 5", c.Join(" "))
}

func TestParseCombination(t *testing.T) {
	c, err := ParseCombination(" 7,2, 10 ")
	require.NoError(t, err)
	assert.Equal(t, Combination{2, 7, 10}, c)

	empty, err := ParseCombination("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseCombination("1,x")
	assert.Error(t, err)
}

func TestCombinationSetOperations(t *testing.T) {
	a := NewCombination(1, 4, 6)
	b := NewCombination(2, 3, 5)
	c := NewCombination(6, 7)

	assert.True(t, a.Contains(4))
	assert.False(t, a.Contains(5))
	assert.True(t, a.Disjoint(b))
	assert.False(t, a.Disjoint(c))
	assert.Equal(t, Combination{1, 2, 3, 4, 5, 6}, a.Union(b))
	assert.True(t, a.Equal(NewCombination(6, 4, 1)))
	assert.False(t, a.Equal(b))
	assert.Equal(t, 11, a.IDSum())

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, NewCombination(1, 4).Compare(a))
	assert.Equal(t, 0, a.Compare(NewCombination(1, 4, 6)))
}

func TestSolution_CanonicalOrder(t *testing.T) {
	a := NewCombination(3, 5)
	b := NewCombination(1, 2)
	c := NewCombination(4)

	s1 := NewSolution(a, b, c)
	s2 := NewSolution(c, a, b)
	assert.Equal(t, s1, s2)
	assert.Equal(t, "1,2 3,5 4", s1.String())
	assert.Equal(t, 5, s1.Size())

	parsed, err := ParseSolution("4 3,5  1,2")
	require.NoError(t, err)
	assert.Equal(t, s1, parsed)

	_, err = ParseSolution("1,2 3")
	assert.Error(t, err)
}

func TestSortByArea(t *testing.T) {
	inv, err := NewInventory(NewContainer(4, 2), []Piece{
		NewPiece(1, 2, 2), NewPiece(2, 2, 1), NewPiece(3, 3, 2), NewPiece(4, 1, 1),
	})
	require.NoError(t, err)
	in := []Combination{{4}, {1, 2}, {3}, {2, 4}, {1}}

	got := inv.SortByArea(in)
	assert.Equal(t, []Combination{{1, 2}, {3}, {1}, {2, 4}, {4}}, got)
	assert.Equal(t, Combination{4}, in[0], "input is left untouched")
}
