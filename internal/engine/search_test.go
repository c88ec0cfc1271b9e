package engine

import (
	"testing"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_NinePiecesFillContainer(t *testing.T) {
	inv := nineInventory(t)
	f := NewFitter(inv, 10)

	layout, ok := f.Check(inv.All())
	require.True(t, ok, "some ordering of the nine pieces fills the container")
	requireValidLayout(t, inv, inv.All(), layout)
	assert.Equal(t, inv.Container.Area(), layout.Area())
}

func TestCheckOrdered_FixedOrderIsInfeasible(t *testing.T) {
	inv := nineInventory(t)
	f := NewFitter(inv, 10)

	var seq []model.Piece
	for _, id := range []model.PieceID{2, 9, 5, 4, 7, 1, 8, 6, 3} {
		p, ok := inv.Piece(id)
		require.True(t, ok)
		seq = append(seq, p)
	}
	_, ok := f.CheckOrdered(seq)
	assert.False(t, ok)
}

func TestCheck_KnownLayers(t *testing.T) {
	inv := twentyInventory(t)
	f := NewFitter(inv, 10)

	for _, c := range []model.Combination{layerA, layerB, layerC} {
		layout, ok := f.Check(c)
		require.True(t, ok, "layer %s", c)
		requireValidLayout(t, inv, c, layout)
	}
}

func TestCheck_SmallSubsetUsesRotation(t *testing.T) {
	inv, err := model.NewInventory(model.NewContainer(6, 2), []model.Piece{
		model.NewPiece(1, 2, 4),
		model.NewPiece(2, 2, 2),
	})
	require.NoError(t, err)
	f := NewFitter(inv, 0)

	layout, ok := f.Check(model.NewCombination(1, 2))
	require.True(t, ok)
	requireValidLayout(t, inv, model.NewCombination(1, 2), layout)
	for _, p := range layout {
		if p.Piece.ID == 1 {
			assert.Equal(t, uint32(4), p.Piece.Width, "piece 1 must lie down")
		}
	}
}

func TestCheck_Infeasible(t *testing.T) {
	inv := twentyInventory(t)
	f := NewFitter(inv, 10)

	// Area 33 exceeds the 8x4 container.
	_, ok := f.Check(model.NewCombination(3, 4, 12, 16))
	assert.False(t, ok)

	// Three 3x3 blocks fit by area but not side by side.
	blocks, err := model.NewInventory(model.NewContainer(8, 4), []model.Piece{
		model.NewPiece(1, 3, 3), model.NewPiece(2, 3, 3), model.NewPiece(3, 3, 3),
	})
	require.NoError(t, err)
	f = NewFitter(blocks, 0)
	_, ok = f.Check(model.NewCombination(1, 2, 3))
	assert.False(t, ok)
	_, ok = f.Check(model.NewCombination(1, 2))
	assert.True(t, ok)
}

func TestCheck_UnknownOrUnplaceable(t *testing.T) {
	inv, err := model.NewInventory(model.NewContainer(4, 4), []model.Piece{
		model.NewPiece(1, 5, 1),
		model.NewPiece(2, 1, 1),
	})
	require.NoError(t, err)
	f := NewFitter(inv, 0)

	_, ok := f.Check(model.NewCombination(1))
	assert.False(t, ok)
	_, ok = f.Check(model.NewCombination(7))
	assert.False(t, ok)

	layout, ok := f.Check(model.Combination{})
	assert.True(t, ok)
	assert.Empty(t, layout)
}

func TestFirstPermutation_SkipsEqualFootprints(t *testing.T) {
	// Four identical squares in a row of width 3 never fit; the search must
	// still terminate quickly by visiting a single ordering.
	inv, err := model.NewInventory(model.NewContainer(3, 1), []model.Piece{
		model.NewPiece(1, 1, 1), model.NewPiece(2, 1, 1), model.NewPiece(3, 1, 1), model.NewPiece(4, 1, 1),
	})
	require.NoError(t, err)
	f := NewFitter(inv, 0)

	calls := 0
	pieces := inv.PiecesOf(inv.All())
	ok := walkDistinct(pieces, func([]model.Piece) bool {
		calls++
		return false
	})
	assert.False(t, ok)
	assert.Equal(t, 1, calls)

	_, ok = f.Check(inv.All())
	assert.False(t, ok)
}
