package engine

import (
	"testing"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_MovesTowardOrigin(t *testing.T) {
	layout := model.Layout{
		{Piece: model.NewPiece(1, 2, 2), X: 3, Y: 3},
	}
	assert.True(t, Compact(layout))
	assert.Equal(t, uint32(0), layout[0].X)
	assert.Equal(t, uint32(0), layout[0].Y)
}

func TestCompact_StopsAtNeighbour(t *testing.T) {
	layout := model.Layout{
		{Piece: model.NewPiece(1, 2, 4), X: 0, Y: 0},
		{Piece: model.NewPiece(2, 2, 2), X: 5, Y: 1},
	}
	assert.True(t, Compact(layout))
	assert.Equal(t, uint32(2), layout[1].X)
	assert.Equal(t, uint32(0), layout[1].Y)
	assert.True(t, layout.Valid(model.NewContainer(10, 4)))
}

func TestCompact_Idempotent(t *testing.T) {
	inv := nineInventory(t)
	f := NewFitter(inv, 10)

	layout, ok := f.Check(inv.All())
	require.True(t, ok)

	again := make(model.Layout, len(layout))
	copy(again, layout)
	assert.False(t, Compact(again), "a compacted layout must not move")
	assert.Equal(t, layout, again)
}

func TestCompact_ShelfLayoutStaysValid(t *testing.T) {
	container := model.NewContainer(10, 10)
	seq := []model.Piece{
		model.NewPiece(1, 3, 2), model.NewPiece(2, 2, 3), model.NewPiece(3, 4, 1),
		model.NewPiece(4, 1, 4), model.NewPiece(5, 2, 2),
	}
	layout, ok := Shelf(seq, container, 2)
	require.True(t, ok)

	Compact(layout)
	for i, a := range layout {
		for _, b := range layout[i+1:] {
			assert.False(t, a.Collides(b))
		}
	}
	assert.False(t, Compact(layout))
}
