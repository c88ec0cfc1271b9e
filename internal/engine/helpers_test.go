package engine

import (
	"testing"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/stretchr/testify/require"
)

// nineInventory is nine pieces with a total area of exactly one 10x4 container.
func nineInventory(t *testing.T) *model.Inventory {
	t.Helper()
	inv, err := model.NewInventory(model.NewContainer(10, 4), []model.Piece{
		model.NewPiece(1, 2, 2),
		model.NewPiece(2, 2, 1),
		model.NewPiece(3, 3, 2),
		model.NewPiece(4, 3, 1),
		model.NewPiece(5, 4, 2),
		model.NewPiece(6, 2, 2),
		model.NewPiece(7, 2, 3),
		model.NewPiece(8, 5, 1),
		model.NewPiece(9, 2, 1),
	})
	require.NoError(t, err)
	return inv
}

// twentyInventory is twenty pieces with a total area of three 8x4 containers.
func twentyInventory(t *testing.T) *model.Inventory {
	t.Helper()
	inv, err := model.NewInventory(model.NewContainer(8, 4), []model.Piece{
		model.NewPiece(1, 2, 1),
		model.NewPiece(2, 2, 1),
		model.NewPiece(3, 4, 3),
		model.NewPiece(4, 2, 2),
		model.NewPiece(5, 3, 2),
		model.NewPiece(6, 3, 2),
		model.NewPiece(7, 3, 2),
		model.NewPiece(8, 3, 2),
		model.NewPiece(9, 1, 1),
		model.NewPiece(10, 4, 1),
		model.NewPiece(11, 4, 1),
		model.NewPiece(12, 3, 3),
		model.NewPiece(13, 3, 2),
		model.NewPiece(14, 2, 2),
		model.NewPiece(15, 3, 2),
		model.NewPiece(16, 4, 2),
		model.NewPiece(17, 2, 2),
		model.NewPiece(18, 2, 1),
		model.NewPiece(19, 2, 1),
		model.NewPiece(20, 2, 1),
	})
	require.NoError(t, err)
	return inv
}

// The three layers of a known covering of twentyInventory.
var (
	layerA = model.NewCombination(1, 2, 4, 6, 7, 11, 14, 18, 19)
	layerB = model.NewCombination(3, 5, 9, 10, 12)
	layerC = model.NewCombination(8, 13, 15, 16, 17, 20)
)

func requireValidLayout(t *testing.T, inv *model.Inventory, c model.Combination, layout model.Layout) {
	t.Helper()
	require.Len(t, layout, len(c))
	require.True(t, c.Equal(layout.Combination()), "layout holds %s, want %s", layout.Combination(), c)
	for i, a := range layout {
		require.True(t, a.Within(inv.Container), "piece %v at (%d,%d) outside container", a.Piece, a.X, a.Y)
		for _, b := range layout[i+1:] {
			require.False(t, a.Collides(b), "pieces %v and %v overlap", a.Piece, b.Piece)
		}
	}
}
