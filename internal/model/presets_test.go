package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"mm", "mm10", "mm100"}, PresetNames())

	for _, name := range PresetNames() {
		p, err := GetPreset(name)
		require.NoError(t, err)
		assert.Len(t, p.Pieces, 18, name)
		assert.Equal(t, ContainerID, p.Container.ID)

		inv, err := p.Inventory()
		require.NoError(t, err, name)
		assert.Equal(t, 18, inv.Len())
		for _, piece := range inv.Pieces {
			assert.NotEmpty(t, inv.Orientations(piece.ID), "%s: piece %d has no orientation", name, piece.ID)
		}
	}

	_, err := GetPreset("inch")
	assert.Error(t, err)
}

func TestPreset_WidthHeightOrder(t *testing.T) {
	p, err := GetPreset("mm")
	require.NoError(t, err)
	assert.Equal(t, uint32(71), p.Container.Width)
	assert.Equal(t, uint32(47), p.Container.Height)
	// Piece 16 is the long strip: 12 wide, 52 high.
	assert.Equal(t, NewPiece(16, 12, 52), p.Pieces[15])
}

func TestPreset_SharedClasses(t *testing.T) {
	p, err := GetPreset("mm10")
	require.NoError(t, err)
	inv, err := p.Inventory()
	require.NoError(t, err)
	// 5 and 12 are both 173x323, 8 and 15 both 124x224.
	assert.Equal(t, []PieceID{5, 12}, inv.Class(12))
	assert.Equal(t, []PieceID{8, 15}, inv.Class(8))
	assert.Equal(t, PieceID(8), inv.Representative(15))
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	p, err := GetPreset("mm")
	require.NoError(t, err)
	p.Pieces[0].Width = 999

	again, err := GetPreset("mm")
	require.NoError(t, err)
	assert.Equal(t, uint32(19), again.Pieces[0].Width)
}

func TestCalculateAreaEstimate(t *testing.T) {
	inv, err := NewInventory(NewContainer(4, 2), []Piece{
		NewPiece(1, 4, 2), NewPiece(2, 4, 2), NewPiece(3, 2, 2), NewPiece(4, 5, 1),
	})
	require.NoError(t, err)

	est := CalculateAreaEstimate(inv)
	assert.Equal(t, uint32(25), est.TotalPieceArea)
	assert.Equal(t, uint32(8), est.ContainerArea)
	assert.Equal(t, 4, est.LayersNeededMin)
	assert.Equal(t, int64(-1), est.SpareArea)
	assert.Equal(t, []PieceID{4}, est.UnplaceablePieces)
	assert.False(t, est.Coverable())
}
