package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrientations_RotatedIncludedWhenItFits(t *testing.T) {
	container := NewContainer(10, 4)
	p := NewPiece(1, 3, 2)

	got := p.Orientations(container)
	require.Len(t, got, 2)
	assert.Equal(t, NewPiece(1, 3, 2), got[0])
	assert.Equal(t, NewPiece(1, 2, 3), got[1])
}

func TestOrientations_OnlyRotated(t *testing.T) {
	// 2 wide, 6 high only fits the 10x4 container lying down.
	got := NewPiece(1, 2, 6).Orientations(NewContainer(10, 4))
	require.Len(t, got, 1)
	assert.Equal(t, uint32(6), got[0].Width)
	assert.Equal(t, uint32(2), got[0].Height)
}

func TestOrientations_SquareHasOne(t *testing.T) {
	got := NewPiece(1, 3, 3).Orientations(NewContainer(10, 4))
	assert.Len(t, got, 1)
}

func TestOrientations_TooLarge(t *testing.T) {
	got := NewPiece(1, 11, 5).Orientations(NewContainer(10, 4))
	assert.Empty(t, got)
}

func TestOrientations_MembersNeverExceedContainer(t *testing.T) {
	container := NewContainer(7, 5)
	for w := uint32(1); w <= 9; w++ {
		for h := uint32(1); h <= 9; h++ {
			p := NewPiece(1, w, h)
			got := p.Orientations(container)
			for _, o := range got {
				if o.Width > container.Width || o.Height > container.Height {
					t.Errorf("%v: orientation %v exceeds container", p, o)
				}
			}
			if w <= container.Height && h <= container.Width {
				assert.Contains(t, got, p.Rotated(), "%v rotated should fit", p)
			}
		}
	}
}

func TestDimKey(t *testing.T) {
	assert.Equal(t, DimKey{Major: 45, Minor: 19}, NewPiece(1, 19, 45).DimKey())
	assert.Equal(t, DimKey{Major: 450, Minor: 190}, NewPiece(1, 198, 450).DimKey())
	assert.Equal(t, DimKey{Major: 320, Minor: 170}, NewPiece(5, 173, 323).DimKey())
	assert.Equal(t, NewPiece(1, 2, 5).DimKey(), NewPiece(2, 5, 2).DimKey())
	assert.Equal(t, "320,170", NewPiece(5, 173, 323).DimKey().String())
}

func TestPlacementCollides(t *testing.T) {
	a := Placement{Piece: NewPiece(1, 2, 2), X: 0, Y: 0}

	tests := []struct {
		name string
		b    Placement
		want bool
	}{
		{"overlap", Placement{Piece: NewPiece(2, 2, 2), X: 1, Y: 1}, true},
		{"adjacent right", Placement{Piece: NewPiece(2, 2, 2), X: 2, Y: 0}, false},
		{"adjacent below", Placement{Piece: NewPiece(2, 2, 2), X: 0, Y: 2}, false},
		{"far", Placement{Piece: NewPiece(2, 1, 1), X: 5, Y: 5}, false},
		{"same id", Placement{Piece: NewPiece(1, 2, 2), X: 0, Y: 0}, false},
		{"contained", Placement{Piece: NewPiece(3, 1, 1), X: 1, Y: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Collides(tt.b))
			assert.Equal(t, tt.want, tt.b.Collides(a))
		})
	}
}

func TestLayoutValid(t *testing.T) {
	container := NewContainer(4, 2)
	ok := Layout{
		{Piece: NewPiece(1, 2, 2), X: 0, Y: 0},
		{Piece: NewPiece(2, 2, 2), X: 2, Y: 0},
	}
	assert.True(t, ok.Valid(container))
	assert.Equal(t, uint32(8), ok.Area())
	assert.InDelta(t, 100.0, ok.Efficiency(container), 0.001)
	assert.Equal(t, NewCombination(1, 2), ok.Combination())

	outside := Layout{{Piece: NewPiece(1, 2, 2), X: 3, Y: 0}}
	assert.False(t, outside.Valid(container))

	overlapping := Layout{
		{Piece: NewPiece(1, 2, 2), X: 0, Y: 0},
		{Piece: NewPiece(2, 2, 2), X: 1, Y: 0},
	}
	assert.False(t, overlapping.Valid(container))
}

func TestNewInventory_Validation(t *testing.T) {
	container := NewContainer(10, 4)

	_, err := NewInventory(container, []Piece{NewPiece(1, 1, 1), NewPiece(1, 2, 2)})
	assert.True(t, errors.Is(err, ErrInvalidInventory), "duplicate id")

	_, err = NewInventory(container, []Piece{NewPiece(ContainerID, 1, 1)})
	assert.True(t, errors.Is(err, ErrInvalidInventory), "reserved id")

	_, err = NewInventory(container, []Piece{NewPiece(1, 0, 1)})
	assert.True(t, errors.Is(err, ErrInvalidInventory), "zero width")

	_, err = NewInventory(NewContainer(0, 4), nil)
	assert.True(t, errors.Is(err, ErrInvalidInventory), "zero container")
}

func TestInventoryTables(t *testing.T) {
	inv, err := NewInventory(NewContainer(10, 4), []Piece{
		NewPiece(3, 2, 1),
		NewPiece(1, 1, 2),
		NewPiece(2, 3, 3),
		NewPiece(7, 2, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, inv.Len())
	assert.Equal(t, NewCombination(1, 2, 3, 7), inv.All())
	assert.Equal(t, []PieceID{1, 3, 7}, inv.Class(3))
	assert.Equal(t, []PieceID{2}, inv.Class(2))
	assert.Equal(t, PieceID(1), inv.Representative(7))
	assert.Equal(t, 2, inv.ClassCount())
	assert.Len(t, inv.Orientations(2), 1)
	assert.Len(t, inv.Orientations(1), 2)
	assert.False(t, inv.Has(4))
	assert.Nil(t, inv.Orientations(4))
	assert.Equal(t, uint32(15), inv.TotalArea())
	assert.Equal(t, uint32(11), inv.Area(NewCombination(2, 3)))

	err = inv.Validate(NewCombination(1, 4))
	assert.True(t, errors.Is(err, ErrUnknownPiece))
	assert.NoError(t, inv.Validate(NewCombination(1, 7)))
}

func TestDefaultMinSolutionArea(t *testing.T) {
	inv, err := NewInventory(NewContainer(2, 2), []Piece{NewPiece(1, 2, 2), NewPiece(2, 2, 2), NewPiece(3, 2, 1)})
	require.NoError(t, err)
	// 10 - 2*4
	assert.Equal(t, uint32(2), DefaultMinSolutionArea(inv))

	small, err := NewInventory(NewContainer(2, 2), []Piece{NewPiece(1, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), DefaultMinSolutionArea(small))

	s := DefaultSettings()
	assert.Equal(t, uint32(2), s.EffectiveMinSolutionArea(inv))
	s.MinSolutionArea = 7
	assert.Equal(t, uint32(7), s.EffectiveMinSolutionArea(inv))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.GreaterOrEqual(t, s.Workers, 1)
	assert.Equal(t, 1, s.MinPieces)
	assert.Equal(t, 100, s.MaxPieces)
	assert.False(t, s.Stages.Generate)

	s.Workers = 0
	assert.Equal(t, 1, s.EffectiveWorkers())
}
