package engine

import (
	"math/bits"
	"testing"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallInventory(t *testing.T) *model.Inventory {
	t.Helper()
	inv, err := model.NewInventory(model.NewContainer(4, 2), []model.Piece{
		model.NewPiece(1, 2, 2),
		model.NewPiece(2, 2, 1),
		model.NewPiece(3, 3, 2),
		model.NewPiece(4, 1, 1),
	})
	require.NoError(t, err)
	return inv
}

func TestGenerateSubsets_AllWithinArea(t *testing.T) {
	inv := smallInventory(t)

	got := GenerateSubsets(inv, 1, 4, 0)
	want := []model.Combination{
		{1}, {2}, {3}, {4},
		{1, 2}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
		{1, 2, 4},
	}
	assert.Equal(t, want, got)
}

func TestGenerateSubsets_MinAreaAndSize(t *testing.T) {
	inv := smallInventory(t)

	got := GenerateSubsets(inv, 1, 2, 6)
	want := []model.Combination{{3}, {1, 2}, {2, 3}, {3, 4}}
	assert.Equal(t, want, got)

	assert.Empty(t, GenerateSubsets(inv, 4, 4, 0))
	assert.Len(t, GenerateSubsets(inv, 0, 1, 0), 4, "min size is clamped to one")
}

func TestGenerateSubsets_NeverExceedsContainer(t *testing.T) {
	inv := twentyInventory(t)
	limit := inv.Container.Area()

	got := GenerateSubsets(inv, 1, 4, 0)
	require.NotEmpty(t, got)
	count := 0
	for _, c := range got {
		assert.LessOrEqual(t, inv.Area(c), limit, "subset %s", c)
		assert.True(t, len(c) >= 1 && len(c) <= 4)
	}

	// Same count as a brute force over all subsets of up to four pieces.
	n := inv.Len()
	for mask := 1; mask < 1<<n; mask++ {
		if bits.OnesCount(uint(mask)) > 4 {
			continue
		}
		var area uint32
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				area += inv.Pieces[i].Area()
			}
		}
		if area <= limit {
			count++
		}
	}
	assert.Equal(t, count, len(got))
}
