package engine

import "github.com/piwi3910/LayerFit/internal/model"

// GenerateSubsets enumerates every subset of the inventory with between
// minPieces and maxPieces members whose total area is at most the container
// area and at least minArea. Subsets come out by size, then in lexicographic
// id order.
func GenerateSubsets(inv *model.Inventory, minPieces, maxPieces int, minArea uint32) []model.Combination {
	n := inv.Len()
	if minPieces < 1 {
		minPieces = 1
	}
	if maxPieces > n {
		maxPieces = n
	}
	limit := inv.Container.Area()

	var out []model.Combination
	pick := make([]int, 0, maxPieces)
	var walk func(start, size int, area uint32)
	walk = func(start, size int, area uint32) {
		if len(pick) == size {
			if area >= minArea {
				c := make(model.Combination, size)
				for i, idx := range pick {
					c[i] = inv.Pieces[idx].ID
				}
				out = append(out, c)
			}
			return
		}
		for i := start; i <= n-(size-len(pick)); i++ {
			a := area + inv.Pieces[i].Area()
			// Areas only grow, so a subset over the limit cannot be extended.
			if a > limit {
				continue
			}
			pick = append(pick, i)
			walk(i+1, size, a)
			pick = pick[:len(pick)-1]
		}
	}
	for size := minPieces; size <= maxPieces; size++ {
		walk(0, size, 0)
	}
	return out
}
