package engine

import (
	"github.com/piwi3910/LayerFit/internal/model"
)

// Fitter decides whether subsets of an inventory can be placed in its container.
// It is stateless apart from the read-only inventory and safe for concurrent use.
type Fitter struct {
	Inventory *model.Inventory
	Distance  uint32
}

func NewFitter(inv *model.Inventory, distance uint32) *Fitter {
	return &Fitter{Inventory: inv, Distance: distance}
}

// CheckOrdered places seq exactly as given, without reordering or rotating:
// shelf placement, then compaction, then a bounds check.
func (f *Fitter) CheckOrdered(seq []model.Piece) (model.Layout, bool) {
	container := f.Inventory.Container
	layout, ok := Shelf(seq, container, f.Distance)
	if !ok {
		return nil, false
	}
	Compact(layout)
	for _, p := range layout {
		if !p.Within(container) {
			return nil, false
		}
	}
	return layout, true
}

// Check tries every orientation choice and every distinct ordering of the
// pieces of c and returns the first layout that fits. Unknown ids and pieces
// without a fitting orientation make the subset infeasible.
func (f *Fitter) Check(c model.Combination) (model.Layout, bool) {
	if len(c) == 0 {
		return model.Layout{}, true
	}
	choices := make([][]model.Piece, len(c))
	for i, id := range c {
		choices[i] = f.Inventory.Orientations(id)
		if len(choices[i]) == 0 {
			return nil, false
		}
	}

	// Cheap rejection before enumerating n! orderings.
	if f.Inventory.Area(c) > f.Inventory.Container.Area() {
		return nil, false
	}

	oriented := make([]model.Piece, len(c))
	pick := make([]int, len(c))
	for {
		for i, k := range pick {
			oriented[i] = choices[i][k]
		}
		if layout, ok := f.firstPermutation(oriented); ok {
			return layout, true
		}
		if !nextChoice(pick, choices) {
			return nil, false
		}
	}
}

// nextChoice advances the orientation odometer, last position fastest.
func nextChoice(pick []int, choices [][]model.Piece) bool {
	for i := len(pick) - 1; i >= 0; i-- {
		pick[i]++
		if pick[i] < len(choices[i]) {
			return true
		}
		pick[i] = 0
	}
	return false
}

// firstPermutation runs CheckOrdered over the distinct orderings of pieces
// and stops at the first success.
func (f *Fitter) firstPermutation(pieces []model.Piece) (model.Layout, bool) {
	var found model.Layout
	ok := walkDistinct(pieces, func(seq []model.Piece) bool {
		layout, ok := f.CheckOrdered(seq)
		if ok {
			found = layout
		}
		return ok
	})
	return found, ok
}

// walkDistinct calls visit for every ordering of pieces until it returns
// true. Orderings that differ only by swapping pieces with the same
// footprint place identically and are visited once. The slice passed to
// visit is reused between calls.
func walkDistinct(pieces []model.Piece, visit func([]model.Piece) bool) bool {
	n := len(pieces)
	seq := make([]model.Piece, n)
	used := make([]bool, n)

	var walk func(pos int) bool
	walk = func(pos int) bool {
		if pos == n {
			return visit(seq)
		}
		tried := make([]model.Piece, 0, n-pos)
		for i, p := range pieces {
			if used[i] || triedFootprint(tried, p) {
				continue
			}
			tried = append(tried, p)
			used[i] = true
			seq[pos] = p
			if walk(pos + 1) {
				return true
			}
			used[i] = false
		}
		return false
	}
	return walk(0)
}

func triedFootprint(tried []model.Piece, p model.Piece) bool {
	for _, t := range tried {
		if t.SameFootprint(p) {
			return true
		}
	}
	return false
}
