package engine

import "github.com/piwi3910/LayerFit/internal/model"

// Compact moves every piece of the layout toward the origin, one unit at a
// time, until no piece can move diagonally, left or up without colliding.
// It changes the layout in place and reports whether anything moved.
func Compact(layout model.Layout) bool {
	movedAny := false
	for {
		moved := false
		for i := range layout {
			for compactPiece(layout, i) {
				moved = true
			}
		}
		if !moved {
			return movedAny
		}
		movedAny = true
	}
}

// compactPiece runs one diagonal, horizontal and vertical sweep for piece i.
func compactPiece(layout model.Layout, i int) bool {
	p := &layout[i]
	moved := false

	for p.X > 0 && p.Y > 0 {
		p.X--
		p.Y--
		if collidesAny(layout, i) {
			p.X++
			p.Y++
			break
		}
		moved = true
	}
	for p.X > 0 {
		p.X--
		if collidesAny(layout, i) {
			p.X++
			break
		}
		moved = true
	}
	for p.Y > 0 {
		p.Y--
		if collidesAny(layout, i) {
			p.Y++
			break
		}
		moved = true
	}
	return moved
}

func collidesAny(layout model.Layout, i int) bool {
	for j := range layout {
		if j != i && layout[i].Collides(layout[j]) {
			return true
		}
	}
	return false
}
