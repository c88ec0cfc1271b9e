package engine

import "github.com/piwi3910/LayerFit/internal/model"

// Shelf places an ordered sequence of already oriented pieces row by row,
// left to right, leaving distance between neighbours and between rows. A
// piece starts a new row when the row's gap-free width would exceed the
// container. It reports false as soon as the gap-free column heights exceed
// the container height. The returned layout may still extend past the
// container on either axis because of the gaps; Compact and a bounds check
// decide the final outcome.
func Shelf(seq []model.Piece, container model.Piece, distance uint32) (model.Layout, bool) {
	columns := int(container.Width) + len(seq)*int(distance)
	spaced := make([]uint32, columns) // column heights including row gaps
	plain := make([]uint32, columns)  // column heights without gaps

	var xSpaced, xPlain uint32
	layout := make(model.Layout, 0, len(seq))
	for _, p := range seq {
		if p.Width > container.Width {
			return nil, false
		}
		if xPlain+p.Width > container.Width {
			xSpaced, xPlain = 0, 0
			if maxHeight(plain) > container.Height {
				return nil, false
			}
		}

		lo, hi := xSpaced, xSpaced+p.Width
		ySpaced := maxHeight(spaced[lo:hi])
		y := maxHeight(plain[lo:hi])
		if ySpaced > 0 {
			ySpaced += distance
		}
		layout = append(layout, model.Placement{Piece: p, X: xSpaced, Y: ySpaced})

		ySpaced += p.Height
		y += p.Height
		for i := lo; i < hi; i++ {
			spaced[i] = ySpaced
			plain[i] = y
		}
		xSpaced += p.Width + distance
		xPlain += p.Width
	}
	if maxHeight(plain) > container.Height {
		return nil, false
	}
	return layout, true
}

func maxHeight(columns []uint32) uint32 {
	var m uint32
	for _, h := range columns {
		if h > m {
			m = h
		}
	}
	return m
}
