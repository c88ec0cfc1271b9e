package model

import "sort"

// FreeArea is an empty rectangle of a layer left over after placement.
type FreeArea struct {
	X      uint32 `json:"x"`
	Y      uint32 `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Area returns the area of the free rectangle.
func (f FreeArea) Area() uint32 {
	return f.Width * f.Height
}

// FreeStrips finds the strip right of all pieces and the strip below them,
// skipping strips with a side shorter than minSide. Pieces need distance
// clearance to the strips. The larger strip comes first.
func FreeStrips(layout Layout, container Piece, distance, minSide uint32) []FreeArea {
	if len(layout) == 0 {
		return []FreeArea{{Width: container.Width, Height: container.Height}}
	}

	var maxRight, maxBottom uint32
	for _, p := range layout {
		maxRight = max(maxRight, p.Right()+distance)
		maxBottom = max(maxBottom, p.Bottom()+distance)
	}
	maxRight = min(maxRight, container.Width)
	maxBottom = min(maxBottom, container.Height)

	var out []FreeArea
	// Right strip spans the full height.
	if w := container.Width - maxRight; w >= minSide && w > 0 && container.Height >= minSide {
		out = append(out, FreeArea{X: maxRight, Y: 0, Width: w, Height: container.Height})
	}
	// Bottom strip stops where the right strip starts.
	if h := container.Height - maxBottom; h >= minSide && h > 0 && maxRight >= minSide && maxRight > 0 {
		out = append(out, FreeArea{X: 0, Y: maxBottom, Width: maxRight, Height: h})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Area() > out[j].Area() })
	return out
}

// TotalFreeArea returns the total area of the free rectangles.
func TotalFreeArea(areas []FreeArea) uint32 {
	var total uint32
	for _, a := range areas {
		total += a.Area()
	}
	return total
}
