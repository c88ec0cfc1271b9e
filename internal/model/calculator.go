package model

import "math"

// AreaEstimate summarises how the inventory area compares to the container.
type AreaEstimate struct {
	TotalPieceArea    uint32    `json:"total_piece_area"`    // Area of every piece
	ContainerArea     uint32    `json:"container_area"`      // Area of one container
	LayersNeededExact float64   `json:"layers_needed_exact"` // Fractional number of containers
	LayersNeededMin   int       `json:"layers_needed_min"`   // Ceiling of the exact value
	SpareArea         int64     `json:"spare_area"`          // Three containers minus the pieces; negative when a covering is impossible
	LargestPieceArea  uint32    `json:"largest_piece_area"`
	UnplaceablePieces []PieceID `json:"unplaceable_pieces"` // Pieces with no fitting orientation
}

// CalculateAreaEstimate computes the area bounds of a three-layer covering.
func CalculateAreaEstimate(inv *Inventory) AreaEstimate {
	est := AreaEstimate{
		TotalPieceArea: inv.TotalArea(),
		ContainerArea:  inv.Container.Area(),
	}
	for _, p := range inv.Pieces {
		if a := p.Area(); a > est.LargestPieceArea {
			est.LargestPieceArea = a
		}
		if len(inv.Orientations(p.ID)) == 0 {
			est.UnplaceablePieces = append(est.UnplaceablePieces, p.ID)
		}
	}
	est.SpareArea = 3*int64(est.ContainerArea) - int64(est.TotalPieceArea)
	if est.ContainerArea == 0 {
		return est
	}
	est.LayersNeededExact = float64(est.TotalPieceArea) / float64(est.ContainerArea)
	est.LayersNeededMin = int(math.Ceil(est.LayersNeededExact))
	return est
}

// Coverable reports whether a three-layer covering is possible by area and orientation alone.
func (e AreaEstimate) Coverable() bool {
	return e.SpareArea >= 0 && len(e.UnplaceablePieces) == 0
}
