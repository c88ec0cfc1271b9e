package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a drawing coordinate in drawing units.
type point struct {
	x, y float64
}

// segment represents a line segment between two points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// box is the bounding box of one closed outline.
type box struct {
	min, max point
}

func (b box) size() (float64, float64) {
	return b.max.x - b.min.x, b.max.y - b.min.y
}

func boundsOf(pts []point) box {
	b := box{min: pts[0], max: pts[0]}
	for _, p := range pts[1:] {
		b.min.x = math.Min(b.min.x, p.x)
		b.min.y = math.Min(b.min.y, p.y)
		b.max.x = math.Max(b.max.x, p.x)
		b.max.y = math.Max(b.max.y, p.y)
	}
	return b
}

// ImportDXF imports pieces from a DXF drawing. Each closed shape (LWPOLYLINE
// or chain of connected LINEs) becomes a piece whose footprint is its bounding
// box rounded to whole cells. Pieces are numbered from 1 in drawing order.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var boxes []box
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			pts := make([]point, len(e.Vertices))
			for i, v := range e.Vertices {
				pts[i] = point{x: v[0], y: v[1]}
			}
			boxes = append(boxes, boundsOf(pts))

		case *entity.Line:
			segments = append(segments, segment{
				start: point{x: e.Start[0], y: e.Start[1]},
				end:   point{x: e.End[0], y: e.End[1]},
			})
		}
	}

	for _, chain := range chainSegments(segments, 0.01) {
		boxes = append(boxes, boundsOf(chain))
	}

	if len(boxes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for _, b := range boxes {
		w, h := b.size()
		width, height := math.Round(w), math.Round(h)
		if width < 1 || height < 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
			continue
		}
		id := model.PieceID(len(result.Pieces) + 1)
		result.Pieces = append(result.Pieces, model.NewPiece(id, uint32(width), uint32(height)))
	}

	return result
}

// chainSegments links segments end to end and returns the closed chains
// as point lists without the repeated closing point.
func chainSegments(segments []segment, tolerance float64) [][]point {
	used := make([]bool, len(segments))
	var chains [][]point

	for start := range segments {
		if used[start] {
			continue
		}
		used[start] = true
		chain := []point{segments[start].start, segments[start].end}

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]
			for i, seg := range segments {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chains = append(chains, chain[:len(chain)-1])
		}
	}
	return chains
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
