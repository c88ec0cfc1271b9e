package export

import (
	"fmt"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// layerGap separates consecutive containers in the drawing, in cells.
const layerGap = 10

var dxfColors = []color.ColorNumber{color.Red, color.Yellow, color.Green, color.Cyan, color.Blue, color.Magenta}

// ExportDXF draws every layer side by side: the container outline on the
// CONTAINER layer and each piece as a closed polyline with its id on a DXF
// layer named after the plan layer. DXF Y grows upwards, so rows are flipped.
func ExportDXF(path string, plan Plan) error {
	if len(plan.Layers) == 0 {
		return ErrEmptyPlan
	}

	d := dxf.NewDrawing()
	cw, ch := float64(plan.Container.Width), float64(plan.Container.Height)

	if _, err := d.AddLayer("CONTAINER", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add container layer: %w", err)
	}
	for i := range plan.Layers {
		ox := float64(i) * (cw + layerGap)
		if _, err := d.LwPolyline(true, rect(ox, 0, cw, ch)...); err != nil {
			return fmt.Errorf("failed to draw container %d: %w", i+1, err)
		}
	}

	for i, layer := range plan.Layers {
		name := fmt.Sprintf("LAYER_%d", layer.Index)
		if _, err := d.AddLayer(name, dxfColors[i%len(dxfColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		ox := float64(i) * (cw + layerGap)
		for _, p := range layer.Layout {
			if err := drawPiece(d, p, ox, ch); err != nil {
				return fmt.Errorf("failed to draw piece %d on %s: %w", p.Piece.ID, name, err)
			}
		}
	}

	return d.SaveAs(path)
}

func drawPiece(d *drawing.Drawing, p model.Placement, ox, containerHeight float64) error {
	w, h := float64(p.Piece.Width), float64(p.Piece.Height)
	x := ox + float64(p.X)
	y := containerHeight - float64(p.Y) - h
	if _, err := d.LwPolyline(true, rect(x, y, w, h)...); err != nil {
		return err
	}
	size := min(w, h) / 3
	_, err := d.Text(fmt.Sprintf("%d", p.Piece.ID), x+w/2-size/2, y+h/2-size/2, 0, size)
	return err
}

// rect returns the corners of an axis-aligned rectangle, counter-clockwise.
func rect(x, y, w, h float64) [][]float64 {
	return [][]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
