// Package export renders coverings of an inventory to PDF sheets, QR piece
// labels, DXF drawings, Excel reports and HTML charts.
package export

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piwi3910/LayerFit/internal/engine"
	"github.com/piwi3910/LayerFit/internal/model"
)

// ErrEmptyPlan is returned when there is nothing to render.
var ErrEmptyPlan = errors.New("no layers to export")

// LayerPlan is one layer of a covering with the layout that shows it fits.
type LayerPlan struct {
	Index       int               `json:"index"` // 1-based
	Combination model.Combination `json:"combination"`
	Layout      model.Layout      `json:"layout"`
}

// Plan is a covering laid out for rendering.
type Plan struct {
	RunID     string      `json:"run_id"`
	Container model.Piece `json:"container"`
	Distance  uint32      `json:"distance"`
	Layers    []LayerPlan `json:"layers"`

	inv *model.Inventory
}

// BuildPlan places every layer with the fitter. A layer that does not fit
// the container is an error. An empty runID gets a fresh one.
func BuildPlan(f *engine.Fitter, layers []model.Combination, runID string) (Plan, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	inv := f.Inventory
	plan := Plan{RunID: runID, Container: inv.Container, Distance: f.Distance, inv: inv}
	for i, layer := range layers {
		if err := inv.Validate(layer); err != nil {
			return Plan{}, fmt.Errorf("failed to validate layer %d: %w", i+1, err)
		}
		layout, ok := f.Check(layer)
		if !ok {
			return Plan{}, fmt.Errorf("layer %d (%s) does not fit the container", i+1, layer)
		}
		plan.Layers = append(plan.Layers, LayerPlan{Index: i + 1, Combination: layer, Layout: layout})
	}
	return plan, nil
}

// BuildSolutionPlan places the three layers of a solution.
func BuildSolutionPlan(f *engine.Fitter, s model.Solution, runID string) (Plan, error) {
	return BuildPlan(f, s[:], runID)
}

// PieceCount returns the number of placed pieces over all layers.
func (p Plan) PieceCount() int {
	total := 0
	for _, l := range p.Layers {
		total += len(l.Layout)
	}
	return total
}

// Rotated reports whether the placement uses the swapped footprint of its piece.
func (p Plan) Rotated(pl model.Placement) bool {
	if p.inv == nil {
		return false
	}
	orig, ok := p.inv.Piece(pl.Piece.ID)
	return ok && !orig.Square() && orig.Width != pl.Piece.Width
}

// Efficiency returns the mean container usage over the layers in percent.
func (p Plan) Efficiency() float64 {
	if len(p.Layers) == 0 {
		return 0
	}
	var sum float64
	for _, l := range p.Layers {
		sum += l.Layout.Efficiency(p.Container)
	}
	return sum / float64(len(p.Layers))
}

// FreeStrips returns the empty strips of a layer, largest first.
func (p Plan) FreeStrips(layer LayerPlan) []model.FreeArea {
	return model.FreeStrips(layer.Layout, p.Container, p.Distance, 1)
}
