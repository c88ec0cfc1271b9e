package export

import (
	"fmt"

	"github.com/piwi3910/LayerFit/internal/engine"
	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// ExportXLSX writes a workbook with a summary sheet, one sheet per layer
// listing its placements, and a Ranking sheet when ranking is not empty.
func ExportXLSX(path string, plan Plan, ranking []engine.RankedLayer) error {
	if len(plan.Layers) == 0 {
		return ErrEmptyPlan
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Run", plan.RunID},
		{"Container", fmt.Sprintf("%d x %d", plan.Container.Width, plan.Container.Height)},
		{"Layers", len(plan.Layers)},
		{"Pieces", plan.PieceCount()},
		{"Mean efficiency %", round1(plan.Efficiency())},
		{},
		{"Layer", "Pieces", "Count", "Area", "Efficiency %", "Free area"},
	}
	for _, layer := range plan.Layers {
		summary = append(summary, []interface{}{
			layer.Index,
			layer.Combination.String(),
			len(layer.Layout),
			layer.Layout.Area(),
			round1(layer.Layout.Efficiency(plan.Container)),
			model.TotalFreeArea(plan.FreeStrips(layer)),
		})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	for _, layer := range plan.Layers {
		sheet := fmt.Sprintf("Layer %d", layer.Index)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}
		rows := [][]interface{}{{"ID", "X", "Y", "Width", "Height", "Rotated"}}
		for _, p := range layer.Layout {
			rows = append(rows, []interface{}{int(p.Piece.ID), p.X, p.Y, p.Piece.Width, p.Piece.Height, plan.Rotated(p)})
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	if len(ranking) > 0 {
		if _, err := f.NewSheet("Ranking"); err != nil {
			return fmt.Errorf("failed to create ranking sheet: %w", err)
		}
		rows := [][]interface{}{{"Rank", "Layer", "Dimensions", "Solutions"}}
		for i, r := range ranking {
			rows = append(rows, []interface{}{i + 1, r.Combination.String(), r.Key, r.Count})
		}
		if err := writeRows(f, "Ranking", rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
