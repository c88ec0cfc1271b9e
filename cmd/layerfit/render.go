package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/LayerFit/internal/engine"
	"github.com/piwi3910/LayerFit/internal/export"
	"github.com/piwi3910/LayerFit/internal/importer"
	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/piwi3910/LayerFit/internal/project"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagOut     string
	flagFormats []string
	flagIndex   int
)

var cmdRender = cobra.Command{
	Use:   "render [solution]",
	Short: "Render a solution such as \"1,4 2,3 5\" to PDF, labels, DXF, XLSX and an HTML chart.",
	Long: "Render a solution given on the command line, or the --index'th line of the\n" +
		"configured solutions file when no solution is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, cfg, err := loadInventory(cmd)
		if err != nil {
			return err
		}

		var solutions []model.Solution
		if path := cfg.Settings.Paths.Solutions; path != "" {
			solutions, err = project.ReadSolutions(path, inv)
			if err != nil && len(args) == 0 {
				return err
			}
		}
		var s model.Solution
		if len(args) == 1 {
			s, err = model.ParseSolution(args[0])
			if err != nil {
				return err
			}
		} else {
			if flagIndex < 0 || flagIndex >= len(solutions) {
				return fmt.Errorf("solution index %d out of range (%d solutions)", flagIndex, len(solutions))
			}
			s = solutions[flagIndex]
		}

		plan, err := export.BuildSolutionPlan(engine.NewFitter(inv, cfg.Settings.Distance), s, "")
		if err != nil {
			return err
		}
		if err := os.MkdirAll(flagOut, 0755); err != nil {
			return err
		}

		ranking := engine.Rank(inv, solutions)
		for _, format := range flagFormats {
			path, err := renderFormat(strings.ToLower(strings.TrimSpace(format)), plan, ranking)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			if path != "" {
				logrus.WithField("path", path).Info("Wrote " + format)
			}
		}
		return nil
	},
}

func renderFormat(format string, plan export.Plan, ranking []engine.RankedLayer) (string, error) {
	switch format {
	case "pdf":
		path := filepath.Join(flagOut, "layers.pdf")
		return path, export.ExportPDF(path, plan)
	case "labels":
		path := filepath.Join(flagOut, "labels.pdf")
		return path, export.ExportLabels(path, plan)
	case "dxf":
		path := filepath.Join(flagOut, "layers.dxf")
		return path, export.ExportDXF(path, plan)
	case "xlsx":
		path := filepath.Join(flagOut, "report.xlsx")
		return path, export.ExportXLSX(path, plan, ranking)
	case "chart":
		if len(ranking) == 0 {
			logrus.Warn("no solutions file to rank, skipping chart")
			return "", nil
		}
		path := filepath.Join(flagOut, "ranking.html")
		f, err := os.Create(path)
		if err != nil {
			return path, err
		}
		defer f.Close()
		return path, export.RenderRankingChart(f, ranking, 30)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

var (
	flagMerge     bool
	flagContainer string
)

var cmdImport = cobra.Command{
	Use:   "import <pieces.csv|.xlsx|.dxf> <config.toml>",
	Short: "Import a piece list into a configuration file.",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		filein, fileout := args[0], args[1]
		result := importer.ImportFile(filein)
		for _, w := range result.Warnings {
			logrus.Warnf("%s: %s", filein, w)
		}
		for _, e := range result.Errors {
			logrus.Errorf("%s: %s", filein, e)
		}
		if !result.OK() {
			return fmt.Errorf("%q: import failed with %d errors", filein, len(result.Errors))
		}

		cfg := project.DefaultConfig()
		if flagMerge {
			if existing, err := project.LoadConfig(fileout); err == nil {
				cfg = existing
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
		if flagContainer != "" {
			var w, h uint32
			if _, err := fmt.Sscanf(flagContainer, "%dx%d", &w, &h); err != nil {
				return fmt.Errorf("invalid container size %q, want WIDTHxHEIGHT: %w", flagContainer, err)
			}
			cfg.Container = project.Dimensions{Width: w, Height: h}
		}
		merged, skipped := project.MergePieces(cfg.Pieces, result.Pieces)
		if len(skipped) > 0 {
			logrus.Warnf("skipped %d pieces with ids already in %q: %v", len(skipped), fileout, skipped)
		}
		cfg.Pieces = merged
		cfg.Preset = ""
		if _, err := cfg.Inventory(); err != nil {
			logrus.Warnf("configuration is not usable yet: %v", err)
		}
		if err := project.SaveConfig(fileout, cfg); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"pieces": len(merged), "path": fileout}).Info("Imported pieces")
		return nil
	},
}

func init() {
	cmdRender.Flags().StringVarP(&flagOut, "out", "o", "render", "output directory")
	cmdRender.Flags().StringSliceVar(&flagFormats, "formats", []string{"pdf", "labels", "dxf", "xlsx", "chart"}, "formats to write")
	cmdRender.Flags().IntVar(&flagIndex, "index", 0, "solution line to render from the solutions file")
	cmdImport.Flags().BoolVar(&flagMerge, "merge", false, "add to the pieces already in the configuration file")
	cmdImport.Flags().StringVar(&flagContainer, "container", "", "container size as WIDTHxHEIGHT")
}
