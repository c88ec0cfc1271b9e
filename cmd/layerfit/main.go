package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/piwi3910/LayerFit/internal/engine"
	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/piwi3910/LayerFit/internal/pipeline"
	"github.com/piwi3910/LayerFit/internal/project"
	"github.com/piwi3910/LayerFit/internal/server"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagPreset   string
	flagVerbose  bool
	flagWorkers  int
	flagDistance uint32
)

var cmdRoot = cobra.Command{
	Use:           "layerfit",
	Short:         "LayerFit splits a set of rectangles into three container-sized layers.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// loadConfig resolves the configuration from the flags: an explicit file,
// else a preset, else the default configuration file.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	var cfg project.Config
	var err error
	switch {
	case flagConfig != "":
		cfg, err = project.LoadConfig(flagConfig)
	case flagPreset != "":
		cfg = project.DefaultConfig()
	default:
		var path string
		path, err = project.DefaultConfigPath()
		if err != nil {
			return cfg, err
		}
		cfg, err = project.LoadOrCreateConfig(path)
	}
	if err != nil {
		return cfg, err
	}
	if flagPreset != "" {
		cfg.Preset = flagPreset
		cfg.Pieces = nil
	}
	if cmd.Flags().Changed("workers") {
		cfg.Settings.Workers = flagWorkers
	}
	if cmd.Flags().Changed("distance") {
		cfg.Settings.Distance = flagDistance
	}
	return cfg, nil
}

func loadInventory(cmd *cobra.Command) (*model.Inventory, project.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	inv, err := cfg.Inventory()
	if err != nil {
		return nil, cfg, err
	}
	return inv, cfg, nil
}

var (
	flagRecompute []string
	flagManifest  string
)

var cmdRun = cobra.Command{
	Use:   "run",
	Short: "Run the search stages and print the solutions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		inv, cfg, err := loadInventory(cmd)
		if err != nil {
			return err
		}
		settings := cfg.Settings
		if cmd.Flags().Changed("recompute") {
			settings.Stages, err = parseStages(flagRecompute)
			if err != nil {
				return err
			}
		}
		est := model.CalculateAreaEstimate(inv)
		if !est.Coverable() {
			logrus.Warnf("inventory cannot be covered by three layers (spare area %d, unplaceable pieces %v)",
				est.SpareArea, est.UnplaceablePieces)
		}

		res, err := pipeline.New(inv, settings, logrus.StandardLogger()).Run()
		if err != nil {
			return err
		}
		if flagManifest != "" {
			if err := project.SaveManifest(flagManifest, res.Manifest); err != nil {
				return err
			}
		}
		for _, s := range res.Solutions {
			fmt.Println(s)
		}
		logrus.WithFields(logrus.Fields{
			"run":       res.Manifest.RunID,
			"layers":    len(res.Layers),
			"solutions": len(res.Solutions),
		}).Info("Run finished")
		return nil
	},
}

// parseStages turns the stage names to recompute into Stages.
func parseStages(names []string) (model.Stages, error) {
	var st model.Stages
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case pipeline.StageGenerate:
			st.Generate = true
		case pipeline.StageFit:
			st.Fit = true
		case pipeline.StageMatch:
			st.Match = true
		case pipeline.StageRank:
			st.Rank = true
		case "all":
			st = model.Stages{Generate: true, Fit: true, Match: true, Rank: true}
		case "", "none":
		default:
			return st, fmt.Errorf("unknown stage %q", name)
		}
	}
	return st, nil
}

var flagOrdered bool

var cmdCheck = cobra.Command{
	Use:   "check <ids>",
	Short: "Check whether the pieces 1,2,3... fit into one container.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, cfg, err := loadInventory(cmd)
		if err != nil {
			return err
		}
		c, err := model.ParseCombination(args[0])
		if err != nil {
			return err
		}
		if err := inv.Validate(c); err != nil {
			return err
		}
		fitter := engine.NewFitter(inv, cfg.Settings.Distance)

		var layout model.Layout
		var ok bool
		if flagOrdered {
			// Keep the order and orientation given on the command line.
			var seq []model.Piece
			for _, field := range strings.Split(args[0], ",") {
				var id model.PieceID
				if _, err := fmt.Sscan(strings.TrimSpace(field), &id); err != nil {
					return fmt.Errorf("invalid piece id %q: %w", field, err)
				}
				p, _ := inv.Piece(id)
				seq = append(seq, p)
			}
			layout, ok = fitter.CheckOrdered(seq)
		} else {
			layout, ok = fitter.Check(c)
		}
		if !ok {
			fmt.Printf("%s: does not fit\n", c)
			return nil
		}
		fmt.Printf("%s: fits (%.1f%%)\n", c, layout.Efficiency(inv.Container))
		for _, p := range layout {
			fmt.Printf("  %4d  %dx%d at %d,%d\n", p.Piece.ID, p.Piece.Width, p.Piece.Height, p.X, p.Y)
		}
		for _, f := range model.FreeStrips(layout, inv.Container, cfg.Settings.Distance, 1) {
			fmt.Printf("  free  %dx%d at %d,%d\n", f.Width, f.Height, f.X, f.Y)
		}
		return nil
	},
}

var cmdKey = cobra.Command{
	Use:   "key <ids>",
	Short: "Print the dedup key of a combination and its concrete variants.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, _, err := loadInventory(cmd)
		if err != nil {
			return err
		}
		c, err := model.ParseCombination(args[0])
		if err != nil {
			return err
		}
		if err := inv.Validate(c); err != nil {
			return err
		}
		fmt.Println(engine.DedupKey(inv, c))
		for _, v := range engine.Redup(inv, c, nil) {
			fmt.Printf("  %s\n", v)
		}
		return nil
	},
}

var cmdEstimate = cobra.Command{
	Use:   "estimate",
	Short: "Print the area bounds of the inventory.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		inv, cfg, err := loadInventory(cmd)
		if err != nil {
			return err
		}
		est := model.CalculateAreaEstimate(inv)
		fmt.Printf("pieces:            %d (%d classes)\n", inv.Len(), inv.ClassCount())
		fmt.Printf("container:         %dx%d\n", inv.Container.Width, inv.Container.Height)
		fmt.Printf("piece area:        %d\n", est.TotalPieceArea)
		fmt.Printf("layers needed:     %.2f (min %d)\n", est.LayersNeededExact, est.LayersNeededMin)
		fmt.Printf("spare area:        %d\n", est.SpareArea)
		fmt.Printf("min layer area:    %d\n", cfg.Settings.EffectiveMinSolutionArea(inv))
		if len(est.UnplaceablePieces) > 0 {
			fmt.Printf("unplaceable:       %v\n", est.UnplaceablePieces)
		}
		return nil
	},
}

var cmdPresets = cobra.Command{
	Use:   "presets",
	Short: "List the built-in inventories.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		for _, name := range model.PresetNames() {
			p, err := model.GetPreset(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s %4d pieces  %dx%d  %s\n", p.Name, len(p.Pieces), p.Container.Width, p.Container.Height, p.Description)
		}
		return nil
	},
}

var flagAddr string

var cmdServe = cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		inv, cfg, err := loadInventory(cmd)
		if err != nil {
			return err
		}
		return server.New(inv, cfg.Settings, logrus.StandardLogger()).Run(flagAddr)
	},
}

func init() {
	pf := cmdRoot.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "configuration file (.toml or .json)")
	pf.StringVarP(&flagPreset, "preset", "p", "", "use a built-in inventory")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log progress details")
	pf.IntVarP(&flagWorkers, "workers", "j", 0, "feasibility workers")
	pf.Uint32Var(&flagDistance, "distance", 0, "clearance between pieces")

	cmdRun.Flags().StringSliceVar(&flagRecompute, "recompute", nil, "stages to recompute: generate, fit, match, rank, all or none")
	cmdRun.Flags().StringVar(&flagManifest, "manifest", "", "write the run manifest to this file")
	cmdCheck.Flags().BoolVar(&flagOrdered, "ordered", false, "place the pieces in the given order without rotating")
	cmdServe.Flags().StringVar(&flagAddr, "addr", ":8080", "listen address")

	cmdRoot.AddCommand(&cmdRun, &cmdCheck, &cmdKey, &cmdEstimate, &cmdPresets, &cmdServe, &cmdRender, &cmdImport)
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		if errors.Is(err, model.ErrUnknownPiece) || errors.Is(err, model.ErrInvalidInventory) {
			logrus.Error("input rejected: ", err)
		} else {
			logrus.Error(err)
		}
		os.Exit(1)
	}
}
