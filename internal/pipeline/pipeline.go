// Package pipeline sequences the search stages. Every stage either
// recomputes its result or loads the result of an earlier run from its
// cache file, as selected by model.Settings.Stages.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/LayerFit/internal/engine"
	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/piwi3910/LayerFit/internal/project"
	"github.com/sirupsen/logrus"
)

// Stage names used in logs and the run manifest.
const (
	StageGenerate = "generate"
	StageDedup    = "dedup"
	StageFit      = "fit"
	StageExpand   = "expand"
	StageMatch    = "match"
	StageRank     = "rank"
)

// Result holds the output of every stage of one run.
type Result struct {
	Candidates   []model.Combination
	Deduplicated []model.Combination
	Layers       []model.Combination
	Expanded     []model.Combination
	Solutions    []model.Solution
	Ranking      []engine.RankedLayer
	Manifest     project.RunManifest
}

// Runner executes the stages for one inventory.
type Runner struct {
	Inventory *model.Inventory
	Settings  model.Settings
	Log       logrus.FieldLogger
}

func New(inv *model.Inventory, settings model.Settings, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{Inventory: inv, Settings: settings, Log: log}
}

// Run executes generate, dedup, fit, the optional layer expansion, match and
// rank in order. Invalid cache contents abort the run.
func (r *Runner) Run() (*Result, error) {
	res := &Result{Manifest: project.NewRunManifest(r.Inventory, r.Settings)}
	r.Log.WithFields(logrus.Fields{
		"run":       res.Manifest.RunID,
		"pieces":    r.Inventory.Len(),
		"container": fmt.Sprintf("%dx%d", r.Inventory.Container.Width, r.Inventory.Container.Height),
		"min_area":  r.Settings.EffectiveMinSolutionArea(r.Inventory),
	}).Info("Starting run")

	steps := []func(*Result) error{r.generate, r.dedup, r.fit, r.expand, r.match, r.rank}
	for _, step := range steps {
		if err := step(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *Runner) generate(res *Result) error {
	start := time.Now()
	path := r.Settings.Paths.Candidates
	if !r.Settings.Stages.Generate {
		cs, err := r.loadCombinations(StageGenerate, path)
		if err != nil {
			return err
		}
		res.Candidates = cs
		res.Manifest.Record(StageGenerate, loadedOrSkipped(path), len(cs), path, time.Since(start))
		return nil
	}

	minArea := r.Settings.EffectiveMinSolutionArea(r.Inventory)
	res.Candidates = engine.GenerateSubsets(r.Inventory, r.Settings.MinPieces, r.Settings.MaxPieces, minArea)
	if err := r.saveCombinations(path, res.Candidates); err != nil {
		return err
	}
	r.done(StageGenerate, len(res.Candidates), start)
	res.Manifest.Record(StageGenerate, project.SourceComputed, len(res.Candidates), path, time.Since(start))
	return nil
}

func (r *Runner) dedup(res *Result) error {
	start := time.Now()
	path := r.Settings.Paths.Deduplicated
	res.Deduplicated = engine.Dedup(r.Inventory, res.Candidates)
	if err := r.saveCombinations(path, res.Deduplicated); err != nil {
		return err
	}
	r.done(StageDedup, len(res.Deduplicated), start)
	res.Manifest.Record(StageDedup, project.SourceComputed, len(res.Deduplicated), path, time.Since(start))
	return nil
}

func (r *Runner) fit(res *Result) error {
	start := time.Now()
	path := r.Settings.Paths.Fitting
	if !r.Settings.Stages.Fit {
		cs, err := r.loadCombinations(StageFit, path)
		if err != nil {
			return err
		}
		res.Layers = cs
		res.Manifest.Record(StageFit, loadedOrSkipped(path), len(cs), path, time.Since(start))
		return nil
	}

	fitter := engine.NewFitter(r.Inventory, r.Settings.Distance)
	coord := engine.NewCoordinator(fitter, r.Settings.EffectiveWorkers(), r.Log)
	layers, err := coord.FitAll(res.Deduplicated)
	if err != nil {
		return fmt.Errorf("failed to check candidates: %w", err)
	}
	res.Layers = layers
	if err := r.saveCombinations(path, layers); err != nil {
		return err
	}
	r.done(StageFit, len(layers), start)
	res.Manifest.Record(StageFit, project.SourceComputed, len(layers), path, time.Since(start))
	return nil
}

func (r *Runner) expand(res *Result) error {
	if !r.Settings.ExpandLayers {
		return nil
	}
	start := time.Now()
	path := r.Settings.Paths.Expanded
	res.Expanded = engine.RedupAll(r.Inventory, res.Layers)
	if err := r.saveCombinations(path, res.Expanded); err != nil {
		return err
	}
	r.done(StageExpand, len(res.Expanded), start)
	res.Manifest.Record(StageExpand, project.SourceComputed, len(res.Expanded), path, time.Since(start))
	return nil
}

func (r *Runner) match(res *Result) error {
	start := time.Now()
	path := r.Settings.Paths.Solutions
	if !r.Settings.Stages.Match {
		if path == "" {
			res.Manifest.Record(StageMatch, project.SourceSkipped, 0, "", 0)
			return nil
		}
		ss, err := project.ReadSolutions(path, r.Inventory)
		switch {
		case errors.Is(err, os.ErrNotExist):
			r.Log.WithField("path", path).Warn("No cached solutions, continuing without")
		case err != nil:
			return fmt.Errorf("failed to load solutions: %w", err)
		}
		res.Solutions = ss
		res.Manifest.Record(StageMatch, project.SourceLoaded, len(ss), path, time.Since(start))
		return nil
	}

	res.Solutions = engine.NewMatcher(r.Inventory, r.Log).Match(res.Layers)
	if path != "" {
		if err := project.WriteSolutions(path, res.Solutions); err != nil {
			return err
		}
	}
	r.done(StageMatch, len(res.Solutions), start)
	res.Manifest.Record(StageMatch, project.SourceComputed, len(res.Solutions), path, time.Since(start))
	return nil
}

func (r *Runner) rank(res *Result) error {
	if !r.Settings.Stages.Rank {
		res.Manifest.Record(StageRank, project.SourceSkipped, 0, "", 0)
		return nil
	}
	start := time.Now()
	path := r.Settings.Paths.Ranking
	res.Ranking = engine.Rank(r.Inventory, res.Solutions)
	if path != "" {
		layers := make([]model.Combination, len(res.Ranking))
		for i, rl := range res.Ranking {
			layers[i] = rl.Combination
		}
		if err := project.WriteRanking(path, layers); err != nil {
			return err
		}
	}
	r.done(StageRank, len(res.Ranking), start)
	res.Manifest.Record(StageRank, project.SourceComputed, len(res.Ranking), path, time.Since(start))
	return nil
}

// loadCombinations reads a stage cache. A missing or unset file yields no
// combinations; unknown ids are fatal.
func (r *Runner) loadCombinations(stage, path string) ([]model.Combination, error) {
	log := r.Log.WithFields(logrus.Fields{"stage": stage, "path": path})
	if path == "" {
		log.Info("Stage skipped")
		return nil, nil
	}
	cs, err := project.ReadCombinations(path, r.Inventory)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("No cached result, continuing without")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s result: %w", stage, err)
	}
	log.WithField("count", len(cs)).Info("Loaded cached result")
	return cs, nil
}

func (r *Runner) saveCombinations(path string, cs []model.Combination) error {
	if path == "" {
		return nil
	}
	return project.WriteCombinations(path, r.Inventory, cs)
}

func (r *Runner) done(stage string, count int, start time.Time) {
	r.Log.WithFields(logrus.Fields{
		"stage":   stage,
		"count":   count,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("Stage finished")
}

func loadedOrSkipped(path string) string {
	if path == "" {
		return project.SourceSkipped
	}
	return project.SourceLoaded
}
