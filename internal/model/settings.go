package model

import "runtime"

// Stages selects which pipeline stages are recomputed. A stage that is off
// loads its previous result from the cache file instead.
type Stages struct {
	Generate bool `json:"generate" toml:"generate"`
	Fit      bool `json:"fit" toml:"fit"`
	Match    bool `json:"match" toml:"match"`
	Rank     bool `json:"rank" toml:"rank"`
}

// Paths holds the cache file of each stage. An empty path disables the file.
type Paths struct {
	Candidates   string `json:"candidates" toml:"candidates"`
	Deduplicated string `json:"deduplicated" toml:"deduplicated"`
	Fitting      string `json:"fitting" toml:"fitting"`
	Expanded     string `json:"expanded" toml:"expanded"`
	Solutions    string `json:"solutions" toml:"solutions"`
	Ranking      string `json:"ranking" toml:"ranking"`
}

// Settings holds the search configuration.
type Settings struct {
	Workers         int    `json:"workers" toml:"workers"`                     // Feasibility workers
	MinPieces       int    `json:"min_pieces" toml:"min_pieces"`               // Smallest subset size
	MaxPieces       int    `json:"max_pieces" toml:"max_pieces"`               // Largest subset size
	MinSolutionArea uint32 `json:"min_solution_area" toml:"min_solution_area"` // 0 = derived from the inventory
	Distance        uint32 `json:"distance" toml:"distance"`                   // Clearance between pieces
	ExpandLayers    bool   `json:"expand_layers" toml:"expand_layers"`
	Stages          Stages `json:"stages" toml:"stages"`
	Paths           Paths  `json:"paths" toml:"paths"`
}

func DefaultSettings() Settings {
	return Settings{
		Workers:   runtime.NumCPU(),
		MinPieces: 1,
		MaxPieces: 100,
		Distance:  0,
	}
}

// DefaultMinSolutionArea returns the smallest layer area that can still be
// part of a three-layer covering: the total piece area minus two full containers.
func DefaultMinSolutionArea(inv *Inventory) uint32 {
	rest := int64(inv.TotalArea()) - 2*int64(inv.Container.Area())
	if rest < 0 {
		return 0
	}
	return uint32(rest)
}

// EffectiveMinSolutionArea returns MinSolutionArea, or the derived default when unset.
func (s Settings) EffectiveMinSolutionArea(inv *Inventory) uint32 {
	if s.MinSolutionArea > 0 {
		return s.MinSolutionArea
	}
	return DefaultMinSolutionArea(inv)
}

// EffectiveWorkers returns the worker count, at least one.
func (s Settings) EffectiveWorkers() int {
	if s.Workers < 1 {
		return 1
	}
	return s.Workers
}
