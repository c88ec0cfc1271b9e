package engine

import (
	"sort"

	"github.com/piwi3910/LayerFit/internal/model"
)

// RankedLayer is one layer shape and how many solutions use it.
type RankedLayer struct {
	Combination model.Combination `json:"combination"` // first layer seen with this shape
	Key         string            `json:"key"`
	Count       int               `json:"count"`
}

// Rank counts, per dedup key, how many solution layers share that shape and
// returns one representative per key, least frequent first. Equal counts are
// ordered by key.
func Rank(inv *model.Inventory, solutions []model.Solution) []RankedLayer {
	byKey := make(map[string]*RankedLayer)
	for _, s := range solutions {
		for _, layer := range s {
			key := DedupKey(inv, layer)
			r, ok := byKey[key]
			if !ok {
				r = &RankedLayer{Combination: layer, Key: key}
				byKey[key] = r
			}
			r.Count++
		}
	}

	out := make([]RankedLayer, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
