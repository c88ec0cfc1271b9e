package engine

import (
	"sort"
	"time"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/sirupsen/logrus"
)

// Matcher combines feasible layers into three-layer coverings of the inventory.
type Matcher struct {
	Inventory *model.Inventory
	Log       logrus.FieldLogger
}

func NewMatcher(inv *model.Inventory, log logrus.FieldLogger) *Matcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Matcher{Inventory: inv, Log: log}
}

// classDraw is how many members of one equivalence class a layer uses.
type classDraw struct {
	class int
	count int
}

func (m *Matcher) draws(c model.Combination) []classDraw {
	counts := make(map[int]int)
	var order []int
	for _, id := range c {
		class := m.Inventory.ClassIndex(id)
		if _, ok := counts[class]; !ok {
			order = append(order, class)
		}
		counts[class]++
	}
	out := make([]classDraw, len(order))
	for i, class := range order {
		out[i] = classDraw{class: class, count: counts[class]}
	}
	return out
}

// Match looks at every triple of layers, largest area first, and records
// the first concrete covering of the inventory found for each triple.
// Layers may use representative ids; concrete coverings are obtained by
// redup, each layer excluding the ids already committed by the previous ones.
// The returned solutions are distinct and sorted.
func (m *Matcher) Match(layers []model.Combination) []model.Solution {
	inv := m.Inventory
	n := inv.Len()
	sorted := inv.SortByArea(layers)
	draws := make([][]classDraw, len(sorted))
	for i, l := range sorted {
		draws[i] = m.draws(l)
	}
	capacity := make([]int, inv.ClassCount())
	for _, p := range inv.Pieces {
		capacity[inv.ClassIndex(p.ID)]++
	}

	start := time.Now()
	found := make(map[string]model.Solution)
	used := make([]int, inv.ClassCount())
	for i := range sorted {
		m.Log.WithFields(logrus.Fields{
			"layer":     i,
			"solutions": len(found),
		}).Debug("Matching layer")
		for j := i + 1; j < len(sorted); j++ {
			for k := j + 1; k < len(sorted); k++ {
				if len(sorted[i])+len(sorted[j])+len(sorted[k]) < n {
					continue
				}
				if !withinCapacity(used, capacity, draws[i], draws[j], draws[k]) {
					continue
				}
				if s, ok := m.realize(sorted[i], sorted[j], sorted[k]); ok {
					found[s.String()] = s
				}
			}
		}
	}

	out := make([]model.Solution, 0, len(found))
	for _, s := range found {
		out = append(out, s)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].String() < out[b].String() })
	m.Log.WithFields(logrus.Fields{
		"layers":    len(sorted),
		"solutions": len(out),
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Info("Matching finished")
	return out
}

// withinCapacity reports whether the three layers together draw no class
// beyond its member count. used is scratch space, zero on entry and exit.
func withinCapacity(used, capacity []int, layers ...[]classDraw) bool {
	ok := true
	for _, l := range layers {
		for _, d := range l {
			used[d.class] += d.count
			if used[d.class] > capacity[d.class] {
				ok = false
			}
		}
	}
	for _, l := range layers {
		for _, d := range l {
			used[d.class] = 0
		}
	}
	return ok
}

// realize searches concrete substitutions of the three layers for a
// disjoint covering and returns the first one.
func (m *Matcher) realize(a, b, c model.Combination) (model.Solution, bool) {
	inv := m.Inventory
	n := inv.Len()
	for _, a2 := range Redup(inv, a, nil) {
		for _, b2 := range Redup(inv, b, a2) {
			union := a2.Union(b2)
			for _, c2 := range Redup(inv, c, union) {
				if len(union)+len(c2) >= n {
					return model.NewSolution(a2, b2, c2), true
				}
			}
		}
	}
	return model.Solution{}, false
}
