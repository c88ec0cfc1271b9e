package engine

import (
	"sort"
	"strings"

	"github.com/piwi3910/LayerFit/internal/model"
)

// DedupKey returns the shape pattern of c: the sorted dimension keys of its
// members joined by spaces. Combinations with equal keys are interchangeable
// for placement.
func DedupKey(inv *model.Inventory, c model.Combination) string {
	keys := make([]string, len(c))
	for i, id := range c {
		keys[i] = inv.DimKey(id).String()
	}
	sort.Strings(keys)
	return strings.Join(keys, " ")
}

// Dedup keeps one combination per dedup key: the one with the smallest id
// sum, ties broken by id order. The result keeps the order of first
// occurrence of each key in the id-sum ordering.
func Dedup(inv *model.Inventory, candidates []model.Combination) []model.Combination {
	sorted := make([]model.Combination, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].IDSum(), sorted[j].IDSum()
		if si != sj {
			return si < sj
		}
		return sorted[i].Compare(sorted[j]) < 0
	})

	seen := make(map[string]bool, len(sorted))
	out := make([]model.Combination, 0, len(sorted))
	for _, c := range sorted {
		key := DedupKey(inv, c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// Redup expands c into every concrete combination obtained by replacing each
// member with a class-mate (itself included) that is not in exclude, using
// every physical piece at most once. The result holds distinct sets in a
// deterministic order and always contains c itself when c and exclude are
// disjoint. The empty combination expands to itself; a member without an
// admissible class-mate makes the expansion empty.
func Redup(inv *model.Inventory, c, exclude model.Combination) []model.Combination {
	// Members of one class are interchangeable, so each class contributes a
	// k-subset of its admissible members, k being its member count in c.
	type group struct {
		count     int
		available []model.PieceID
	}
	var groups []*group
	byClass := make(map[int]*group)
	for _, id := range c {
		class := inv.ClassIndex(id)
		if class < 0 {
			return nil
		}
		g, ok := byClass[class]
		if !ok {
			g = &group{}
			for _, mate := range inv.Class(id) {
				if !exclude.Contains(mate) {
					g.available = append(g.available, mate)
				}
			}
			byClass[class] = g
			groups = append(groups, g)
		}
		g.count++
	}

	partial := [][]model.PieceID{{}}
	for _, g := range groups {
		if g.count > len(g.available) {
			return nil
		}
		choices := chooseK(g.available, g.count)
		next := make([][]model.PieceID, 0, len(partial)*len(choices))
		for _, r := range partial {
			for _, choice := range choices {
				branch := make([]model.PieceID, 0, len(r)+len(choice))
				branch = append(branch, r...)
				branch = append(branch, choice...)
				next = append(next, branch)
			}
		}
		partial = next
	}

	out := make([]model.Combination, len(partial))
	for i, r := range partial {
		out[i] = model.NewCombination(r...)
	}
	return out
}

// chooseK returns every k-element subset of ids in lexicographic order.
func chooseK(ids []model.PieceID, k int) [][]model.PieceID {
	var out [][]model.PieceID
	pick := make([]model.PieceID, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(pick) == k {
			out = append(out, append([]model.PieceID(nil), pick...))
			return
		}
		for i := start; i <= len(ids)-(k-len(pick)); i++ {
			pick = append(pick, ids[i])
			walk(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	walk(0)
	return out
}

// RedupAll expands every representative layer and returns the distinct
// concrete layers, largest area first.
func RedupAll(inv *model.Inventory, layers []model.Combination) []model.Combination {
	seen := make(map[string]bool)
	var out []model.Combination
	for _, l := range layers {
		for _, c := range Redup(inv, l, nil) {
			key := c.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	return inv.SortByArea(out)
}
