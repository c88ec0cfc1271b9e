package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Combination is a set of distinct piece ids kept in ascending order.
type Combination []PieceID

// NewCombination builds a combination from ids in any order. Repeated ids are kept once.
func NewCombination(ids ...PieceID) Combination {
	c := make(Combination, len(ids))
	copy(c, ids)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	out := c[:0]
	for i, id := range c {
		if i > 0 && id == c[i-1] {
			continue
		}
		out = append(out, id)
	}
	return out
}

// ParseCombination parses a comma separated id list such as "1,4,7".
func ParseCombination(s string) (Combination, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Combination{}, nil
	}
	fields := strings.Split(s, ",")
	ids := make([]PieceID, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid piece id %q: %w", f, err)
		}
		ids = append(ids, PieceID(n))
	}
	return NewCombination(ids...), nil
}

// String returns the persisted form: sorted ids joined by commas.
func (c Combination) String() string {
	return c.Join(",")
}

// Join joins the ids with sep.
func (c Combination) Join(sep string) string {
	parts := make([]string, len(c))
	for i, id := range c {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, sep)
}

// Contains reports whether id is a member.
func (c Combination) Contains(id PieceID) bool {
	i := sort.Search(len(c), func(i int) bool { return c[i] >= id })
	return i < len(c) && c[i] == id
}

// Equal reports whether both combinations hold the same ids.
func (c Combination) Equal(o Combination) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// Disjoint reports whether the two combinations share no id.
func (c Combination) Disjoint(o Combination) bool {
	i, j := 0, 0
	for i < len(c) && j < len(o) {
		switch {
		case c[i] == o[j]:
			return false
		case c[i] < o[j]:
			i++
		default:
			j++
		}
	}
	return true
}

// Union returns the ids present in either combination.
func (c Combination) Union(o Combination) Combination {
	ids := make([]PieceID, 0, len(c)+len(o))
	ids = append(ids, c...)
	ids = append(ids, o...)
	return NewCombination(ids...)
}

// IDSum returns the sum of the member ids.
func (c Combination) IDSum() int {
	sum := 0
	for _, id := range c {
		sum += int(id)
	}
	return sum
}

// Compare orders combinations element-wise, shorter first on a common prefix.
func (c Combination) Compare(o Combination) int {
	for i := 0; i < len(c) && i < len(o); i++ {
		if c[i] != o[i] {
			if c[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(c) < len(o):
		return -1
	case len(c) > len(o):
		return 1
	}
	return 0
}

// Solution is an unordered triple of pairwise disjoint layers covering the inventory.
// The layers are stored in ascending Compare order.
type Solution [3]Combination

// NewSolution returns the canonical form of the triple.
func NewSolution(a, b, c Combination) Solution {
	s := Solution{a, b, c}
	sort.Slice(s[:], func(i, j int) bool { return s[i].Compare(s[j]) < 0 })
	return s
}

// ParseSolution parses three comma separated combinations separated by whitespace.
func ParseSolution(s string) (Solution, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Solution{}, fmt.Errorf("expected 3 layers, got %d in %q", len(fields), s)
	}
	var layers [3]Combination
	for i, f := range fields {
		c, err := ParseCombination(f)
		if err != nil {
			return Solution{}, err
		}
		layers[i] = c
	}
	return NewSolution(layers[0], layers[1], layers[2]), nil
}

// String returns the persisted form: the three layers separated by a single space.
func (s Solution) String() string {
	return s[0].String() + " " + s[1].String() + " " + s[2].String()
}

// Size returns the number of ids across the three layers.
func (s Solution) Size() int {
	return len(s[0]) + len(s[1]) + len(s[2])
}
