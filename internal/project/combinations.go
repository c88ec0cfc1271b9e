package project

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/LayerFit/internal/model"
)

// Combination files hold one combination per line as comma separated ids,
// largest area first. Solution files hold one solution per line: three such
// combinations separated by a single space. Ranking files hold one layer per
// line as space separated ids, in ranking order.

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	data := strings.Join(lines, "\n")
	if len(lines) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// readLines calls parse for every non-blank line of path. A missing file is
// reported with an error that matches os.ErrNotExist.
func readLines(path string, parse func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := scanLines(f, parse); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

func scanLines(r io.Reader, parse func(line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := parse(line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

// parseLayer parses one persisted combination and checks its ids against the inventory.
func parseLayer(inv *model.Inventory, s string) (model.Combination, error) {
	c, err := model.ParseCombination(s)
	if err != nil {
		return nil, err
	}
	if err := inv.Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteCombinations stores cs sorted by descending area.
func WriteCombinations(path string, inv *model.Inventory, cs []model.Combination) error {
	sorted := inv.SortByArea(cs)
	lines := make([]string, len(sorted))
	for i, c := range sorted {
		lines[i] = c.String()
	}
	return writeLines(path, lines)
}

// ReadCombinations loads a combination file. An id that is not part of the
// inventory fails the whole load with model.ErrUnknownPiece.
func ReadCombinations(path string, inv *model.Inventory) ([]model.Combination, error) {
	var out []model.Combination
	err := readLines(path, func(line string) error {
		c, err := parseLayer(inv, line)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriteSolutions stores the solutions in lexicographic order.
func WriteSolutions(path string, solutions []model.Solution) error {
	lines := make([]string, len(solutions))
	for i, s := range solutions {
		lines[i] = s.String()
	}
	sort.Strings(lines)
	return writeLines(path, lines)
}

// ReadSolutions loads a solution file, validating every id.
func ReadSolutions(path string, inv *model.Inventory) ([]model.Solution, error) {
	var out []model.Solution
	err := readLines(path, func(line string) error {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("expected 3 layers, got %d", len(fields))
		}
		var layers [3]model.Combination
		for i, f := range fields {
			c, err := parseLayer(inv, f)
			if err != nil {
				return err
			}
			layers[i] = c
		}
		out = append(out, model.NewSolution(layers[0], layers[1], layers[2]))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriteRanking stores the ranked layers in the given order.
func WriteRanking(path string, layers []model.Combination) error {
	lines := make([]string, len(layers))
	for i, c := range layers {
		lines[i] = c.Join(" ")
	}
	return writeLines(path, lines)
}

// ReadRanking loads a ranking file, keeping its order.
func ReadRanking(path string, inv *model.Inventory) ([]model.Combination, error) {
	var out []model.Combination
	err := readLines(path, func(line string) error {
		c, err := parseLayer(inv, strings.Join(strings.Fields(line), ","))
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
