package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LayerFit/internal/model"
)

func testInventory(t *testing.T) *model.Inventory {
	t.Helper()
	inv, err := model.NewInventory(model.NewContainer(10, 4), []model.Piece{
		model.NewPiece(1, 2, 2),
		model.NewPiece(2, 2, 1),
		model.NewPiece(3, 3, 2),
		model.NewPiece(4, 3, 1),
		model.NewPiece(5, 4, 2),
		model.NewPiece(6, 1, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	return inv
}

func TestWriteAndReadCombinations(t *testing.T) {
	inv := testInventory(t)
	path := filepath.Join(t.TempDir(), "stage", "fitting.txt")
	in := []model.Combination{{2, 6}, {1, 5}, {3, 4}, {1, 2}}

	if err := WriteCombinations(path, inv, in); err != nil {
		t.Fatalf("WriteCombinations failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "1,5\n3,4\n1,2\n2,6\n"; string(data) != want {
		t.Errorf("expected file %q, got %q", want, string(data))
	}

	got, err := ReadCombinations(path, inv)
	if err != nil {
		t.Fatalf("ReadCombinations failed: %v", err)
	}
	if len(got) != 4 || !got[0].Equal(model.Combination{1, 5}) || !got[3].Equal(model.Combination{2, 6}) {
		t.Errorf("unexpected combinations %v", got)
	}
}

func TestReadCombinationsUnknownPiece(t *testing.T) {
	inv := testInventory(t)
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("1,2\n\n3,42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadCombinations(path, inv)
	if !errors.Is(err, model.ErrUnknownPiece) {
		t.Fatalf("expected ErrUnknownPiece, got %v", err)
	}
}

func TestReadCombinationsMissingFile(t *testing.T) {
	_, err := ReadCombinations(filepath.Join(t.TempDir(), "none.txt"), testInventory(t))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestWriteAndReadSolutions(t *testing.T) {
	inv := testInventory(t)
	path := filepath.Join(t.TempDir(), "solutions.txt")
	in := []model.Solution{
		model.NewSolution(model.Combination{3, 4}, model.Combination{1, 2}, model.Combination{5, 6}),
		model.NewSolution(model.Combination{1, 6}, model.Combination{2, 3}, model.Combination{4, 5}),
	}

	if err := WriteSolutions(path, in); err != nil {
		t.Fatalf("WriteSolutions failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "1,2 3,4 5,6\n1,6 2,3 4,5\n"; string(data) != want {
		t.Errorf("expected file %q, got %q", want, string(data))
	}

	got, err := ReadSolutions(path, inv)
	if err != nil {
		t.Fatalf("ReadSolutions failed: %v", err)
	}
	if len(got) != 2 || got[0].String() != in[0].String() {
		t.Errorf("unexpected solutions %v", got)
	}
	if got[1].String() != "1,6 2,3 4,5" {
		t.Errorf("unexpected second solution %s", got[1])
	}
}

func TestReadSolutionsMalformed(t *testing.T) {
	inv := testInventory(t)
	path := filepath.Join(t.TempDir(), "solutions.txt")
	if err := os.WriteFile(path, []byte("1,2 3,4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSolutions(path, inv); err == nil {
		t.Fatal("expected error for two-layer line")
	}
}

func TestWriteAndReadRanking(t *testing.T) {
	inv := testInventory(t)
	path := filepath.Join(t.TempDir(), "ranking.txt")
	in := []model.Combination{{5, 6}, {1, 2, 3}}

	if err := WriteRanking(path, in); err != nil {
		t.Fatalf("WriteRanking failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "5 6\n1 2 3\n"; string(data) != want {
		t.Errorf("expected file %q, got %q", want, string(data))
	}

	got, err := ReadRanking(path, inv)
	if err != nil {
		t.Fatalf("ReadRanking failed: %v", err)
	}
	if len(got) != 2 || !got[0].Equal(in[0]) || !got[1].Equal(in[1]) {
		t.Errorf("unexpected ranking %v", got)
	}
}
