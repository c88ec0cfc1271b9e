package model

import (
	"fmt"
	"sort"
)

// Preset is a built-in inventory measured at one resolution.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Container   Piece   `json:"container"`
	Pieces      []Piece `json:"pieces"`
}

// Inventory builds the inventory described by the preset.
func (p Preset) Inventory() (*Inventory, error) {
	return NewInventory(p.Container, p.Pieces)
}

// row lists a measured piece height first, as on the measuring sheet.
type row struct {
	id            PieceID
	height, width uint32
}

func buildPreset(name, description string, height, width uint32, rows []row) Preset {
	pieces := make([]Piece, len(rows))
	for i, r := range rows {
		pieces[i] = NewPiece(r.id, r.width, r.height)
	}
	return Preset{
		Name:        name,
		Description: description,
		Container:   NewContainer(width, height),
		Pieces:      pieces,
	}
}

var presets = map[string]Preset{
	"mm": buildPreset("mm", "18 pieces measured in millimetres", 47, 71, []row{
		{1, 45, 19}, {2, 27, 22}, {3, 27, 25}, {4, 27, 27}, {5, 32, 17}, {6, 32, 22},
		{7, 17, 20}, {8, 22, 12}, {9, 17, 14}, {10, 17, 19}, {11, 24, 14}, {12, 32, 17},
		{13, 44, 17}, {14, 32, 14}, {15, 22, 12}, {16, 52, 12}, {17, 45, 12}, {18, 22, 10},
	}),
	"mm10": buildPreset("mm10", "18 pieces measured in tenths of a millimetre", 464, 704, []row{
		{1, 450, 198}, {2, 274, 223}, {3, 274, 249}, {4, 274, 274}, {5, 323, 173}, {6, 323, 223},
		{7, 173, 200}, {8, 224, 124}, {9, 173, 148}, {10, 173, 198}, {11, 249, 148}, {12, 323, 173},
		{13, 448, 174}, {14, 323, 148}, {15, 224, 124}, {16, 524, 123}, {17, 455, 123}, {18, 224, 99},
	}),
	"mm100": buildPreset("mm100", "18 pieces measured in hundredths of a millimetre", 4635, 7040, []row{
		{1, 4500, 1980}, {2, 2740, 2235}, {3, 2740, 2490}, {4, 2740, 2740}, {5, 3235, 1730}, {6, 3230, 2235},
		{7, 1735, 2000}, {8, 2240, 1240}, {9, 1735, 1485}, {10, 1735, 1980}, {11, 2495, 1485}, {12, 3235, 1735},
		{13, 4485, 1740}, {14, 3235, 1485}, {15, 2240, 1240}, {16, 5245, 1235}, {17, 4550, 1235}, {18, 2240, 990},
	}),
}

// GetPreset returns the preset with the given name.
func GetPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	p.Pieces = append([]Piece(nil), p.Pieces...)
	return p, nil
}

// PresetNames returns the names of all built-in presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
