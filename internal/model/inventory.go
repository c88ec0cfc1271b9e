package model

import (
	"fmt"
	"sort"
)

// maxPieceID bounds the dense id table.
const maxPieceID = 1 << 20

// Inventory holds the container and the pieces to distribute over it, together
// with the tables derived from them once at load time: the orientation set of
// every piece and its dimension-equivalence class. It is read-only after
// NewInventory returns and safe for concurrent use.
type Inventory struct {
	Container Piece
	Pieces    []Piece // ascending id

	slots        []int // id -> index into Pieces, -1 when absent
	orientations [][]Piece
	keys         []DimKey
	classOf      []int       // index -> class number
	classes      [][]PieceID // class number -> member ids, ascending
}

// NewInventory validates the pieces and builds the lookup tables.
func NewInventory(container Piece, pieces []Piece) (*Inventory, error) {
	if container.Width == 0 || container.Height == 0 {
		return nil, fmt.Errorf("%w: container %dx%d has a zero dimension", ErrInvalidInventory, container.Width, container.Height)
	}
	container.ID = ContainerID

	sorted := make([]Piece, len(pieces))
	copy(sorted, pieces)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	maxID := PieceID(-1)
	for i, p := range sorted {
		switch {
		case p.ID == ContainerID:
			return nil, fmt.Errorf("%w: piece id %d is reserved for the container", ErrInvalidInventory, p.ID)
		case p.ID < 0 || p.ID >= maxPieceID:
			return nil, fmt.Errorf("%w: piece id %d out of range", ErrInvalidInventory, p.ID)
		case p.Width == 0 || p.Height == 0:
			return nil, fmt.Errorf("%w: piece %d has a zero dimension", ErrInvalidInventory, p.ID)
		case i > 0 && sorted[i-1].ID == p.ID:
			return nil, fmt.Errorf("%w: duplicate piece id %d", ErrInvalidInventory, p.ID)
		}
		maxID = p.ID
	}

	inv := &Inventory{
		Container:    container,
		Pieces:       sorted,
		slots:        make([]int, int(maxID)+1),
		orientations: make([][]Piece, len(sorted)),
		keys:         make([]DimKey, len(sorted)),
		classOf:      make([]int, len(sorted)),
	}
	for i := range inv.slots {
		inv.slots[i] = -1
	}

	classByKey := make(map[DimKey]int)
	for i, p := range sorted {
		inv.slots[p.ID] = i
		inv.orientations[i] = p.Orientations(container)
		key := p.DimKey()
		inv.keys[i] = key
		class, ok := classByKey[key]
		if !ok {
			class = len(inv.classes)
			classByKey[key] = class
			inv.classes = append(inv.classes, nil)
		}
		inv.classOf[i] = class
		inv.classes[class] = append(inv.classes[class], p.ID)
	}
	return inv, nil
}

// Len returns the number of pieces.
func (inv *Inventory) Len() int {
	return len(inv.Pieces)
}

func (inv *Inventory) index(id PieceID) int {
	if id < 0 || int(id) >= len(inv.slots) {
		return -1
	}
	return inv.slots[id]
}

// Has reports whether id belongs to the inventory.
func (inv *Inventory) Has(id PieceID) bool {
	return inv.index(id) >= 0
}

// Piece returns the piece with the given id.
func (inv *Inventory) Piece(id PieceID) (Piece, bool) {
	i := inv.index(id)
	if i < 0 {
		return Piece{}, false
	}
	return inv.Pieces[i], true
}

// Orientations returns the cached footprints of id that fit the container.
func (inv *Inventory) Orientations(id PieceID) []Piece {
	i := inv.index(id)
	if i < 0 {
		return nil
	}
	return inv.orientations[i]
}

// DimKey returns the dimension-equivalence key of id.
func (inv *Inventory) DimKey(id PieceID) DimKey {
	i := inv.index(id)
	if i < 0 {
		return DimKey{}
	}
	return inv.keys[i]
}

// ClassIndex returns the number of the equivalence class of id, or -1.
func (inv *Inventory) ClassIndex(id PieceID) int {
	i := inv.index(id)
	if i < 0 {
		return -1
	}
	return inv.classOf[i]
}

// ClassCount returns the number of equivalence classes.
func (inv *Inventory) ClassCount() int {
	return len(inv.classes)
}

// Class returns every id sharing the equivalence class of id, itself included, ascending.
func (inv *Inventory) Class(id PieceID) []PieceID {
	c := inv.ClassIndex(id)
	if c < 0 {
		return nil
	}
	return inv.classes[c]
}

// Representative returns the smallest id of the class of id.
func (inv *Inventory) Representative(id PieceID) PieceID {
	members := inv.Class(id)
	if len(members) == 0 {
		return id
	}
	return members[0]
}

// Validate checks that every id of c belongs to the inventory.
func (inv *Inventory) Validate(c Combination) error {
	for _, id := range c {
		if !inv.Has(id) {
			return fmt.Errorf("%w: %d", ErrUnknownPiece, id)
		}
	}
	return nil
}

// PiecesOf returns the pieces of c in id order. Unknown ids are skipped.
func (inv *Inventory) PiecesOf(c Combination) []Piece {
	out := make([]Piece, 0, len(c))
	for _, id := range c {
		if p, ok := inv.Piece(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Area returns the total area of the pieces of c.
func (inv *Inventory) Area(c Combination) uint32 {
	var total uint32
	for _, id := range c {
		if p, ok := inv.Piece(id); ok {
			total += p.Area()
		}
	}
	return total
}

// TotalArea returns the area of every piece in the inventory.
func (inv *Inventory) TotalArea() uint32 {
	var total uint32
	for _, p := range inv.Pieces {
		total += p.Area()
	}
	return total
}

// All returns the combination of every piece id.
func (inv *Inventory) All() Combination {
	ids := make(Combination, len(inv.Pieces))
	for i, p := range inv.Pieces {
		ids[i] = p.ID
	}
	return ids
}

// SortByArea returns a copy of cs ordered by descending total area, ties in
// ascending id order.
func (inv *Inventory) SortByArea(cs []Combination) []Combination {
	type entry struct {
		c    Combination
		area uint32
	}
	entries := make([]entry, len(cs))
	for i, c := range cs {
		entries[i] = entry{c: c, area: inv.Area(c)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].area != entries[j].area {
			return entries[i].area > entries[j].area
		}
		return entries[i].c.Compare(entries[j].c) < 0
	})
	out := make([]Combination, len(entries))
	for i, e := range entries {
		out[i] = e.c
	}
	return out
}
