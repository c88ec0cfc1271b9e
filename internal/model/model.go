package model

import (
	"errors"
	"fmt"
)

// PieceID identifies a piece of the inventory. ContainerID is reserved for the container.
type PieceID int

// ContainerID is the id carried by the container rectangle.
const ContainerID PieceID = -1

var (
	// ErrUnknownPiece is returned when a combination references an id that is not in the inventory.
	ErrUnknownPiece = errors.New("unknown piece id")
	// ErrInvalidInventory is returned for duplicate or reserved ids and zero dimensions.
	ErrInvalidInventory = errors.New("invalid inventory")
)

// Piece represents one rectangle of the inventory (or the container itself).
// Two pieces are the same piece when their ids match; the footprint only
// breaks ties when ordering.
type Piece struct {
	ID     PieceID `json:"id" toml:"id"`
	Width  uint32  `json:"width" toml:"width"`
	Height uint32  `json:"height" toml:"height"`
}

func NewPiece(id PieceID, width, height uint32) Piece {
	return Piece{ID: id, Width: width, Height: height}
}

// NewContainer returns the container rectangle with the reserved id.
func NewContainer(width, height uint32) Piece {
	return Piece{ID: ContainerID, Width: width, Height: height}
}

// Area returns width * height.
func (p Piece) Area() uint32 {
	return p.Width * p.Height
}

// Rotated returns the piece with width and height swapped.
func (p Piece) Rotated() Piece {
	return Piece{ID: p.ID, Width: p.Height, Height: p.Width}
}

// Square reports whether the piece has equal sides.
func (p Piece) Square() bool {
	return p.Width == p.Height
}

// FitsIn reports whether this footprint fits the container without rotation.
func (p Piece) FitsIn(container Piece) bool {
	return p.Width <= container.Width && p.Height <= container.Height
}

// Orientations returns the footprints of p that fit the container: the
// original first, then the rotated one when it differs.
func (p Piece) Orientations(container Piece) []Piece {
	var out []Piece
	if p.FitsIn(container) {
		out = append(out, p)
	}
	if !p.Square() {
		if r := p.Rotated(); r.FitsIn(container) {
			out = append(out, r)
		}
	}
	return out
}

// Less orders pieces by id, then width, then height.
func (p Piece) Less(o Piece) bool {
	if p.ID != o.ID {
		return p.ID < o.ID
	}
	if p.Width != o.Width {
		return p.Width < o.Width
	}
	return p.Height < o.Height
}

// SameFootprint reports whether two pieces occupy the same width and height.
func (p Piece) SameFootprint(o Piece) bool {
	return p.Width == o.Width && p.Height == o.Height
}

func (p Piece) String() string {
	return fmt.Sprintf("#%d %dx%d", p.ID, p.Width, p.Height)
}

// DimKey is the coarse footprint shared by interchangeable pieces.
type DimKey struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

// roundDim drops the last digit of dimensions of three or more digits.
func roundDim(v uint32) uint32 {
	if v >= 100 {
		return v / 10 * 10
	}
	return v
}

// DimKey returns the rounded (major, minor) footprint of the piece.
func (p Piece) DimKey() DimKey {
	a, b := roundDim(p.Height), roundDim(p.Width)
	if a < b {
		a, b = b, a
	}
	return DimKey{Major: a, Minor: b}
}

func (k DimKey) String() string {
	return fmt.Sprintf("%d,%d", k.Major, k.Minor)
}

// Placement represents a piece placed in the container at a cell offset.
// The piece covers the cells [X, X+Width) x [Y, Y+Height).
type Placement struct {
	Piece Piece  `json:"piece"`
	X     uint32 `json:"x"`
	Y     uint32 `json:"y"`
}

// Right returns the first column past the piece.
func (p Placement) Right() uint32 {
	return p.X + p.Piece.Width
}

// Bottom returns the first row past the piece.
func (p Placement) Bottom() uint32 {
	return p.Y + p.Piece.Height
}

// Collides reports whether two different pieces share at least one cell.
func (p Placement) Collides(o Placement) bool {
	if p.Piece.ID == o.Piece.ID {
		return false
	}
	return p.X < o.Right() && o.X < p.Right() && p.Y < o.Bottom() && o.Y < p.Bottom()
}

// Within reports whether the placement lies inside the container.
func (p Placement) Within(container Piece) bool {
	return p.Right() <= container.Width && p.Bottom() <= container.Height
}

// Layout is the set of placements found for one layer.
type Layout []Placement

// Area returns the total area of all placed pieces.
func (l Layout) Area() uint32 {
	var total uint32
	for _, p := range l {
		total += p.Piece.Area()
	}
	return total
}

// Combination returns the ids placed in the layout.
func (l Layout) Combination() Combination {
	ids := make([]PieceID, len(l))
	for i, p := range l {
		ids[i] = p.Piece.ID
	}
	return NewCombination(ids...)
}

// Valid reports whether every placement lies inside the container and no two collide.
func (l Layout) Valid(container Piece) bool {
	for i, a := range l {
		if !a.Within(container) {
			return false
		}
		for _, b := range l[i+1:] {
			if a.Collides(b) {
				return false
			}
		}
	}
	return true
}

// Efficiency returns the used area as a percentage of the container.
func (l Layout) Efficiency(container Piece) float64 {
	ca := container.Area()
	if ca == 0 {
		return 0
	}
	return float64(l.Area()) / float64(ca) * 100.0
}
