// Package engine implements the block-stacking simulation: the board, the
// seven bricks, the falling player piece and the tick-driven state machine
// that ties them together.
//
// The package is pure logic. It does no I/O, keeps no clock and never
// panics; every command reports infeasibility through a boolean result.
package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// cellKind tags what a Cell holds.
type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindOccupied
	kindGhost
)

// Cell is a single grid square. It is a comparable value type: two cells are
// equal when they hold the same kind and color.
type Cell struct {
	kind  cellKind
	color core.Color
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Occupied returns a cell filled with the given color.
func Occupied(c core.Color) Cell {
	return Cell{kind: kindOccupied, color: c}
}

// Ghost returns the landing-preview marker cell.
func Ghost() Cell {
	return Cell{kind: kindGhost}
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.kind == kindEmpty
}

// IsOccupied reports whether the cell holds a colored block.
func (c Cell) IsOccupied() bool {
	return c.kind == kindOccupied
}

// IsGhost reports whether the cell is a ghost marker.
func (c Cell) IsGhost() bool {
	return c.kind == kindGhost
}

// Filled reports whether the cell is part of a shape (block or ghost).
func (c Cell) Filled() bool {
	return c.kind != kindEmpty
}

// Color returns the block color. Empty and ghost cells report ColorDefault.
func (c Cell) Color() core.Color {
	return c.color
}

// String returns a one-rune depiction used by debug dumps.
func (c Cell) String() string {
	switch c.kind {
	case kindOccupied:
		return "X"
	case kindGhost:
		return "+"
	default:
		return "."
	}
}
