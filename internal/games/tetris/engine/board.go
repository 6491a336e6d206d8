package engine

import "strings"

// Default playfield dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is the persistent grid of locked cells. Row 0 is the top.
// Coordinates outside the grid are never stored and count as taken for
// collision queries, so the playfield has closed walls and floor.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board. Non-positive dimensions yield an empty
// zero-area board on which nothing fits.
func NewBoard(width, height int) *Board {
	width = max(width, 0)
	height = max(height, 0)
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// index maps a coordinate to storage. ok is false outside the grid.
func (b *Board) index(x, y int) (idx int, ok bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// At returns the cell at (x, y). Out-of-bounds reads return an empty cell.
func (b *Board) At(x, y int) Cell {
	if i, ok := b.index(x, y); ok {
		return b.cells[i]
	}
	return Empty()
}

// Set writes a cell. Out-of-bounds writes are silently dropped.
func (b *Board) Set(x, y int, c Cell) {
	if i, ok := b.index(x, y); ok {
		b.cells[i] = c
	}
}

// Taken reports whether (x, y) is unavailable to a piece: either outside
// the grid or already filled.
func (b *Board) Taken(x, y int) bool {
	i, ok := b.index(x, y)
	if !ok {
		return true
	}
	return b.cells[i].Filled()
}

// Insert writes every filled cell of the brick at the given offset.
// Cells landing outside the grid are dropped.
func (b *Board) Insert(br Brick, ox, oy int) {
	br.each(func(x, y int, c Cell) {
		if c.Filled() {
			b.Set(ox+x, oy+y, c)
		}
	})
}

// Fits reports whether every filled cell of the brick lands on an empty,
// in-bounds cell when placed at the given offset.
func (b *Board) Fits(br Brick, ox, oy int) bool {
	fits := true
	br.each(func(x, y int, c Cell) {
		if fits && c.Filled() && b.Taken(ox+x, oy+y) {
			fits = false
		}
	})
	return fits
}

// LineFull reports whether every column of row y is taken.
// Rows outside the grid are never full.
func (b *Board) LineFull(y int) bool {
	if y < 0 || y >= b.height || b.width == 0 {
		return false
	}
	for x := range b.width {
		if !b.Taken(x, y) {
			return false
		}
	}
	return true
}

// clearLine empties row y.
func (b *Board) clearLine(y int) {
	for x := range b.width {
		b.Set(x, y, Empty())
	}
}

// shiftDown moves every row above y down by one, overwriting row y.
// Row 0 becomes empty.
func (b *Board) shiftDown(y int) {
	for row := y; row > 0; row-- {
		for x := range b.width {
			b.Set(x, row, b.At(x, row-1))
		}
	}
	b.clearLine(0)
}

// ClearLines removes every full row and compacts the rows above it.
// Rows are scanned bottom to top; after a shift the same row is examined
// again, because the row that just fell into it may be full as well.
// Returns the number of rows removed.
func (b *Board) ClearLines() int {
	cleared := 0
	for y := b.height - 1; y >= 0; {
		if !b.LineFull(y) {
			y--
			continue
		}
		b.shiftDown(y)
		cleared++
	}
	return cleared
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

// String renders the board as rows of X (taken) and . (empty).
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := range b.height {
		for x := range b.width {
			if b.At(x, y).Filled() {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
