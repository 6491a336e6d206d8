package engine

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// BrickSize is the edge length of a brick's square grid.
const BrickSize = 4

// Shape identifies one of the seven bricks.
type Shape uint8

// Shapes in randomizer index order.
const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeJ
	ShapeL
	ShapeS
	ShapeZ
)

// ShapeCount is the number of distinct shapes.
const ShapeCount = 7

func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	default:
		return "?"
	}
}

// Color returns the permanent color of the shape.
func (s Shape) Color() core.Color {
	switch s {
	case ShapeI:
		return core.ColorCyan
	case ShapeO:
		return core.ColorYellow
	case ShapeT:
		return core.ColorMagenta
	case ShapeJ:
		return core.ColorBlue
	case ShapeL:
		return core.ColorOrange
	case ShapeS:
		return core.ColorGreen
	case ShapeZ:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

// layouts holds the spawn orientation of every shape, row by row.
// '#' marks a filled cell.
var layouts = [ShapeCount][BrickSize]string{
	ShapeI: {
		"....",
		"####",
		"....",
		"....",
	},
	ShapeO: {
		"....",
		".##.",
		".##.",
		"....",
	},
	ShapeT: {
		"....",
		"###.",
		".#..",
		"....",
	},
	ShapeJ: {
		"..#.",
		"..#.",
		".##.",
		"....",
	},
	ShapeL: {
		".#..",
		".#..",
		".##.",
		"....",
	},
	ShapeS: {
		"....",
		"..##",
		".##.",
		"....",
	},
	ShapeZ: {
		"....",
		"##..",
		".##.",
		"....",
	},
}

// Brick is a 4x4 grid of cells holding one shape in some orientation.
// It is an immutable value: every transform returns a new Brick.
type Brick struct {
	shape Shape
	cells [BrickSize * BrickSize]Cell
}

// NewBrick returns the spawn orientation of a shape.
// Unknown shapes produce an empty brick.
func NewBrick(s Shape) Brick {
	b := Brick{shape: s}
	if int(s) >= ShapeCount {
		return b
	}
	fill := Occupied(s.Color())
	for y, row := range layouts[s] {
		for x := range BrickSize {
			if row[x] == '#' {
				b.cells[y*BrickSize+x] = fill
			}
		}
	}
	return b
}

// BrickI returns the I brick.
func BrickI() Brick { return NewBrick(ShapeI) }

// BrickO returns the O brick.
func BrickO() Brick { return NewBrick(ShapeO) }

// BrickT returns the T brick.
func BrickT() Brick { return NewBrick(ShapeT) }

// BrickJ returns the J brick.
func BrickJ() Brick { return NewBrick(ShapeJ) }

// BrickL returns the L brick.
func BrickL() Brick { return NewBrick(ShapeL) }

// BrickS returns the S brick.
func BrickS() Brick { return NewBrick(ShapeS) }

// BrickZ returns the Z brick.
func BrickZ() Brick { return NewBrick(ShapeZ) }

// ByIndex maps any integer onto a shape using |i| mod 7.
func ByIndex(i int) Brick {
	// Truncated remainder keeps the sign of i, so flipping it afterwards
	// equals |i| mod 7 without overflowing on the minimum int.
	r := i % ShapeCount
	if r < 0 {
		r = -r
	}
	return NewBrick(Shape(r))
}

// Shape returns the brick's shape.
func (b Brick) Shape() Shape {
	return b.shape
}

// Width returns the grid width.
func (b Brick) Width() int {
	return BrickSize
}

// Height returns the grid height.
func (b Brick) Height() int {
	return BrickSize
}

// At returns the cell at local coordinate (x, y); empty outside the grid.
func (b Brick) At(x, y int) Cell {
	if x < 0 || x >= BrickSize || y < 0 || y >= BrickSize {
		return Empty()
	}
	return b.cells[y*BrickSize+x]
}

// each visits every local cell in row-major order.
func (b Brick) each(fn func(x, y int, c Cell)) {
	for y := range BrickSize {
		for x := range BrickSize {
			fn(x, y, b.cells[y*BrickSize+x])
		}
	}
}

// RotateLeft returns the brick turned a quarter: new(x, y) = old(3-y, x).
// It is a pure grid transform; whether the result fits is the caller's
// concern.
func (b Brick) RotateLeft() Brick {
	out := Brick{shape: b.shape}
	for x := range BrickSize {
		for y := range BrickSize {
			out.cells[y*BrickSize+x] = b.At(BrickSize-1-y, x)
		}
	}
	return out
}

// RotateRight returns the brick turned a quarter the other way.
func (b Brick) RotateRight() Brick {
	return b.RotateLeft().RotateLeft().RotateLeft()
}

// AsGhost returns a copy where every filled cell is a ghost marker.
func (b Brick) AsGhost() Brick {
	out := Brick{shape: b.shape}
	for i, c := range b.cells {
		if c.Filled() {
			out.cells[i] = Ghost()
		}
	}
	return out
}

// Bounds returns the smallest column and row span holding filled cells.
// ok is false for an empty brick.
func (b Brick) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	minX, minY = BrickSize, BrickSize
	maxX, maxY = -1, -1
	b.each(func(x, y int, c Cell) {
		if !c.Filled() {
			return
		}
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	})
	return minX, minY, maxX, maxY, maxX >= 0
}

// String renders the grid as four rows of '#' and '.'.
func (b Brick) String() string {
	var sb strings.Builder
	for y := range BrickSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range BrickSize {
			if b.At(x, y).Filled() {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
