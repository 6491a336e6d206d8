package engine

// Player is a brick positioned on the board but not yet part of it.
// It is a value: every move returns a new Player and feasibility is left to
// the caller through Fits.
type Player struct {
	x, y  int
	brick Brick
}

// NewPlayer places a brick at an explicit offset.
func NewPlayer(b Brick, x, y int) Player {
	return Player{x: x, y: y, brick: b}
}

// WithBrickCentered places a brick horizontally centered on the top row.
func WithBrickCentered(b Brick, boardWidth int) Player {
	return Player{
		x:     boardWidth/2 - b.Width()/2,
		y:     0,
		brick: b,
	}
}

// Position returns the board offset of the brick's top-left corner.
func (p Player) Position() (x, y int) {
	return p.x, p.y
}

// Brick returns the positioned brick.
func (p Player) Brick() Brick {
	return p.brick
}

// MoveLeft returns the player shifted one column left.
func (p Player) MoveLeft() Player {
	p.x--
	return p
}

// MoveRight returns the player shifted one column right.
func (p Player) MoveRight() Player {
	p.x++
	return p
}

// MoveDown returns the player shifted one row down.
func (p Player) MoveDown() Player {
	p.y++
	return p
}

// RotateLeft returns the player with its brick rotated left in place.
func (p Player) RotateLeft() Player {
	p.brick = p.brick.RotateLeft()
	return p
}

// RotateRight returns the player with its brick rotated right in place.
func (p Player) RotateRight() Player {
	p.brick = p.brick.RotateRight()
	return p
}

// SetBrick returns the player carrying a different brick at the same offset.
func (p Player) SetBrick(b Brick) Player {
	p.brick = b
	return p
}

// AsGhost returns the player with its brick turned into ghost markers.
func (p Player) AsGhost() Player {
	p.brick = p.brick.AsGhost()
	return p
}

// Fits reports whether the player can occupy its position on the board.
func (p Player) Fits(b *Board) bool {
	return b.Fits(p.brick, p.x, p.y)
}
