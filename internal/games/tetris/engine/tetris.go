package engine

import "iter"

const (
	// GravityFrames is the tick cadence of forced drops.
	GravityFrames = 60

	// SoftAcceleration is how many ticks a successful move, rotation or
	// first hold takes off the step timer.
	SoftAcceleration = 2
)

// Point is a board coordinate.
type Point struct {
	X, Y int
}

// Tetris is the game state machine. It owns the board exclusively; the
// active and ghost players are values evaluated against it.
//
// Calls must be made sequentially from one goroutine.
type Tetris struct {
	board      *Board
	player     Player
	ghost      Player
	next       Brick
	held       Brick
	hasHeld    bool
	stepTimer  uint32
	score      uint
	lines      uint
	locked     uint
	randomizer Randomizer
}

// New creates a game on an empty width x height board. The first two draws
// of the randomizer become the active and the next piece.
func New(width, height int, r Randomizer) *Tetris {
	if r == nil {
		r = NewClassic(1)
	}
	t := &Tetris{
		board:      NewBoard(width, height),
		stepTimer:  1,
		randomizer: r,
	}
	t.player = WithBrickCentered(t.randomBrick(), width)
	t.next = t.randomBrick()
	t.updateGhost()
	return t
}

func (t *Tetris) randomBrick() Brick {
	return ByIndex(t.randomizer.Next())
}

// accelerate takes SoftAcceleration ticks off the step timer, never going
// below 1.
func (t *Tetris) accelerate() {
	if t.stepTimer > SoftAcceleration {
		t.stepTimer -= SoftAcceleration
	} else {
		t.stepTimer = 1
	}
}

// try commits a candidate if it fits and speeds up the next forced drop.
func (t *Tetris) try(candidate Player) bool {
	if !candidate.Fits(t.board) {
		return false
	}
	t.player = candidate
	t.accelerate()
	return true
}

// MoveLeft shifts the active piece one column left if it fits.
func (t *Tetris) MoveLeft() bool {
	return t.try(t.player.MoveLeft())
}

// MoveRight shifts the active piece one column right if it fits.
func (t *Tetris) MoveRight() bool {
	return t.try(t.player.MoveRight())
}

// RotateLeft rotates the active piece in place if the result fits.
// There are no wall kicks.
func (t *Tetris) RotateLeft() bool {
	return t.try(t.player.RotateLeft())
}

// RotateRight rotates the active piece in place if the result fits.
func (t *Tetris) RotateRight() bool {
	return t.try(t.player.RotateRight())
}

// MoveDown drops the active piece one row, scoring 1. When the row below is
// blocked the piece locks where it is instead, the next piece spawns, 2
// points are awarded and false is returned.
func (t *Tetris) MoveDown() bool {
	moved := t.player.MoveDown()
	if moved.Fits(t.board) {
		t.player = moved
		t.stepTimer = 1
		t.score++
		return true
	}

	t.lock(t.player)
	t.score += 2
	return false
}

// DropBlock sends the active piece straight to its resting row and locks it.
// The drop is worth a flat point whatever the distance.
func (t *Tetris) DropBlock() {
	t.lock(t.landing(t.player))
	t.stepTimer = 1
	t.score++
}

// SwapHeld exchanges the active piece with the held one. With a held piece
// the swap keeps the current offset and is refused (false, no change) if the
// held shape does not fit there. With nothing held the active piece is
// stored, the next piece spawns and the call always succeeds.
func (t *Tetris) SwapHeld() bool {
	if t.hasHeld {
		changed := t.player.SetBrick(t.held)
		if !changed.Fits(t.board) {
			return false
		}
		t.held = t.player.Brick()
		t.player = changed
		return true
	}

	t.held = t.player.Brick()
	t.hasHeld = true
	t.spawn()
	t.accelerate()
	return true
}

// Tick advances the game by one frame: forced gravity every GravityFrames
// ticks, line clearing (cleared^4 points), ghost recomputation, and the
// step timer increment.
func (t *Tetris) Tick() {
	if t.stepTimer%GravityFrames == 0 {
		t.MoveDown()
	}

	cleared := uint(t.board.ClearLines())
	t.score += cleared * cleared * cleared * cleared
	t.lines += cleared

	t.updateGhost()
	t.stepTimer++
}

// landing returns p moved down for as long as it keeps fitting.
func (t *Tetris) landing(p Player) Player {
	for {
		lower := p.MoveDown()
		if !lower.Fits(t.board) {
			return p
		}
		p = lower
	}
}

// lock writes p into the board and brings in the next piece.
func (t *Tetris) lock(p Player) {
	t.board.Insert(p.Brick(), p.x, p.y)
	t.locked++
	t.spawn()
}

// spawn centers the pending piece and draws a new one.
func (t *Tetris) spawn() {
	t.player = WithBrickCentered(t.next, t.board.Width())
	t.next = t.randomBrick()
}

// updateGhost recomputes the landing preview from scratch.
func (t *Tetris) updateGhost() {
	t.ghost = t.landing(t.player.AsGhost())
}

// ToppedOut reports whether the active piece overlaps the stack or the
// walls where it stands, which only happens when it spawned into a full
// top. The engine keeps running regardless; hosts decide what it means.
func (t *Tetris) ToppedOut() bool {
	return !t.player.Fits(t.board)
}

// Score returns the points accumulated so far.
func (t *Tetris) Score() uint {
	return t.score
}

// Lines returns the total number of rows cleared.
func (t *Tetris) Lines() uint {
	return t.lines
}

// Locked returns the total number of pieces locked into the board.
func (t *Tetris) Locked() uint {
	return t.locked
}

// StepTimer returns the tick counter driving forced drops.
func (t *Tetris) StepTimer() uint32 {
	return t.stepTimer
}

// Next returns the piece that spawns after the active one.
func (t *Tetris) Next() Brick {
	return t.next
}

// Held returns the held piece, if any.
func (t *Tetris) Held() (Brick, bool) {
	return t.held, t.hasHeld
}

// Player returns the active piece.
func (t *Tetris) Player() Player {
	return t.player
}

// Ghost returns the landing preview as of the last tick.
func (t *Tetris) Ghost() Player {
	return t.ghost
}

// Board returns a copy of the locked cells.
func (t *Tetris) Board() *Board {
	return t.board.Clone()
}

// Width returns the board width.
func (t *Tetris) Width() int {
	return t.board.Width()
}

// Height returns the board height.
func (t *Tetris) Height() int {
	return t.board.Height()
}

// Cells yields every board coordinate in row-major order together with the
// cell to draw there: locked cells, then the ghost, then the active piece on
// top.
func (t *Tetris) Cells() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		view := t.board.Clone()
		view.Insert(t.ghost.Brick(), t.ghost.x, t.ghost.y)
		view.Insert(t.player.Brick(), t.player.x, t.player.y)

		for y := range view.Height() {
			for x := range view.Width() {
				if !yield(Point{X: x, Y: y}, view.At(x, y)) {
					return
				}
			}
		}
	}
}
