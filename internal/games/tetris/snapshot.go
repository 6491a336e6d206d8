package tetris

import (
	"fmt"
	"strings"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "classic" or "bag"
	Seed      int64
	Score     uint
	Lines     uint
	Locked    uint
	StepTimer uint32
	Piece     string // Active shape
	PieceX    int
	PieceY    int
	GhostY    int
	Next      string
	Held      string // Empty when nothing is held
	Board     string // Locked cells as rows of X and .
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:  g.tick,
		Mode:  string(g.mode),
		Seed:  g.seed,
		State: state,
	}
	if g.engine == nil {
		return snap
	}

	p := g.engine.Player()
	snap.Score = g.engine.Score()
	snap.Lines = g.engine.Lines()
	snap.Locked = g.engine.Locked()
	snap.StepTimer = g.engine.StepTimer()
	snap.Piece = p.Brick().Shape().String()
	snap.PieceX, snap.PieceY = p.Position()
	_, snap.GhostY = g.engine.Ghost().Position()
	snap.Next = g.engine.Next().Shape().String()
	if held, ok := g.engine.Held(); ok {
		snap.Held = held.Shape().String()
	}
	snap.Board = g.engine.Board().String()
	return snap
}

// DebugState returns a human-readable dump of the run, including the board
// with the ghost (+) and active piece (X) painted in.
func (g *Game) DebugState() string {
	s := g.Snapshot()

	var sb strings.Builder
	fmt.Fprintf(&sb, "mode=%s seed=%d tick=%d state=%s\n", s.Mode, s.Seed, s.Tick, s.State)
	fmt.Fprintf(&sb, "score=%d lines=%d locked=%d step_timer=%d\n", s.Score, s.Lines, s.Locked, s.StepTimer)
	fmt.Fprintf(&sb, "piece=%s at (%d,%d) ghost_y=%d next=%s held=%q\n",
		s.Piece, s.PieceX, s.PieceY, s.GhostY, s.Next, s.Held)

	if g.engine == nil {
		return sb.String()
	}
	w := g.engine.Width()
	for p, c := range g.engine.Cells() {
		sb.WriteString(c.String())
		if p.X == w-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
