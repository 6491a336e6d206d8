package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Layout constants, in screen characters.
const (
	cellW      = 2  // Each board cell is drawn two characters wide
	titleH     = 1  // Title line above the playfield
	panelGap   = 1  // Space between the playfield and the side panel
	panelW     = 12 // Side panel width
	previewW   = engine.BrickSize*cellW + 2
	previewH   = engine.BrickSize + 2
	panelRows  = 21 // Rows used by the side panel
	ghostColor = core.ColorGray
)

// size returns the screen area the game needs.
func (g *Game) size() (w, h int) {
	fieldW := g.cfg.Board.Width*cellW + 2
	fieldH := g.cfg.Board.Height + 2
	return fieldW + panelGap + panelW, titleH + max(fieldH, panelRows)
}

// fits reports whether a screen of the given size can show the game.
func (g *Game) fits(screenW, screenH int) bool {
	w, h := g.size()
	return core.NewRect(0, 0, screenW, screenH).Contains(w-1, h-1)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.engine == nil {
		w, h := g.size()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	w, h := g.size()
	area := core.Centered(dst.Width(), dst.Height(), w, h)

	dst.DrawTextCenteredColor(area.Y, g.Title(), core.ColorBrightWhite)

	field := core.NewRect(area.X, area.Y+titleH, g.cfg.Board.Width*cellW+2, g.cfg.Board.Height+2)
	dst.DrawBoxColor(field, core.ColorGray)
	g.renderBoard(dst, field.X+1, field.Y+1)

	g.renderPanel(dst, field.Right()+panelGap, field.Y)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score %05d - R to restart", g.engine.Score()))
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "Press P to continue")
	}
}

// renderBoard draws locked cells, the ghost and the active piece.
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	for p, c := range g.engine.Cells() {
		x, y := ox+p.X*cellW, oy+p.Y
		switch {
		case c.IsOccupied():
			dst.DrawTextColor(x, y, "[]", c.Color())
		case c.IsGhost() && g.cfg.Ghost:
			dst.DrawTextColor(x, y, "::", ghostColor)
		default:
			dst.DrawTextColor(x, y, " .", core.ColorGray)
		}
	}
}

// renderPanel draws score, counters and the Next and Hold previews.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawTextColor(x, y, "SCORE", core.ColorGray)
	dst.DrawTextColor(x, y+1, fmt.Sprintf("%05d", g.engine.Score()), core.ColorBrightWhite)
	dst.DrawTextColor(x, y+3, "LINES", core.ColorGray)
	dst.DrawTextColor(x, y+4, fmt.Sprintf("%d", g.engine.Lines()), core.ColorBrightWhite)
	dst.DrawHLine(x, y+5, panelW-2, '-')

	dst.DrawTextColor(x, y+6, "NEXT", core.ColorGray)
	g.renderPreview(dst, x, y+7, g.engine.Next(), true)

	held, ok := g.engine.Held()
	dst.DrawTextColor(x, y+13, "HOLD", core.ColorGray)
	g.renderPreview(dst, x, y+14, held, ok)

	dst.DrawTextColor(x, y+20, fmt.Sprintf("PIECES %d", g.engine.Locked()), core.ColorGray)
}

// renderPreview draws a framed brick; an empty frame when show is false.
func (g *Game) renderPreview(dst *core.Screen, x, y int, b engine.Brick, show bool) {
	frame := core.NewRect(x, y, previewW, previewH)
	dst.DrawBoxColor(frame, core.ColorGray)
	if !show {
		return
	}
	inner := frame.Translate(1, 1)
	for by := range engine.BrickSize {
		for bx := range engine.BrickSize {
			if c := b.At(bx, by); c.IsOccupied() {
				dst.DrawTextColor(inner.X+bx*cellW, inner.Y+by, "[]", c.Color())
			}
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	box := core.Centered(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCenteredColor(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
