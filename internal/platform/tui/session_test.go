package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.SaveResult(storage.Result{GameID: "fake", Score: 4321, Lines: 3}); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	return NewSessionModel(store, cfg, GameSettings{}, log.New(&strings.Builder{}))
}

func send(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s, cmd
}

func TestSessionMenuShowsBestScores(t *testing.T) {
	m := newTestSession(t)

	view := m.View()
	if !strings.Contains(view, "Fake") || !strings.Contains(view, "04321") {
		t.Errorf("menu should list the mode with its best score:\n%s", view)
	}
}

func TestSessionStartsGameAndReturns(t *testing.T) {
	m := newTestSession(t)

	// Move the cursor to the fake mode
	for i, item := range m.menu.items {
		if item.GameID == "fake" {
			m.menu.cursor = i
		}
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil {
		t.Fatal("enter should start the selected mode")
	}
	if cmd == nil {
		t.Error("starting a game should schedule ticks")
	}

	g := m.gameModel.game.(*fakeGame)
	g.state = core.GameState{GameOver: true}
	m, _ = send(t, m, TickMsg{})
	m, _ = send(t, m, runeKey('b'))
	if m.gameModel != nil {
		t.Fatal("b after game over should return to the menu")
	}
	if m.menu.Selected() != nil {
		t.Error("menu should be fresh after returning")
	}

	// Ticks left over from the game are ignored by the menu
	if _, cmd := send(t, m, TickMsg{}); cmd != nil {
		t.Error("menu should not keep ticking")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}

	view := m.View()
	if !strings.Contains(view, "HIGH SCORES") {
		t.Errorf("unexpected scoreboard view:\n%s", view)
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scoreboard != nil {
		t.Error("esc should return to the menu")
	}
	if m.quitting {
		t.Errorf("going back should not end the session (cmd %v)", cmd != nil)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)

	m, cmd := send(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q should end the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}
