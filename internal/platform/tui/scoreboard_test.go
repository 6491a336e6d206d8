package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func newTestScoreboard(t *testing.T) ScoreboardModel {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Result{
		{GameID: "a", Score: 500, Lines: 4, Pieces: 20},
		{GameID: "a", Score: 900, Lines: 8, Pieces: 31},
		{GameID: "b", Score: 70, Lines: 1, Pieces: 9},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	m.modes = []registry.GameInfo{{ID: "a", Title: "Alpha"}, {ID: "b", Title: "Beta"}}
	m.mode = 0
	m.reload()
	return m
}

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb, cmd
}

func TestScoreboardListsBestFirst(t *testing.T) {
	m := newTestScoreboard(t)

	if len(m.scores) != 2 || m.scores[0].Score != 900 {
		t.Fatalf("scores = %+v, expected 900 first", m.scores)
	}
	if m.stats == nil || m.stats.GamesCount != 2 {
		t.Errorf("stats = %+v, expected 2 games", m.stats)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "Alpha", "Beta", "900", "2 games"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardCyclesModes(t *testing.T) {
	m := newTestScoreboard(t)

	m, _ = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current() != "b" || len(m.scores) != 1 || m.scores[0].Score != 70 {
		t.Errorf("tab should show mode b, got %q with %+v", m.current(), m.scores)
	}

	// Wraps past the last mode
	m, _ = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current() != "a" {
		t.Errorf("tab should wrap to mode a, got %q", m.current())
	}

	m, _ = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.current() != "b" {
		t.Errorf("shift+tab should wrap back to mode b, got %q", m.current())
	}
}

func TestScoreboardEmptyMode(t *testing.T) {
	m := newTestScoreboard(t)
	m.modes = append(m.modes, registry.GameInfo{ID: "c", Title: "Gamma"})
	m.mode = 2
	m.reload()

	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Errorf("empty mode should say so:\n%s", m.View())
	}
}

func TestScoreboardBack(t *testing.T) {
	m := newTestScoreboard(t)

	standalone, cmd := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !standalone.IsGoingBack() || cmd == nil {
		t.Error("esc should leave a standalone scoreboard")
	}

	m.embedded = true
	embedded, cmd := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !embedded.IsGoingBack() || cmd != nil {
		t.Error("esc inside a session should only mark going back")
	}
	if embedded.IsQuitting() {
		t.Error("going back is not quitting")
	}
}
