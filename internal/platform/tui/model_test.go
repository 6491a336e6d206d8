package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/audio"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// fakeGame records what the platform feeds it.
type fakeGame struct {
	resets  int
	resized [2]int
	inputs  [][]core.Action
	state   core.GameState
	events  []core.Event
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone().Actions)
	return core.StepResult{State: g.state, Events: g.events}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) Resize(w, h int)         { g.resized = [2]int{w, h} }
func (g *fakeGame) Lines() int              { return 12 }
func (g *fakeGame) Pieces() int             { return 34 }
func (g *fakeGame) Seed() int64             { return 56 }

var (
	_ registry.Resizable = (*fakeGame)(nil)
	_ registry.Recorder  = (*fakeGame)(nil)
)

func newTestModel(t *testing.T, g *fakeGame) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1})
	m.Init()
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestModelForwardsKeysOnTick(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	m, _ = update(t, m, runeKey('h'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(g.inputs) != 1 {
		t.Fatalf("expected one step, got %d", len(g.inputs))
	}
	if got := g.inputs[0]; len(got) != 2 || got[0] != core.ActionLeft || got[1] != core.ActionHardDrop {
		t.Errorf("step received %v", got)
	}

	update(t, m, TickMsg(time.Now()))
	if len(g.inputs[1]) != 0 {
		t.Errorf("input should be cleared after a tick, got %v", g.inputs[1])
	}
}

func TestModelInitReservesHelpRow(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	if g.resets != 1 {
		t.Errorf("Init should reset the game once, got %d", g.resets)
	}
	if m.screen.Height() != 24 {
		t.Errorf("game screen height = %d, expected 24", m.screen.Height())
	}

	view := m.View()
	if !strings.Contains(view, "fake") || !strings.Contains(view, "drop") {
		t.Errorf("view should show the game and key help:\n%s", view)
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	g := &fakeGame{}
	m, store := newTestModel(t, g)

	g.state = core.GameState{Score: 77, GameOver: true}
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected one saved run, got %d", len(scores))
	}
	if e := scores[0]; e.Score != 77 || e.Lines != 12 || e.Pieces != 34 || e.Seed != 56 {
		t.Errorf("unexpected entry %+v", e)
	}

	// A new run that ends again is saved again
	g.state = core.GameState{}
	m, _ = update(t, m, TickMsg(time.Now()))
	g.state = core.GameState{Score: 5, GameOver: true}
	update(t, m, TickMsg(time.Now()))

	scores, _ = store.TopScores("fake", 10)
	if len(scores) != 2 {
		t.Errorf("expected two saved runs, got %d", len(scores))
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	g := &fakeGame{}
	m, store := newTestModel(t, g)

	g.state = core.GameState{GameOver: true}
	update(t, m, TickMsg(time.Now()))

	if high, _ := store.HighScore("fake"); high != 0 {
		t.Errorf("zero score runs should not be saved, got %d", high)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resized != [2]int{100, 39} {
		t.Errorf("game resized to %v, expected [100 39]", g.resized)
	}
	if g.resets != 1 {
		t.Error("resizable games should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuitAndBack(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	// Back is ignored outside a session
	g.state = core.GameState{GameOver: true}
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("standalone model should not go back to a menu")
	}

	m.embedded = true
	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b after game over should return to the menu")
	}

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestSoundForEvents(t *testing.T) {
	tests := []struct {
		kind  core.EventKind
		sound audio.Sound
	}{
		{core.EventRotated, audio.SoundRotate},
		{core.EventHeld, audio.SoundRotate},
		{core.EventRejected, audio.SoundRejected},
		{core.EventLocked, audio.SoundLock},
		{core.EventLinesCleared, audio.SoundClear},
		{core.EventGameOver, audio.SoundGameOver},
	}
	for _, tt := range tests {
		s, ok := soundFor(tt.kind)
		if !ok || s != tt.sound {
			t.Errorf("soundFor(%s) = %s, %v; expected %s", tt.kind, s, ok, tt.sound)
		}
	}
	if _, ok := soundFor(core.EventKind(0)); ok {
		t.Error("unknown events should be silent")
	}
}

func TestGameSettingsApply(t *testing.T) {
	settings := GameSettings{ConfigPath: "x.yaml", Width: 12, Height: 22, Randomizer: "bag"}

	c := &configurable{}
	settings.Apply(c)
	if *c != (configurable{fakeGame: c.fakeGame, path: "x.yaml", w: 12, h: 22, kind: "bag"}) {
		t.Errorf("settings not applied: %+v", *c)
	}

	// Plain games are left alone
	settings.Apply(&fakeGame{})
}

type configurable struct {
	*fakeGame
	path string
	w, h int
	kind string
}

func (c *configurable) SetConfigPath(p string)    { c.path = p }
func (c *configurable) SetBoardSize(w, h int)     { c.w, c.h = w, h }
func (c *configurable) SetRandomizer(kind string) { c.kind = kind }
