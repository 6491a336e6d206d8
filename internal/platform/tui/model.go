package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/audio"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// helpH is the number of rows reserved below the game for key help.
const helpH = 1

// GameSettings are applied to configurable games before their first Reset.
type GameSettings struct {
	ConfigPath string
	Width      int
	Height     int
	Randomizer string
}

// Apply passes the settings to g if it accepts them.
func (s GameSettings) Apply(g registry.Game) {
	c, ok := g.(registry.Configurable)
	if !ok {
		return
	}
	c.SetConfigPath(s.ConfigPath)
	c.SetBoardSize(s.Width, s.Height)
	c.SetRandomizer(s.Randomizer)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sound      *audio.SoundBox
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model
	embedded   bool // Running inside a session: Back returns to the menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}

	w, h := gameArea(cfg.ScreenW, cfg.ScreenH)
	return Model{
		game:       game,
		screen:     core.NewScreen(w, h),
		store:      store,
		logger:     log.Default(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       help.New(),
	}
}

// WithSound returns a copy of the model that plays event cues on box.
func (m Model) WithSound(box *audio.SoundBox) Model {
	m.sound = box
	return m
}

// WithLogger returns a copy of the model that reports errors to logger.
func (m Model) WithLogger(logger *log.Logger) Model {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// gameArea returns the screen size left to the game once help is drawn.
func gameArea(w, h int) (int, int) {
	if h > helpH {
		h -= helpH
	}
	return w, h
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenW, cfg.ScreenH = m.screen.Width(), m.screen.Height()
	m.game.Reset(cfg)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	w, h := gameArea(msg.Width, msg.Height)
	m.screen.Resize(w, h)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(w, h)
		return m, nil
	}

	// Games that cannot follow a resize start over
	if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenW, cfg.ScreenH = w, h
		m.game.Reset(cfg)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, e := range result.Events {
		if s, ok := soundFor(e.Kind); ok {
			m.sound.Play(s)
		}
	}

	// A restart clears the saved flag for the next run
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// soundFor returns the cue played for an event.
func soundFor(k core.EventKind) (audio.Sound, bool) {
	switch k {
	case core.EventRotated, core.EventHeld:
		return audio.SoundRotate, true
	case core.EventRejected:
		return audio.SoundRejected, true
	case core.EventLocked:
		return audio.SoundLock, true
	case core.EventLinesCleared:
		return audio.SoundClear, true
	case core.EventGameOver:
		return audio.SoundGameOver, true
	}
	return 0, false
}

// saveScore records the finished run. Runs that scored nothing are skipped.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	res := storage.Result{GameID: m.game.ID(), Score: m.gameState.Score}
	if r, ok := m.game.(registry.Recorder); ok {
		res.Lines = r.Lines()
		res.Pieces = r.Pieces()
		res.Seed = r.Seed()
	}

	if _, err := m.store.SaveResult(res); err != nil {
		m.logger.Error("could not save score", "game", res.GameID, "score", res.Score, "error", err)
	}
}

// saveScreenshot saves the current screen, plus the game's state dump when
// it offers one, to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Error("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("could not save screenshot", "error", err)
		return
	}

	content := m.screen.String()
	if d, ok := m.game.(interface{ DebugState() string }); ok {
		content += "\n" + d.DebugState()
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		m.logger.Error("could not save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	view := RenderScreen(m.screen)
	if m.config.ScreenH > helpH {
		view += "\n" + m.help.View(m.keys.Keys())
	}
	return view
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, sound *audio.SoundBox, logger *log.Logger) error {
	model := NewModel(game, store, cfg).WithSound(sound).WithLogger(logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
