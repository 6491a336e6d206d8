// Package tetris adapts the block-stacking engine to the platform's game
// interface: it owns configuration, pause and restart, turns input actions
// into engine commands and reports what happened as step events.
package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects which randomizer a registered game uses.
type Mode string

const (
	ModeClassic Mode = "classic" // Randomizer from config, classic by default
	ModeBag     Mode = "bag"     // Always the 7-bag randomizer
)

// Game implements the Tetris modes.
type Game struct {
	mode   Mode
	engine *engine.Tetris
	cfg    config.TetrisConfig
	cfgErr error

	// Overrides applied on top of the loaded config
	configPath string
	width      int
	height     int
	randomizer string

	seed    int64
	tick    uint64
	screenW int
	screenH int

	// Counters seen at the end of the previous step
	lastLines  uint
	lastLocked uint

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a classic-mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewBag creates a game that always deals 7-bags.
func NewBag() *Game {
	return &Game{mode: ModeBag}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_bag", func() registry.Game {
		return NewBag()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeBag {
		return "tetris_bag"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBag {
		return "Tetris (7-bag)"
	}
	return "Tetris"
}

// SetConfigPath sets the YAML file read on the next Reset.
func (g *Game) SetConfigPath(path string) {
	g.configPath = path
}

// SetBoardSize overrides the configured board size. Zero keeps the config value.
func (g *Game) SetBoardSize(width, height int) {
	g.width = width
	g.height = height
}

// SetRandomizer overrides the configured randomizer kind. Ignored in bag mode.
func (g *Game) SetRandomizer(kind string) {
	g.randomizer = kind
}

// ConfigError returns the problem found while loading configuration during
// the last Reset, if any. The game falls back to defaults in that case.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Config returns the configuration the current run was built from.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg, g.cfgErr = g.loadConfig()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.start(cfg.Seed)
}

// loadConfig resolves the file, the overrides and the mode into a valid config.
func (g *Game) loadConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(g.configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}

	cfg = cfg.WithOverrides(g.width, g.height, g.randomizer)
	if g.mode == ModeBag {
		cfg.Randomizer = engine.KindBag
	}

	if verr := cfg.Validate(); verr != nil {
		fallback := config.DefaultTetrisConfig()
		fallback.Ghost, fallback.Sound = cfg.Ghost, cfg.Sound
		if g.mode == ModeBag {
			fallback.Randomizer = engine.KindBag
		}
		if err == nil {
			err = verr
		}
		return fallback, err
	}
	return cfg, err
}

// start builds a fresh engine from the current config and seed.
func (g *Game) start(seed int64) {
	r, err := engine.NewRandomizer(g.cfg.Randomizer, seed)
	if err != nil {
		r = engine.NewClassic(int32(seed))
	}

	g.seed = seed
	g.engine = engine.New(g.cfg.Board.Width, g.cfg.Board.Height, r)
	g.tick = 0
	g.lastLines = 0
	g.lastLocked = 0
	g.gameOver = false
	g.paused = false
	g.tooSmall = !g.fits(g.screenW, g.screenH)
}

// Resize adapts to a new screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.fits(w, h)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Restart works at any time; the next run is seeded from the current score
	if input.Has(core.ActionRestart) {
		g.start(int64(g.engine.Score()))
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	for _, a := range input.Actions {
		if e, ok := g.apply(a); ok {
			events = append(events, e)
		}
	}

	g.engine.Tick()

	if locked := g.engine.Locked(); locked > g.lastLocked {
		events = append(events, core.Event{Kind: core.EventLocked, Count: int(locked - g.lastLocked)})
		g.lastLocked = locked
	}
	if lines := g.engine.Lines(); lines > g.lastLines {
		events = append(events, core.Event{Kind: core.EventLinesCleared, Count: int(lines - g.lastLines)})
		g.lastLines = lines
	}

	if g.engine.ToppedOut() {
		g.gameOver = true
		events = append(events, core.Event{Kind: core.EventGameOver})
	}

	return core.StepResult{State: g.State(), Events: events}
}

// apply runs one action against the engine and reports the event it causes.
func (g *Game) apply(a core.Action) (core.Event, bool) {
	switch a {
	case core.ActionLeft:
		return rejectedUnless(g.engine.MoveLeft())
	case core.ActionRight:
		return rejectedUnless(g.engine.MoveRight())
	case core.ActionRotateLeft:
		return rotated(g.engine.RotateLeft())
	case core.ActionRotateRight:
		return rotated(g.engine.RotateRight())
	case core.ActionSoftDrop:
		g.engine.MoveDown()
	case core.ActionHardDrop:
		g.engine.DropBlock()
	case core.ActionHold:
		if g.engine.SwapHeld() {
			return core.Event{Kind: core.EventHeld}, true
		}
		return core.Event{Kind: core.EventRejected}, true
	}
	return core.Event{}, false
}

func rejectedUnless(ok bool) (core.Event, bool) {
	if ok {
		return core.Event{}, false
	}
	return core.Event{Kind: core.EventRejected}, true
}

func rotated(ok bool) (core.Event, bool) {
	if ok {
		return core.Event{Kind: core.EventRotated}, true
	}
	return core.Event{Kind: core.EventRejected}, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.engine != nil {
		score = int(g.engine.Score())
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Lines returns the rows cleared in the current run.
func (g *Game) Lines() int {
	if g.engine == nil {
		return 0
	}
	return int(g.engine.Lines())
}

// Pieces returns the bricks locked in the current run.
func (g *Game) Pieces() int {
	if g.engine == nil {
		return 0
	}
	return int(g.engine.Locked())
}

// Seed returns the seed the current run was started with.
func (g *Game) Seed() int64 {
	return g.seed
}
