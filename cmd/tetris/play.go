package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/audio"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tetris).

Controls:
  Left/Right, h/l  - Move
  Down, j          - Soft drop
  Space            - Hard drop
  z / x, Up        - Rotate counterclockwise / clockwise
  c                - Hold
  P/Esc            - Pause
  R                - Restart (new run seeded from the score)
  Ctrl+S           - Save a screenshot to ~/.tetris/screenshots
  Q/Ctrl+C         - Quit

Examples:
  tetris play
  tetris play tetris_bag
  tetris play --seed 7 --randomizer classic
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := newFileLogger()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	gameSettings().Apply(game)

	store := openStore(logger)
	sound := openSound(logger)

	runErr := tui.Run(game, store, runtimeConfig(), sound, logger)
	reportConfigError(game, logger)

	// Close before potential exit
	sound.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// openSound starts audio when --sound or the config asks for it.
// A nil SoundBox plays nothing.
func openSound(logger *log.Logger) *audio.SoundBox {
	enabled := flagSound
	if !enabled {
		cfg, err := config.LoadTetris(flagConfig)
		enabled = err == nil && cfg.Sound
	}
	if !enabled {
		return nil
	}

	box := audio.NewSoundBox(0.5)
	if err := box.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	return box
}

// reportConfigError tells the user when their settings were replaced by defaults.
func reportConfigError(game registry.Game, logger *log.Logger) {
	c, ok := game.(interface{ ConfigError() error })
	if !ok || c.ConfigError() == nil {
		return
	}
	logger.Warn("invalid settings, defaults were used", "game", game.ID(), "error", c.ConfigError())
	fmt.Fprintf(os.Stderr, "Warning: invalid settings, defaults were used: %v\n", c.ConfigError())
}
