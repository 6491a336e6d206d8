// tetris is a terminal block-stacking game with local and SSH play.
//
// Usage:
//
//	tetris list              - List available modes
//	tetris play [mode]       - Play a mode (default: tetris)
//	tetris menu              - Start menu to pick modes interactively
//	tetris serve             - Start SSH server for remote play
//	tetris scores [mode]     - Show high scores for a mode
//	tetris config [mode]     - Print the default or effective settings
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--config <path>       - Read game settings from a YAML file
//	-W, -H <cells>        - Override the board size
//	--randomizer <kind>   - classic, bag or crypto
//	--sound               - Play sound cues
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagWidth      int
	flagHeight     int
	flagRandomizer string
	flagSound      bool
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - stack falling bricks in your terminal",
	Long: `A deterministic falling-block game for the terminal.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print game settings

Examples:
  tetris play
  tetris play tetris_bag --seed 42
  tetris play -W 12 -H 24 --randomizer crypto
  tetris menu --sound
  tetris serve --ssh :2222
  tetris scores tetris`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to game config YAML")
	pf.IntVarP(&flagWidth, "width", "W", 0, "Board width in cells (0 = from config)")
	pf.IntVarP(&flagHeight, "height", "H", 0, "Board height in cells (0 = from config)")
	pf.StringVar(&flagRandomizer, "randomizer", "", "Piece randomizer: classic, bag or crypto (empty = from config)")
	pf.BoolVar(&flagSound, "sound", false, "Play sound cues")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// gameSettings collects the flags that configure a mode.
func gameSettings() tui.GameSettings {
	return tui.GameSettings{
		ConfigPath: flagConfig,
		Width:      flagWidth,
		Height:     flagHeight,
		Randomizer: flagRandomizer,
	}
}

// newFileLogger returns a logger for full-screen commands, which own the
// terminal. It writes to ~/.tetris/tetris.log and falls back to stderr.
// The returned func closes the file.
func newFileLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	opts := log.Options{ReportTimestamp: true, Level: level, Prefix: "tetris"}

	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".tetris")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			f, ferr := os.OpenFile(filepath.Join(dir, "tetris.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if ferr == nil {
				return log.NewWithOptions(f, opts), func() { f.Close() }
			}
		}
	}
	return log.NewWithOptions(os.Stderr, opts), func() {}
}

// newStderrLogger returns a logger for commands that keep the terminal.
func newStderrLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Level: level, Prefix: prefix})
}
