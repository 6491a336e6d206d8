package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config [mode]",
	Short: "Print the game configuration",
	Long: `Print the default YAML configuration of a mode (default: tetris).

With --effective, print the settings a run would use after reading
--config or the search path and applying -W, -H and --randomizer.

Examples:
  tetris config > ~/.tetris/configs/tetris.yaml
  tetris config --effective -W 12 --randomizer bag`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved settings instead of the defaults")
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		os.Exit(1)
	}

	if !flagEffective {
		os.Stdout.Write(config.GetDefaultYAML(gameID))
		return
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = cfg.WithOverrides(flagWidth, flagHeight, flagRandomizer)
	if gameID == "tetris_bag" {
		cfg.Randomizer = "bag"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
