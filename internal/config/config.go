// Package config provides YAML-based game configuration loading and
// validation for the Tetris modes.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Board size limits accepted by Validate.
const (
	MinBoardSize = 4
	MaxBoardSize = 64
)

// Randomizer kinds accepted in configuration.
var randomizers = []string{"classic", "bag", "crypto"}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board      BoardConfig `yaml:"board"`
	Randomizer string      `yaml:"randomizer"` // "classic", "bag" or "crypto"
	Ghost      bool        `yaml:"ghost"`      // Draw the landing preview
	Sound      bool        `yaml:"sound"`      // Play step sounds
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate checks the board dimensions and the randomizer kind.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Width < MinBoardSize || c.Board.Width > MaxBoardSize {
		errs = append(errs, fmt.Errorf("%w: board width %d outside [%d, %d]",
			ErrInvalidConfig, c.Board.Width, MinBoardSize, MaxBoardSize))
	}
	if c.Board.Height < MinBoardSize || c.Board.Height > MaxBoardSize {
		errs = append(errs, fmt.Errorf("%w: board height %d outside [%d, %d]",
			ErrInvalidConfig, c.Board.Height, MinBoardSize, MaxBoardSize))
	}
	if !slices.Contains(randomizers, strings.ToLower(c.Randomizer)) {
		errs = append(errs, fmt.Errorf("%w: randomizer %q (want one of %s)",
			ErrInvalidConfig, c.Randomizer, strings.Join(randomizers, ", ")))
	}
	return errors.Join(errs...)
}

// WithOverrides returns a copy with the non-zero overrides applied.
// It is how CLI flags take precedence over the file.
func (c TetrisConfig) WithOverrides(width, height int, randomizer string) TetrisConfig {
	if width > 0 {
		c.Board.Width = width
	}
	if height > 0 {
		c.Board.Height = height
	}
	if randomizer != "" {
		c.Randomizer = strings.ToLower(randomizer)
	}
	return c
}
