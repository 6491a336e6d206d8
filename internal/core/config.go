package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something noteworthy that happened during a tick.
type EventKind int

const (
	EventRotated      EventKind = iota + 1 // A rotation was accepted
	EventRejected                          // A move, rotation or swap did not fit
	EventLocked                            // A piece became part of the board
	EventLinesCleared                      // Count rows were removed
	EventHeld                              // The active piece went to the hold slot
	EventGameOver                          // The stack reached the spawn area
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventRotated:
		return "Rotated"
	case EventRejected:
		return "Rejected"
	case EventLocked:
		return "Locked"
	case EventLinesCleared:
		return "LinesCleared"
	case EventHeld:
		return "Held"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is a single step notification. Count is only set for LinesCleared.
type Event struct {
	Kind  EventKind
	Count int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of the given kind occurred.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
