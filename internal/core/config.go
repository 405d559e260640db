package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
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

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	Level    int
	Lines    int
	GameOver bool // Terminal state, lost or won
	Won      bool
	Paused   bool
}

// Finished reports whether the round reached a terminal state.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// Outcome names the terminal state for storage ("won", "lost") or
// returns "" while the round is still running.
func (s GameState) Outcome() string {
	switch {
	case s.Won:
		return "won"
	case s.GameOver:
		return "lost"
	default:
		return ""
	}
}

// StepResult is returned by Game.Step() after each host frame.
type StepResult struct {
	State GameState
}
