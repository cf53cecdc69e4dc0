// Package state holds the sandbox scene's lifecycle states.
package state

// GameState represents the current state of the game
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	// StateDying holds the death pose before the player respawns at the
	// last checkpoint.
	StateDying
	StateGameOver
	// StateReplay plays back a recorded session; keyboard input is ignored
	// except for pause.
	StateReplay
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateDying:
		return "Dying"
	case StateGameOver:
		return "GameOver"
	case StateReplay:
		return "Replay"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the world advances in this state.
func (s GameState) Simulating() bool {
	return s == StatePlaying || s == StateDying || s == StateReplay
}
