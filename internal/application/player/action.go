package player

import "strconv"

// Action is the symbolic animation tag for the current tick.
type Action string

const (
	ActionIdle     Action = "idle"
	ActionMove     Action = "move"
	ActionFast     Action = "fast"
	ActionJump     Action = "jump"
	ActionFall     Action = "fall"
	ActionSlide    Action = "slide"
	ActionSideKick Action = "sidekick"
	ActionDropKick Action = "dropkick"
	ActionHurt     Action = "hurt"
	ActionCharge   Action = "charge"
	ActionLasering Action = "lasering"
	ActionTurn     Action = "turn"
	ActionCrouch   Action = "crouch"
	ActionDead     Action = "dead"
)

// flipFrames is the number of distinct flip tags.
const flipFrames = 5

// FlipAction returns the flip tag for arc progress t.
func FlipAction(t float64) Action {
	n := int(t*flipFrames) + 1
	if n < 1 {
		n = 1
	}
	if n > flipFrames {
		n = flipFrames
	}
	return Action("flip" + strconv.Itoa(n))
}

// Move is the primary action the player is performing.
type Move int

const (
	Idle Move = iota
	Sliding
	SideKicking
	DropKicking
	Flipping
	Lasering
	Dying
)

// String returns the string representation of the move
func (m Move) String() string {
	switch m {
	case Idle:
		return "idle"
	case Sliding:
		return "sliding"
	case SideKicking:
		return "sidekicking"
	case DropKicking:
		return "dropkicking"
	case Flipping:
		return "flipping"
	case Lasering:
		return "lasering"
	case Dying:
		return "dying"
	default:
		return "unknown"
	}
}

// attacking reports whether the move owns a kick or slide hitbox.
func (m Move) attacking() bool {
	return m == Sliding || m == SideKicking || m == DropKicking || m == Flipping
}
