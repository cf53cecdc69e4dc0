package player

import "github.com/younwookim/kickrun/internal/domain/entity"

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventRebound EventKind = iota
	EventTileBroken
	EventEnemyHit
	EventHurt
	EventPickup
	EventDeath
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventRebound:
		return "rebound"
	case EventTileBroken:
		return "tile_broken"
	case EventEnemyHit:
		return "enemy_hit"
	case EventHurt:
		return "hurt"
	case EventPickup:
		return "pickup"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Cause is the source of damage.
type Cause int

const (
	CauseSpike Cause = iota
	CauseHeat
	CauseEnemy
	CauseFall
)

// String returns the string representation of the cause
func (c Cause) String() string {
	switch c {
	case CauseSpike:
		return "spike"
	case CauseHeat:
		return "heat"
	case CauseEnemy:
		return "enemy"
	case CauseFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Event is emitted by Update for the scene to react to (sound, respawn
// points, effects).
type Event struct {
	Kind EventKind
	Move Move

	// X, Y is where it happened in world pixels.
	X, Y float64

	// TX, TY is the broken tile for EventTileBroken.
	TX, TY int

	Cause  Cause
	Pickup entity.PickupKind
}
