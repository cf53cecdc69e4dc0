package entity

// Enemy represents a patrolling hostile entity.
// Position is the top-left corner of its box in pixels.
type Enemy struct {
	ID     EntityID
	X, Y   float64
	VX, VY float64
	Active bool

	EnemyType     string
	MaxHealth     int
	Health        int
	ContactDamage float64
	MoveSpeed     float64
	FacingRight   bool

	Width  float64
	Height float64

	// AI
	PatrolStartX   float64
	PatrolDistance float64
	PatrolDir      int
	OnGround       bool

	// HitTimer is the remaining hit stun in milliseconds.
	HitTimer float64
}

// EnemyHitStunMs is how long an enemy stays stunned after a hit.
const EnemyHitStunMs = 400.0

// NewEnemy creates a new enemy
func NewEnemy(id EntityID, x, y float64, enemyType string) *Enemy {
	return &Enemy{
		ID:           id,
		X:            x,
		Y:            y,
		Active:       true,
		EnemyType:    enemyType,
		MaxHealth:    3,
		Health:       3,
		Width:        14,
		Height:       14,
		PatrolStartX: x,
		PatrolDir:    -1,
	}
}

// Bounds returns the enemy box in world coordinates.
func (e *Enemy) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// Hostile reports whether touching the enemy hurts the player.
// Stunned enemies are harmless.
func (e *Enemy) Hostile() bool {
	return e.IsAlive() && e.HitTimer <= 0
}

// Hit applies one point of damage and a knockback velocity.
// Hits during stun are ignored so a single kick lands once.
func (e *Enemy) Hit(vx, vy float64) {
	if !e.IsAlive() || e.HitTimer > 0 {
		return
	}
	e.VX = vx
	e.VY = vy
	e.OnGround = false
	e.TakeDamage(1)
}

// Damage returns the contact damage dealt to the player.
func (e *Enemy) Damage() float64 {
	return e.ContactDamage
}

// TakeDamage applies damage to the enemy
func (e *Enemy) TakeDamage(damage int) bool {
	e.Health -= damage
	e.HitTimer = EnemyHitStunMs
	if e.Health <= 0 {
		e.Health = 0
		e.Active = false
		return true
	}
	return false
}

// IsAlive returns true if enemy is still alive
func (e *Enemy) IsAlive() bool {
	return e.Health > 0 && e.Active
}

// PickupKind identifies what a pickup grants.
type PickupKind int

const (
	PickupHealth PickupKind = iota
	PickupLaser
	PickupDoubleJump
	PickupSpeedUp
	PickupCheckpoint
)

// String returns the string representation of the pickup kind
func (k PickupKind) String() string {
	switch k {
	case PickupHealth:
		return "health"
	case PickupLaser:
		return "laser"
	case PickupDoubleJump:
		return "doublejump"
	case PickupSpeedUp:
		return "speedup"
	case PickupCheckpoint:
		return "checkpoint"
	default:
		return "unknown"
	}
}

// ParsePickupKind maps a config name to a PickupKind.
func ParsePickupKind(name string) (PickupKind, bool) {
	for k := PickupHealth; k <= PickupCheckpoint; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return PickupHealth, false
}

// Pickup is an item the player collects by touching it.
type Pickup struct {
	ID     EntityID
	Type   PickupKind
	X, Y   float64
	W, H   float64
	Active bool
	Value  float64
}

// NewPickup creates an active pickup.
func NewPickup(id EntityID, kind PickupKind, x, y float64) *Pickup {
	return &Pickup{ID: id, Type: kind, X: x, Y: y, W: 12, H: 12, Active: true, Value: 25}
}

// Amount returns how much the pickup restores. Only health uses it.
func (p *Pickup) Amount() float64 { return p.Value }

// Kind returns the pickup kind.
func (p *Pickup) Kind() PickupKind { return p.Type }

// Bounds returns the pickup box.
func (p *Pickup) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Destroy removes the pickup from play. A checkpoint stays where it is but
// can no longer be triggered.
func (p *Pickup) Destroy() {
	p.Active = false
}
