// Package player implements the movement-and-combat state machine of the
// player character. A Player owns its rigid body and move hitboxes; terrain,
// entities, lifecycle and time scale are injected collaborators.
//
// Update sets velocities and accelerations only. The caller integrates the
// body afterwards (see system.PhysicsSystem).
package player

import (
	"math"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

// Flags are the capability flags. Each is cleared when a move starts and
// re-armed by its own event.
type Flags struct {
	CanJump         bool
	CanKick         bool
	CanSlide        bool
	CanDropKick     bool
	CanFlip         bool
	CanLaser        bool
	CanDoubleJump   bool
	DoubleJumpReady bool
	CanAttack       bool
	Invincible      bool
}

// Upgrades are the power-ups collected so far.
type Upgrades struct {
	Laser      bool
	DoubleJump bool
	SpeedUp    bool
}

// Player is the player state machine.
type Player struct {
	cfg config.PlayerConfig

	Body     *entity.Body
	Flags    Flags
	Upgrades Upgrades
	HP       float64

	// Facing is -1 (left), +1 (right) or 0 before any horizontal input.
	Facing int

	terrain  Terrain
	entities Entities
	life     Lifecycle
	time     TimeScaler

	clock entity.Clock
	move  Move

	moveEnd     entity.Deadline
	attackDelay entity.Deadline
	rebounded   bool

	jumpHold entity.Deadline
	jumping  bool
	braking  bool

	kickDir int

	dropKickLand    entity.Deadline
	dropKickSign    int
	dropKickBounced bool

	flipT   float64
	flipArc entity.Arc

	laserWindup entity.Deadline

	slow   entity.Deadline
	slowed bool

	iframes entity.Deadline
	hurt    entity.Deadline

	crouching bool
	overCap   bool
	cruising  bool
	pushDir   int

	slideBox entity.Hitbox
	kickBox  entity.Hitbox
	dropBox  entity.Hitbox
	flipBox  entity.Hitbox
	beam     entity.Hitbox

	action Action
	events []Event
}

// New creates a player centered at (x, y) on the given terrain.
func New(cfg *config.PhysicsConfig, terrain Terrain, x, y float64) *Player {
	pc := cfg.Player
	p := &Player{
		cfg:      pc,
		Body:     entity.NewBody(x, y, pc.Size.Width, pc.Size.Height, cfg.Physics.Gravity),
		terrain:  terrain,
		slideBox: entity.NewHitbox(entity.HitboxSlide, hitboxRect(pc.Slide.Box)),
		kickBox:  entity.NewHitbox(entity.HitboxSideKick, hitboxRect(pc.Kick.Box)),
		dropBox:  entity.NewHitbox(entity.HitboxDropKick, hitboxRect(pc.DropKick.Box)),
		flipBox:  entity.NewHitbox(entity.HitboxFlip, hitboxRect(pc.Flip.Box)),
		beam:     entity.NewHitbox(entity.HitboxBeam, entity.HitboxRect{Width: pc.Laser.BeamWidth}),
	}
	p.reset()
	return p
}

// SetEntities sets the enemy and item index.
func (p *Player) SetEntities(e Entities) { p.entities = e }

// SetLifecycle sets the receiver of the death signal.
func (p *Player) SetLifecycle(l Lifecycle) { p.life = l }

// SetTimeScaler sets the world time scale used for bullet time.
func (p *Player) SetTimeScaler(t TimeScaler) { p.time = t }

// Respawn resets all state except collected upgrades and places the
// player at (x, y).
func (p *Player) Respawn(x, y float64) {
	p.Body.X, p.Body.Y = x, y
	p.reset()
}

func (p *Player) reset() {
	b := p.Body
	b.SetVelocity(0, 0)
	b.SetAcceleration(0, 0)
	b.OnFloor, b.OnCeiling = false, false
	b.Resize(p.cfg.Size.Height)

	p.restoreTime()
	p.deactivateBoxes()
	p.move = Idle
	p.HP = p.cfg.Health.MaxHP
	p.Facing = 0
	p.Flags = Flags{
		CanJump:       true,
		CanKick:       true,
		CanSlide:      true,
		CanFlip:       true,
		CanLaser:      p.Upgrades.Laser,
		CanDoubleJump: p.Upgrades.DoubleJump,
		CanAttack:     true,
	}

	p.moveEnd.Clear()
	p.attackDelay.Clear()
	p.jumpHold.Clear()
	p.dropKickLand.Clear()
	p.laserWindup.Clear()
	p.iframes.Clear()
	p.hurt.Clear()
	p.rebounded, p.jumping, p.braking = false, false, false
	p.dropKickBounced = false
	p.crouching, p.overCap, p.cruising = false, false, false
	p.flipT = 0
	p.action = ActionIdle
	p.events = nil
}

// Update advances the state machine by elapsedMs of wall time and returns
// the events of this tick. Steps run in a fixed order; later steps may
// override the velocities set by earlier ones.
func (p *Player) Update(in input.Snapshot, elapsedMs float64) []Event {
	p.events = nil
	if p.move == Dying {
		return nil
	}
	if math.IsNaN(elapsedMs) || elapsedMs < 0 {
		elapsedMs = 0
	}

	p.clock.Advance(elapsedMs)
	now := p.clock.Now()
	onFloor := p.Body.OnFloor
	p.Body.SetAccelerationY(0)

	p.updateHorizontal(in, onFloor, elapsedMs)
	p.updateFacing(in)
	p.crouching = (in.Down(input.Down) && onFloor) || p.move == Sliding
	p.updateJump(in, onFloor, now)
	p.updateSlide(in, onFloor, now)
	p.updateSideKick(in, onFloor, now)
	p.updateLaser(in, onFloor, now)
	p.updateDropKick(in, onFloor, now)
	p.updateFlip(in, onFloor, now, elapsedMs)

	p.resolveRebounds(now)
	p.resolveContacts(now)
	if p.move == Dying {
		return p.events
	}

	p.updatePassive(in, now, elapsedMs)
	return p.events
}

// Move returns the current primary move.
func (p *Player) Move() Move { return p.move }

// Action returns the animation tag chosen by the last Update.
func (p *Player) Action() Action { return p.action }

// FlipX reports whether the sprite should be mirrored (facing left).
func (p *Player) FlipX() bool { return p.Facing < 0 }

// Blink reports whether the sprite is in the hidden phase of the
// invincibility blink.
func (p *Player) Blink() bool {
	if !p.Flags.Invincible {
		return false
	}
	period := float64(p.cfg.Health.BlinkTicks) * entity.TickMs
	if period <= 0 {
		return false
	}
	return int(p.iframes.Remaining(p.clock.Now())/period)%2 == 1
}

// Now returns the player's clock in milliseconds.
func (p *Player) Now() float64 { return p.clock.Now() }

// Slowed reports whether bullet time is active.
func (p *Player) Slowed() bool { return p.slowed }

// Crouching reports whether the player is crouched this tick.
func (p *Player) Crouching() bool { return p.crouching }

// Jumping reports whether the jump boost is active.
func (p *Player) Jumping() bool { return p.jumping }

// FlipProgress returns the flip arc parameter in [0, 1].
func (p *Player) FlipProgress() float64 { return p.flipT }

// Hitboxes returns the active move hitboxes.
func (p *Player) Hitboxes() []entity.Hitbox {
	var out []entity.Hitbox
	for _, h := range p.boxes() {
		if h.Active {
			out = append(out, *h)
		}
	}
	if p.beam.Active {
		out = append(out, p.beam)
	}
	return out
}

// Dead reports whether the player has entered the terminal Dying state.
func (p *Player) Dead() bool { return p.move == Dying }

// Config returns the tuning the player was built with.
func (p *Player) Config() config.PlayerConfig { return p.cfg }

func (p *Player) boxes() []*entity.Hitbox {
	return []*entity.Hitbox{&p.slideBox, &p.kickBox, &p.dropBox, &p.flipBox}
}

// activeBox returns the hitbox of the current attack move, if any.
func (p *Player) activeBox() *entity.Hitbox {
	switch p.move {
	case Sliding:
		return &p.slideBox
	case SideKicking:
		return &p.kickBox
	case DropKicking:
		return &p.dropBox
	case Flipping:
		return &p.flipBox
	default:
		return nil
	}
}

// begin ends the current move and starts m. ticks <= 0 leaves the move
// without a deadline. A laser cut short by another move is spent until
// the next landing.
func (p *Player) begin(m Move, now float64, ticks int) {
	if p.move == Lasering {
		p.Flags.CanLaser = false
	}
	p.endMove()
	p.move = m
	if ticks > 0 {
		p.moveEnd.Arm(now, ticks)
	}
}

// endMove returns to Idle and deactivates every move hitbox.
func (p *Player) endMove() {
	if p.move == Dying {
		return
	}
	p.deactivateBoxes()
	p.move = Idle
	p.moveEnd.Clear()
	p.dropKickLand.Clear()
	p.laserWindup.Clear()
	p.flipT = 0
}

func (p *Player) deactivateBoxes() {
	for _, h := range p.boxes() {
		h.Deactivate()
	}
	p.beam.Deactivate()
}

// startAttack gates the next attack behind the move's attack delay.
func (p *Player) startAttack(now float64, ticks int) {
	p.Flags.CanAttack = false
	p.rebounded = false
	p.attackDelay.Arm(now, ticks)
}

func (p *Player) emit(e Event) {
	if e.X == 0 && e.Y == 0 {
		e.X, e.Y = p.Body.X, p.Body.Y
	}
	if e.Move == Idle {
		e.Move = p.move
	}
	p.events = append(p.events, e)
}

// facingOr returns the facing, or def when the player has not faced yet.
func (p *Player) facingOr(def int) int {
	if p.Facing == 0 {
		return def
	}
	return p.Facing
}

func hitboxRect(r config.Rect) entity.HitboxRect {
	return entity.HitboxRect{OffsetX: r.OffsetX, OffsetY: r.OffsetY, Width: r.Width, Height: r.Height}
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
