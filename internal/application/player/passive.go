package player

import (
	"math"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/domain/entity"
)

// updatePassive recomputes derived state every tick regardless of the
// active move.
func (p *Player) updatePassive(in input.Snapshot, now, elapsedMs float64) {
	hc := p.cfg.Health
	mc := p.cfg.Movement
	b := p.Body

	p.HP = clampHP(p.HP+hc.RegenPerTick*elapsedMs/entity.TickMs, hc.MaxHP)
	if p.HP <= 0 {
		p.die()
		return
	}

	if p.crouching {
		b.Resize(p.cfg.Size.CrouchHeight)
	} else {
		b.Resize(p.cfg.Size.Height)
	}

	switch {
	case p.overCap:
		b.DragX = mc.OverCapDrag
	case p.cruising:
		b.DragX = 0
	case !b.OnFloor:
		b.DragX = mc.AirDrag
	case p.move == Sliding, p.Upgrades.SpeedUp && p.Flags.CanKick:
		b.DragX = mc.GroundDrag
	default:
		b.DragX = mc.GroundFastDrag
	}

	p.updateLanding()
	p.Flags.CanDropKick = math.Abs(b.VX) >= mc.SoftMaxX*p.cfg.DropKick.MinSpeedFactor
	b.ClampVelocity(mc.HardMaxX, mc.HardMaxY)

	if p.slowed && (p.slow.Passed(now) || p.grounded()) {
		p.restoreTime()
	}

	if !p.Flags.CanAttack && !in.Down(input.Attack) &&
		(b.OnFloor || p.rebounded || p.attackDelay.Passed(now)) {
		p.Flags.CanAttack = true
		p.rebounded = false
		p.attackDelay.Clear()
	}

	if p.Flags.Invincible && !p.iframes.Pending(now) {
		p.Flags.Invincible = false
		p.iframes.Clear()
	}

	if p.life != nil && b.Bounds().Top() > p.life.DeathPlaneY() {
		p.emit(Event{Kind: EventHurt, Cause: CauseFall})
		p.die()
		return
	}

	p.action = p.selectAction(now)
}

// updateLanding re-arms the landing flags, or takes them away once the
// player has left the ground without jumping.
func (p *Player) updateLanding() {
	b := p.Body
	if p.grounded() {
		p.Flags.CanJump = true
		p.Flags.CanKick = true
		p.Flags.CanSlide = true
		p.Flags.CanFlip = true
		p.Flags.DoubleJumpReady = false
		p.Flags.CanLaser = p.Upgrades.Laser
		p.Flags.CanDoubleJump = p.Upgrades.DoubleJump
		p.dropKickBounced = false
		return
	}
	if !b.OnFloor && p.Flags.CanJump {
		p.Flags.CanJump = false
		if p.Flags.CanDoubleJump {
			p.Flags.CanDoubleJump = false
			p.Flags.DoubleJumpReady = true
		}
	}
}

// grounded reports whether the body rests on the floor. A body that has
// just been launched upward still touches the floor this tick.
func (p *Player) grounded() bool {
	return p.Body.OnFloor && p.Body.VY >= 0
}

func (p *Player) selectAction(now float64) Action {
	b := p.Body
	mc := p.cfg.Movement
	speed := math.Abs(b.VX)

	switch {
	case p.move == Dying:
		return ActionDead
	case p.hurt.Pending(now):
		return ActionHurt
	case p.move == Sliding:
		return ActionSlide
	case p.move == SideKicking:
		return ActionSideKick
	case p.move == DropKicking:
		return ActionDropKick
	case p.move == Flipping:
		return FlipAction(p.flipT)
	case p.move == Lasering && p.laserWindup.Pending(now):
		return ActionCharge
	case p.move == Lasering:
		return ActionLasering
	case p.crouching:
		return ActionCrouch
	case !b.OnFloor && b.VY < 0:
		return ActionJump
	case !b.OnFloor:
		return ActionFall
	case p.pushDir != 0 && p.pushDir != sign(b.VX) && speed > mc.TurnSpeed:
		return ActionTurn
	case speed > mc.SoftMaxX+capEpsilon:
		return ActionFast
	case speed > mc.MoveSpeed:
		return ActionMove
	default:
		return ActionIdle
	}
}
