package player

import (
	"math"

	"github.com/younwookim/kickrun/internal/application/input"
)

// capEpsilon absorbs float error when the speed lands exactly on the cap.
const capEpsilon = 1e-6

// horizontalInput returns -1, +1 or 0 for the left/right buttons.
func horizontalInput(in input.Snapshot) int {
	left, right := in.Down(input.Left), in.Down(input.Right)
	switch {
	case left && !right:
		return -1
	case right && !left:
		return 1
	default:
		return 0
	}
}

func (p *Player) updateHorizontal(in input.Snapshot, onFloor bool, elapsedMs float64) {
	p.pushDir = horizontalInput(in)
	locked := onFloor && (in.Down(input.Down) || p.move == Sliding)
	ax := 0.0
	if !locked {
		ax = float64(p.pushDir) * p.cfg.Movement.Acceleration
	}
	p.moveX(ax, elapsedMs)
}

// moveX accelerates toward the soft cap. Acceleration is trimmed so one
// tick never carries the speed past the cap. Above the cap it is zeroed
// and the over-cap drag takes over, so only external impulses exceed it.
func (p *Player) moveX(ax, elapsedMs float64) {
	b := p.Body
	p.overCap, p.cruising = false, false
	if ax == 0 {
		b.SetAccelerationX(0)
		return
	}

	dir := float64(sign(ax))
	speed := b.VX * dir
	limit := p.cfg.Movement.SoftMaxX
	switch {
	case speed > limit+capEpsilon:
		p.overCap = true
		b.SetAccelerationX(0)
		return
	case speed >= limit-capEpsilon:
		p.cruising = true
		b.SetAccelerationX(0)
		return
	}

	if dt := elapsedMs / 1000; dt > 0 {
		if room := (limit - speed) / dt; math.Abs(ax) > room {
			ax = dir * room
		}
	}
	b.SetAccelerationX(ax)
}

func (p *Player) updateFacing(in input.Snapshot) {
	if p.move.attacking() || p.slowed {
		return
	}
	if d := horizontalInput(in); d != 0 {
		p.Facing = d
	}
}

func (p *Player) updateJump(in input.Snapshot, onFloor bool, now float64) {
	jc := p.cfg.Jump
	if in.JustPressed(input.Jump) && (p.Flags.CanJump || p.Flags.DoubleJumpReady) && !p.jumping {
		if p.Flags.CanJump {
			p.Flags.CanJump = false
		} else {
			p.Flags.DoubleJumpReady = false
		}
		p.jumping = true
		p.braking = false
		p.Body.SetVelocityY(jc.Velocity)
		p.jumpHold.Arm(now, jc.HoldTicks)
		p.dropKickBounced = false
		if p.move == Sliding {
			p.endMove()
			p.crouching = in.Down(input.Down) && onFloor
		}
	}

	if p.jumping {
		if in.Down(input.Jump) && p.jumpHold.Pending(now) {
			p.Body.SetAccelerationY(jc.HoldAccel)
			return
		}
		p.endJump(onFloor)
	}

	if p.braking {
		if p.Body.VY < 0 {
			p.Body.SetAccelerationY(jc.BrakeAccel)
		} else {
			p.braking = false
		}
	}
}

// endJump stops the hold boost and arms the double jump when available.
func (p *Player) endJump(onFloor bool) {
	p.jumping = false
	p.jumpHold.Clear()
	p.braking = p.Body.VY < 0
	if p.Flags.CanDoubleJump && !onFloor {
		p.Flags.CanDoubleJump = false
		p.Flags.DoubleJumpReady = true
	}
}
