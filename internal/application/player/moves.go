package player

import (
	"math"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/domain/entity"
)

func (p *Player) updateSlide(in input.Snapshot, onFloor bool, now float64) {
	sc := p.cfg.Slide
	down := in.Down(input.Down)
	aboutToDropKick := down && p.Flags.CanDropKick

	if in.JustPressed(input.Attack) && p.Flags.CanAttack && p.Flags.CanSlide &&
		p.move != Sliding && p.move != DropKicking && p.Facing != 0 &&
		((down && !onFloor) || (!aboutToDropKick && onFloor)) {
		p.begin(Sliding, now, sc.Ticks)
		p.startAttack(now, sc.AttackDelayTick)
		p.Flags.CanSlide = false

		b := p.Body
		dir := float64(p.Facing)
		if b.VX*dir < sc.Speed {
			b.SetVelocityX(dir * sc.Speed)
		}
		if onFloor {
			b.SetVelocityY(sc.HopVY)
		} else {
			b.SetVelocityY(sc.DiveVY)
		}
		p.slideBox.Activate(b, p.Facing)
	}

	if p.move != Sliding {
		return
	}
	if p.moveEnd.Passed(now) {
		p.endMove()
		return
	}
	p.crouching = true
	p.slideBox.Follow(p.Body, p.Facing)
}

func (p *Player) updateSideKick(in input.Snapshot, onFloor bool, now float64) {
	kc := p.cfg.Kick
	if in.JustPressed(input.Attack) && p.Flags.CanAttack && p.Flags.CanKick && !onFloor &&
		!in.Down(input.Up) && !in.Down(input.Down) && p.move != Sliding {
		p.begin(SideKicking, now, kc.Ticks)
		p.startAttack(now, kc.AttackDelayTick)
		p.Flags.CanKick = false
		p.kickDir = p.facingOr(1)
		p.kickBox.Activate(p.Body, p.kickDir)
	}

	if p.move != SideKicking {
		return
	}
	if p.moveEnd.Passed(now) || onFloor {
		p.endMove()
		return
	}
	p.kickBox.Follow(p.Body, p.kickDir)
}

func (p *Player) updateLaser(in input.Snapshot, onFloor bool, now float64) {
	if !p.Upgrades.Laser {
		return
	}
	lc := p.cfg.Laser
	holding := in.Down(input.Down) && !onFloor && p.Flags.CanLaser

	if p.move == Idle && holding {
		p.begin(Lasering, now, lc.WindupTicks+lc.SustainTicks)
		p.laserWindup.Arm(now, lc.WindupTicks)
	}

	if p.move != Lasering {
		return
	}
	if !holding || p.moveEnd.Passed(now) {
		p.endMove()
		p.Flags.CanLaser = false
		return
	}
	if p.laserWindup.Pending(now) {
		return
	}
	p.fireLaser()
}

// fireLaser applies the hover thrust and extends the beam to the ground.
func (p *Player) fireLaser() {
	lc := p.cfg.Laser
	b := p.Body

	thrust := lc.HoverThrust
	switch {
	case b.VY > 0:
		thrust = lc.FallThrust
	case -b.VY < lc.HoverCeiling:
		thrust = lc.RiseThrust
	}
	b.OverrideAccelerationY(b.GravityY - thrust)

	top := b.Feet()
	length := 0.0
	for i := 0; i < lc.BeamMaxSteps; i++ {
		if t, _, ok := p.terrain.TileAt(b.X, top+length); ok && t.Solid {
			break
		}
		length += lc.BeamStep
	}
	p.beam.Active = true
	p.beam.Rect = entity.Rect{X: b.X - lc.BeamWidth/2, Y: top, W: lc.BeamWidth, H: length}
}

func (p *Player) updateDropKick(in input.Snapshot, onFloor bool, now float64) {
	dc := p.cfg.DropKick
	if in.Down(input.Down) && in.JustPressed(input.Attack) && onFloor && p.move != Sliding &&
		p.Facing != 0 && p.Flags.CanDropKick && p.Flags.CanAttack {
		p.begin(DropKicking, now, dc.Ticks)
		p.startAttack(now, dc.AttackDelayTick)
		p.Flags.CanDropKick = false
		p.dropKickSign = p.Facing
		p.dropKickLand.Arm(now, dc.LandDelayTicks)

		b := p.Body
		b.SetVelocity(b.VX+float64(p.Facing)*dc.BoostX, dc.VY)
		p.dropBox.Activate(b, p.dropKickSign)
	}

	if p.move != DropKicking {
		return
	}
	if p.moveEnd.Passed(now) || (onFloor && p.dropKickLand.Passed(now)) {
		p.endMove()
		return
	}
	p.dropBox.Follow(p.Body, p.dropKickSign)
}

func (p *Player) updateFlip(in input.Snapshot, onFloor bool, now, elapsedMs float64) {
	fc := p.cfg.Flip
	if in.Down(input.Up) && in.JustPressed(input.Attack) && !in.Down(input.Down) && !onFloor &&
		p.Flags.CanKick && p.Flags.CanFlip && p.move != Sliding && p.Flags.CanAttack {
		p.begin(Flipping, now, 0)
		p.startAttack(now, fc.AttackDelayTick)
		p.Flags.CanKick = false
		p.Flags.CanFlip = false
		p.flipT = 0
		p.flipArc = entity.Arc{RadiusX: fc.RadiusX, RadiusY: fc.RadiusY, Dir: p.facingOr(1)}
		p.flipBox.Active = true
		p.placeFlipBox()
		return
	}

	if p.move != Flipping {
		return
	}
	p.flipT = math.Min(1, p.flipT+fc.Step*elapsedMs/entity.TickMs)
	if p.flipT >= 1 || onFloor {
		p.endMove()
		return
	}
	p.placeFlipBox()
}

func (p *Player) placeFlipBox() {
	dx, dy := p.flipArc.Point(p.flipT)
	p.flipBox.PlaceAt(p.Body.X+dx, p.Body.Y+dy)
}

// flipSide returns which side of the body the flip box is on.
func (p *Player) flipSide() int {
	dx, _ := p.flipArc.Point(p.flipT)
	if s := sign(math.Round(dx*1e6) / 1e6); s != 0 {
		return s
	}
	return p.flipArc.Dir
}
