package player

import (
	"math"

	"github.com/younwookim/kickrun/internal/domain/entity"
)

// resolveRebounds tests the active move box against the terrain. Soft
// breakables shatter on contact; kickable faces bounce the player.
func (p *Player) resolveRebounds(now float64) {
	box := p.activeBox()
	if box == nil || !box.Active {
		return
	}

	for _, pt := range p.terrain.TilesIn(box.Rect) {
		if pt.Breakable == entity.BreakableSoft {
			p.breakTile(pt)
			continue
		}
		if p.move == Sliding || !pt.Kickable() {
			continue
		}

		dir := p.kickDirection()
		if !crossesFace(box.Rect, pt, dir) {
			continue
		}
		if pt.Breakable == entity.BreakableHard && p.move == DropKicking {
			p.breakTile(pt)
		}
		p.rebound(dir, now)
		return
	}
}

func (p *Player) breakTile(pt entity.PlacedTile) {
	p.terrain.RemoveTile(pt.TX, pt.TY)
	p.emit(Event{
		Kind: EventTileBroken,
		X:    pt.Bounds.CenterX(),
		Y:    pt.Bounds.CenterY(),
		TX:   pt.TX,
		TY:   pt.TY,
	})
}

// kickDirection is the horizontal direction the current move strikes in.
func (p *Player) kickDirection() int {
	switch p.move {
	case SideKicking:
		return p.kickDir
	case DropKicking:
		return p.dropKickSign
	case Flipping:
		return p.flipSide()
	default:
		return p.facingOr(1)
	}
}

// crossesFace reports whether r straddles the tile edge facing the kick.
// Kicking left needs an exposed right face and the box must span the
// tile's right edge; kicking right mirrors that.
func crossesFace(r entity.Rect, pt entity.PlacedTile, dir int) bool {
	tb := pt.Bounds
	if dir < 0 {
		return pt.FaceRight && r.Left() < tb.Right() && tb.Right() < r.Right()
	}
	return pt.FaceLeft && r.Left() < tb.Left() && tb.Left() < r.Right()
}

// rebound bounces the player away from a struck surface. dir is the
// direction of the kick; the player is sent the other way.
func (p *Player) rebound(dir int, now float64) {
	b := p.Body
	away := -float64(dir)
	m := p.move

	switch m {
	case SideKicking:
		kc := p.cfg.Kick
		b.SetVelocityX(away * math.Max(math.Abs(b.VX)*kc.ReboundScale, kc.StandingV))
		b.SetVelocityY(math.Min(b.VY, kc.ReboundVY))
		p.Flags.CanKick = true
		p.Flags.CanFlip = true

	case DropKicking:
		dc := p.cfg.DropKick
		b.SetVelocity(-b.VX/2, dc.ReboundVY)
		if !p.dropKickBounced {
			p.dropKickBounced = true
			p.startSlowMotion(now)
		}

	case Flipping:
		fc := p.cfg.Flip
		tx, ty := p.flipArc.Tangent(p.flipT)
		vx := math.Abs(tx) * fc.ReboundSpeed
		vy := math.Abs(ty) * fc.ReboundSpeed
		if p.flipT < fc.EarlyT {
			vx += fc.EarlyBiasX
		}
		if p.flipT > fc.LateT {
			vy += fc.LateBiasY
		}
		vy = math.Max(vy, fc.MinReboundVY)
		b.SetVelocity(away*vx, -vy)
		p.Flags.CanKick = true
		p.Flags.CanFlip = true

	default:
		return
	}

	p.endMove()
	p.rebounded = true
	p.braking = false
	p.emit(Event{Kind: EventRebound, Move: m})
}

func (p *Player) startSlowMotion(now float64) {
	dc := p.cfg.DropKick
	p.slowed = true
	p.slow.Arm(now, dc.SlowTicks)
	if p.time != nil {
		p.time.SetTimeScale(dc.SlowScale)
	}
}

// restoreTime ends bullet time. Every exit path funnels through here.
func (p *Player) restoreTime() {
	if !p.slowed {
		return
	}
	p.slowed = false
	p.slow.Clear()
	if p.time != nil {
		p.time.SetTimeScale(1)
	}
}
