package player

import (
	"math"

	"github.com/younwookim/kickrun/internal/domain/entity"
)

// resolveContacts handles move boxes striking enemies, the body touching
// hazards and hostile enemies, and item pickups.
func (p *Player) resolveContacts(now float64) {
	p.strikeEnemies(now)
	p.touchHazards()
	if p.move == Dying || p.entities == nil {
		return
	}

	body := p.Body.Bounds()
	for _, e := range p.entities.EnemiesIn(body) {
		if !e.Hostile() {
			continue
		}
		if p.hurtFrom(CauseEnemy, e.Damage(), e.Bounds().CenterX()) {
			break
		}
	}
	if p.move == Dying {
		return
	}
	for _, it := range p.entities.ItemsIn(body) {
		p.collect(it)
	}
}

// strikeEnemies hits every enemy under an active move box or the beam.
// Kicks connecting with a hostile enemy rebound like a wall.
func (p *Player) strikeEnemies(now float64) {
	if p.entities == nil {
		return
	}
	kc := p.cfg.Kick

	if p.beam.Active {
		for _, e := range p.entities.EnemiesIn(p.beam.Rect) {
			if e.Hostile() {
				e.Hit(0, -kc.EnemyHitVY)
				p.emit(Event{Kind: EventEnemyHit, X: e.Bounds().CenterX(), Y: e.Bounds().CenterY()})
			}
		}
	}

	box := p.activeBox()
	if box == nil || !box.Active {
		return
	}
	dir := p.kickDirection()
	for _, e := range p.entities.EnemiesIn(box.Rect) {
		if !e.Hostile() {
			continue
		}
		e.Hit(float64(dir)*kc.EnemyHitVX, kc.EnemyHitVY)
		p.emit(Event{Kind: EventEnemyHit, X: e.Bounds().CenterX(), Y: e.Bounds().CenterY()})
		if p.move != Sliding {
			p.rebound(dir, now)
			return
		}
	}
}

// touchHazards hurts the player on spike and heat tiles touching the body.
// The probe is one pixel larger than the body since collision leaves the
// body flush against tiles.
func (p *Player) touchHazards() {
	hc := p.cfg.Health
	r := p.Body.Bounds()
	r = entity.Rect{X: r.X - 1, Y: r.Y - 1, W: r.W + 2, H: r.H + 2}

	for _, pt := range p.terrain.TilesIn(r) {
		var cause Cause
		var damage float64
		switch pt.Type {
		case entity.TileSpike:
			cause, damage = CauseSpike, hc.SpikeDamage
		case entity.TileHeat:
			cause, damage = CauseHeat, hc.HeatDamage
		default:
			continue
		}
		if pt.Damage > 0 {
			damage = float64(pt.Damage)
		}
		if p.hurtFrom(cause, damage, pt.Bounds.CenterX()) {
			return
		}
	}
}

func (p *Player) collect(it Item) {
	kind := it.Kind()
	switch kind {
	case entity.PickupHealth:
		p.HP = math.Min(p.cfg.Health.MaxHP, p.HP+it.Amount())
	case entity.PickupLaser:
		p.Upgrades.Laser = true
		p.Flags.CanLaser = true
	case entity.PickupDoubleJump:
		p.Upgrades.DoubleJump = true
		p.Flags.CanDoubleJump = true
	case entity.PickupSpeedUp:
		p.Upgrades.SpeedUp = true
	}
	it.Destroy()
	b := it.Bounds()
	p.emit(Event{Kind: EventPickup, Pickup: kind, X: b.CenterX(), Y: b.CenterY()})
}

// Hurt applies damage with knockback away from the facing direction.
// It is ignored while invincible or dying and reports whether it landed.
func (p *Player) Hurt(cause Cause, damage float64) bool {
	return p.hurtFrom(cause, damage, p.Body.X)
}

// hurtFrom is Hurt with a source position used when the player has no
// facing yet.
func (p *Player) hurtFrom(cause Cause, damage, sourceX float64) bool {
	if p.move == Dying || p.Flags.Invincible {
		return false
	}
	if math.IsNaN(damage) || damage < 0 {
		damage = 0
	}
	hc := p.cfg.Health
	now := p.clock.Now()
	b := p.Body

	dir := -p.Facing
	if dir == 0 {
		dir = sign(b.X - sourceX)
		if dir == 0 {
			dir = -1
		}
	}
	vy := -hc.KnockY
	if b.VY > hc.FallThreshold {
		vy = hc.KnockY
	}
	b.SetVelocity(float64(dir)*hc.KnockX, vy)

	p.HP = clampHP(p.HP-damage, hc.MaxHP)
	p.cancelMoves()
	p.Flags.Invincible = true
	p.iframes.Arm(now, hc.IFrameTicks)
	p.hurt.Arm(now, hc.HurtTicks)
	p.emit(Event{Kind: EventHurt, Cause: cause})

	if p.HP <= 0 {
		p.die()
	}
	return true
}

// cancelMoves clears every move and boost. A laser cancelled this way is
// spent until the next landing.
func (p *Player) cancelMoves() {
	if p.move == Lasering {
		p.Flags.CanLaser = false
	}
	p.endMove()
	p.jumping = false
	p.braking = false
	p.jumpHold.Clear()
	p.restoreTime()
}

// die enters the terminal Dying state and signals the lifecycle once.
func (p *Player) die() {
	if p.move == Dying {
		return
	}
	p.cancelMoves()
	p.move = Dying
	p.HP = 0
	p.action = ActionDead
	p.Body.SetAcceleration(0, 0)
	p.Body.ClampVelocity(p.cfg.Movement.HardMaxX, p.cfg.Movement.HardMaxY)
	p.emit(Event{Kind: EventDeath, Move: Dying})
	if p.life != nil {
		p.life.Die()
	}
}

func clampHP(hp, limit float64) float64 {
	if math.IsNaN(hp) || hp < 0 {
		return 0
	}
	if hp > limit {
		return limit
	}
	return hp
}
