package player

import (
	"testing"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

const tick = entity.TickMs

// openStage returns an empty 20x15 stage of 16px tiles.
func openStage() *entity.Stage {
	return entity.NewStage(20, 15, 16)
}

func newTestPlayer(t *testing.T, stage *entity.Stage, x, y float64) *Player {
	t.Helper()
	return New(config.DefaultPhysics(), stage, x, y)
}

// standOn places the player's feet on floorY.
func standOn(p *Player, floorY float64) {
	p.Body.Y = floorY - p.Body.HalfH
	p.Body.VY = 0
	p.Body.OnFloor = true
}

// harness integrates the body against a flat floor plane, standing in for
// the physics system.
type harness struct {
	p      *Player
	floorY float64
}

func (h *harness) step(in input.Snapshot, ms float64) []Event {
	events := h.p.Update(in, ms)
	h.integrate(ms)
	return events
}

func (h *harness) integrate(ms float64) {
	b := h.p.Body
	mc := h.p.cfg.Movement
	b.Accelerate(ms)
	b.ClampVelocity(mc.HardMaxX, mc.HardMaxY)
	dt := ms / 1000
	b.X += b.VX * dt
	b.Y += b.VY * dt
	b.OnFloor = false
	if b.Feet() >= h.floorY && b.VY >= 0 {
		b.Y = h.floorY - b.HalfH
		b.VY = 0
		b.OnFloor = true
	}
}

type fakeLife struct {
	deaths int
	plane  float64
}

func (f *fakeLife) Die()                 { f.deaths++ }
func (f *fakeLife) DeathPlaneY() float64 { return f.plane }

type fakeClock struct {
	scales []float64

	// now, when set, stamps the last slow-down in slowedAt.
	now      func() float64
	slowedAt float64
}

func (f *fakeClock) SetTimeScale(s float64) {
	f.scales = append(f.scales, s)
	if s != 1 && f.now != nil {
		f.slowedAt = f.now()
	}
}

func (f *fakeClock) current() float64 {
	if len(f.scales) == 0 {
		return 1
	}
	return f.scales[len(f.scales)-1]
}

type fakeEnemy struct {
	rect    entity.Rect
	hostile bool
	damage  float64
	hits    int
	vx, vy  float64
}

func (e *fakeEnemy) Bounds() entity.Rect { return e.rect }
func (e *fakeEnemy) Hostile() bool       { return e.hostile }
func (e *fakeEnemy) Damage() float64     { return e.damage }
func (e *fakeEnemy) Hit(vx, vy float64) {
	e.hits++
	e.vx, e.vy = vx, vy
	e.hostile = false
}

type fakeItem struct {
	kind      entity.PickupKind
	rect      entity.Rect
	amount    float64
	destroyed bool
}

func (i *fakeItem) Kind() entity.PickupKind { return i.kind }
func (i *fakeItem) Bounds() entity.Rect     { return i.rect }
func (i *fakeItem) Amount() float64         { return i.amount }
func (i *fakeItem) Destroy()                { i.destroyed = true }

type fakeEntities struct {
	enemies []*fakeEnemy
	items   []*fakeItem
}

func (f *fakeEntities) EnemiesIn(r entity.Rect) []Enemy {
	var out []Enemy
	for _, e := range f.enemies {
		if e.rect.Overlaps(r) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEntities) ItemsIn(r entity.Rect) []Item {
	var out []Item
	for _, i := range f.items {
		if !i.destroyed && i.rect.Overlaps(r) {
			out = append(out, i)
		}
	}
	return out
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// state is the observable state compared by the idempotence tests.
type state struct {
	Body     entity.Body
	Flags    Flags
	HP       float64
	Facing   int
	Move     Move
	Action   Action
	FlipT    float64
	Crouch   bool
	Jumping  bool
	Slowed   bool
	Hitboxes []entity.Hitbox
}

func capture(p *Player) state {
	return state{
		Body:     *p.Body,
		Flags:    p.Flags,
		HP:       p.HP,
		Facing:   p.Facing,
		Move:     p.move,
		Action:   p.action,
		FlipT:    p.flipT,
		Crouch:   p.crouching,
		Jumping:  p.jumping,
		Slowed:   p.slowed,
		Hitboxes: p.Hitboxes(),
	}
}
