package system

import (
	"github.com/solarlune/resolv"

	"github.com/younwookim/kickrun/internal/application/player"
	"github.com/younwookim/kickrun/internal/domain/entity"
)

// resolv tags
const (
	tagEnemy = "enemy"
	tagItem  = "item"
	tagProbe = "probe"
)

// contactCell is the broad-phase cell size in pixels.
const contactCell = 16

// ContactSpace indexes enemies and pickups in a resolv space so the player
// can query what its body and move boxes touch.
// Call Sync once per tick after entities move.
type ContactSpace struct {
	space *resolv.Space
	probe *resolv.Object

	enemies map[*entity.Enemy]*resolv.Object
	items   map[*entity.Pickup]*resolv.Object
}

// NewContactSpace creates an empty index covering the stage.
func NewContactSpace(stage *entity.Stage) *ContactSpace {
	space := resolv.NewSpace(stage.PixelWidth(), stage.PixelHeight(), contactCell, contactCell)
	probe := resolv.NewObject(0, 0, 1, 1, tagProbe)
	space.Add(probe)

	return &ContactSpace{
		space:   space,
		probe:   probe,
		enemies: make(map[*entity.Enemy]*resolv.Object),
		items:   make(map[*entity.Pickup]*resolv.Object),
	}
}

// AddEnemy registers an enemy.
func (c *ContactSpace) AddEnemy(e *entity.Enemy) {
	if _, ok := c.enemies[e]; ok {
		return
	}
	b := e.Bounds()
	obj := resolv.NewObject(b.X, b.Y, b.W, b.H, tagEnemy)
	obj.SetShape(resolv.NewRectangle(0, 0, b.W, b.H))
	obj.Data = e
	c.space.Add(obj)
	c.enemies[e] = obj
}

// AddPickup registers a pickup.
func (c *ContactSpace) AddPickup(p *entity.Pickup) {
	if _, ok := c.items[p]; ok {
		return
	}
	b := p.Bounds()
	obj := resolv.NewObject(b.X, b.Y, b.W, b.H, tagItem)
	obj.SetShape(resolv.NewRectangle(0, 0, b.W, b.H))
	obj.Data = p
	c.space.Add(obj)
	c.items[p] = obj
}

// Sync moves every object to its entity's position and drops dead enemies
// and collected pickups.
func (c *ContactSpace) Sync() {
	for e, obj := range c.enemies {
		if !e.IsAlive() {
			c.space.Remove(obj)
			delete(c.enemies, e)
			continue
		}
		place(obj, e.Bounds())
	}
	for p, obj := range c.items {
		if !p.Active {
			c.space.Remove(obj)
			delete(c.items, p)
			continue
		}
		place(obj, p.Bounds())
	}
}

// Clear removes every enemy and pickup.
func (c *ContactSpace) Clear() {
	for e, obj := range c.enemies {
		c.space.Remove(obj)
		delete(c.enemies, e)
	}
	for p, obj := range c.items {
		c.space.Remove(obj)
		delete(c.items, p)
	}
}

// Len returns the number of indexed enemies and pickups.
func (c *ContactSpace) Len() (enemies, items int) {
	return len(c.enemies), len(c.items)
}

// EnemiesIn returns the living enemies overlapping r.
func (c *ContactSpace) EnemiesIn(r entity.Rect) []player.Enemy {
	var out []player.Enemy
	for _, obj := range c.query(r, tagEnemy) {
		e, ok := obj.Data.(*entity.Enemy)
		if !ok || !e.IsAlive() || !e.Bounds().Overlaps(r) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ItemsIn returns the active pickups overlapping r.
func (c *ContactSpace) ItemsIn(r entity.Rect) []player.Item {
	var out []player.Item
	for _, obj := range c.query(r, tagItem) {
		p, ok := obj.Data.(*entity.Pickup)
		if !ok || !p.Active || !p.Bounds().Overlaps(r) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// query returns the broad-phase candidates sharing a cell with r.
// Candidates still need an exact overlap test.
func (c *ContactSpace) query(r entity.Rect, tag string) []*resolv.Object {
	if r.Empty() {
		return nil
	}
	place(c.probe, r)
	check := c.probe.Check(0, 0, tag)
	if check == nil {
		return nil
	}
	return check.Objects
}

func place(obj *resolv.Object, r entity.Rect) {
	obj.X, obj.Y = r.X, r.Y
	obj.W, obj.H = r.W, r.H
	obj.Update()
}
