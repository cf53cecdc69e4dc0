package player

import "github.com/younwookim/kickrun/internal/domain/entity"

// Terrain answers tile queries and accepts tile removal for breakables.
// *entity.Stage implements it.
type Terrain interface {
	TileAt(px, py float64) (entity.Tile, entity.Rect, bool)
	TilesIn(r entity.Rect) []entity.PlacedTile
	RemoveTile(tx, ty int)
}

// Enemy is a hostile entity the player can kick or be hurt by.
type Enemy interface {
	Bounds() entity.Rect
	Hostile() bool
	Hit(vx, vy float64)
	Damage() float64
}

// Item is a pickup the player collects by touching it.
type Item interface {
	Kind() entity.PickupKind
	Bounds() entity.Rect
	Amount() float64
	Destroy()
}

// Entities is the per-tick overlap index for enemies and items.
type Entities interface {
	EnemiesIn(r entity.Rect) []Enemy
	ItemsIn(r entity.Rect) []Item
}

// Lifecycle receives the death signal and exposes the death plane.
type Lifecycle interface {
	Die()
	DeathPlaneY() float64
}

// TimeScaler scales the world step for bullet time.
type TimeScaler interface {
	SetTimeScale(scale float64)
}
