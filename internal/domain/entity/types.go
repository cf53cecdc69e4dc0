package entity

import "math"

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileSpike
	TileHeat
	TilePlatform
	TileSoft
	TileHard
)

// String returns the string representation of the tile type
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileSpike:
		return "spike"
	case TileHeat:
		return "heat"
	case TilePlatform:
		return "platform"
	case TileSoft:
		return "soft"
	case TileHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseTileType maps a config name to a TileType.
func ParseTileType(name string) (TileType, bool) {
	for t := TileEmpty; t <= TileHard; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return TileEmpty, false
}

// Breakable describes whether a tile can be destroyed by kicks.
type Breakable int

const (
	Unbreakable Breakable = iota
	BreakableSoft
	BreakableHard
)

// Tile represents a single tile in the stage.
// Face flags mark edges exposed to a non-solid neighbour.
type Tile struct {
	Type      TileType
	Solid     bool
	Semisolid bool
	Breakable Breakable
	Damage    int

	FaceLeft  bool
	FaceRight bool
	FaceUp    bool
	FaceDown  bool
}

// NewTile creates a tile with the default properties of its type.
func NewTile(t TileType) Tile {
	switch t {
	case TileWall:
		return Tile{Type: t, Solid: true}
	case TileSpike:
		return Tile{Type: t, Solid: true}
	case TileHeat:
		return Tile{Type: t, Solid: true}
	case TilePlatform:
		return Tile{Type: t, Solid: true, Semisolid: true}
	case TileSoft:
		return Tile{Type: t, Solid: true, Breakable: BreakableSoft}
	case TileHard:
		return Tile{Type: t, Solid: true, Breakable: BreakableHard}
	default:
		return Tile{Type: TileEmpty}
	}
}

// Kickable reports whether a kick can rebound off this tile.
func (t Tile) Kickable() bool {
	return t.Solid && !t.Semisolid && t.Breakable != BreakableSoft
}

// PlacedTile is a tile together with its grid and world position.
type PlacedTile struct {
	Tile
	TX, TY int
	Bounds Rect
}

// Stage represents the current stage's tile data
type Stage struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   float64
	SpawnY   float64

	// DeathMargin is how far below the bottom row the death plane sits.
	DeathMargin float64
}

// NewStage creates an empty stage of w x h tiles.
func NewStage(w, h, tileSize int) *Stage {
	tiles := make([][]Tile, h)
	for y := range tiles {
		tiles[y] = make([]Tile, w)
	}
	return &Stage{Width: w, Height: h, TileSize: tileSize, Tiles: tiles, DeathMargin: float64(tileSize) * 2}
}

// Clone returns a deep copy, so a stage can be restored after tiles are
// broken.
func (s *Stage) Clone() *Stage {
	c := *s
	c.Tiles = make([][]Tile, len(s.Tiles))
	for y, row := range s.Tiles {
		c.Tiles[y] = append([]Tile(nil), row...)
	}
	return &c
}

// GetTile returns the tile at the given tile coordinates.
// Columns outside the stage and rows above it are walls; rows below are
// open so bodies can fall out of the world.
func (s *Stage) GetTile(tx, ty int) Tile {
	if ty >= s.Height {
		return Tile{Type: TileEmpty}
	}
	if tx < 0 || tx >= s.Width || ty < 0 {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// SetTile places a tile and refreshes the faces around it.
func (s *Stage) SetTile(tx, ty int, t Tile) {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return
	}
	s.Tiles[ty][tx] = t
	s.refreshFaces(tx-1, ty-1, tx+1, ty+1)
}

// RemoveTile clears a tile, used when a breakable tile is kicked.
func (s *Stage) RemoveTile(tx, ty int) {
	s.SetTile(tx, ty, Tile{Type: TileEmpty})
}

// TileCoords converts world pixels to tile coordinates.
func (s *Stage) TileCoords(px, py float64) (int, int) {
	ts := float64(s.tileSize())
	return int(math.Floor(px / ts)), int(math.Floor(py / ts))
}

// TileBounds returns the world rect of a tile cell.
func (s *Stage) TileBounds(tx, ty int) Rect {
	ts := float64(s.tileSize())
	return Rect{X: float64(tx) * ts, Y: float64(ty) * ts, W: ts, H: ts}
}

// GetTileAtPixel returns the tile at the given pixel coordinates
func (s *Stage) GetTileAtPixel(px, py float64) Tile {
	tx, ty := s.TileCoords(px, py)
	return s.GetTile(tx, ty)
}

// IsSolidAt checks if the tile at pixel coordinates is solid
func (s *Stage) IsSolidAt(px, py float64) bool {
	return s.GetTileAtPixel(px, py).Solid
}

// TileAt returns the tile under a world point and its bounds.
// ok is false for empty cells.
func (s *Stage) TileAt(px, py float64) (Tile, Rect, bool) {
	tx, ty := s.TileCoords(px, py)
	t := s.GetTile(tx, ty)
	return t, s.TileBounds(tx, ty), t.Type != TileEmpty
}

// TilesIn returns every non-empty tile overlapping r.
func (s *Stage) TilesIn(r Rect) []PlacedTile {
	if r.Empty() {
		return nil
	}
	startTX, startTY := s.TileCoords(r.Left(), r.Top())
	endTX, endTY := s.TileCoords(math.Nextafter(r.Right(), math.Inf(-1)), math.Nextafter(r.Bottom(), math.Inf(-1)))

	var out []PlacedTile
	for ty := startTY; ty <= endTY; ty++ {
		for tx := startTX; tx <= endTX; tx++ {
			t := s.GetTile(tx, ty)
			if t.Type == TileEmpty {
				continue
			}
			out = append(out, PlacedTile{Tile: t, TX: tx, TY: ty, Bounds: s.TileBounds(tx, ty)})
		}
	}
	return out
}

// IsSolidRect checks if any solid tile overlaps the rect.
// Semisolid tiles are ignored unless includeSemisolid is set.
func (s *Stage) IsSolidRect(r Rect, includeSemisolid bool) bool {
	for _, pt := range s.TilesIn(r) {
		if !pt.Solid {
			continue
		}
		if pt.Semisolid && !includeSemisolid {
			continue
		}
		return true
	}
	return false
}

// DeathPlaneY returns the world Y below which the player dies.
func (s *Stage) DeathPlaneY() float64 {
	return float64(s.Height*s.tileSize()) + s.DeathMargin
}

// PixelWidth returns the stage width in pixels.
func (s *Stage) PixelWidth() int { return s.Width * s.tileSize() }

// PixelHeight returns the stage height in pixels.
func (s *Stage) PixelHeight() int { return s.Height * s.tileSize() }

// CalculateFaces recomputes face flags for every tile.
func (s *Stage) CalculateFaces() {
	s.refreshFaces(0, 0, s.Width-1, s.Height-1)
}

func (s *Stage) refreshFaces(x0, y0, x1, y1 int) {
	for ty := max(y0, 0); ty <= min(y1, s.Height-1); ty++ {
		for tx := max(x0, 0); tx <= min(x1, s.Width-1); tx++ {
			t := &s.Tiles[ty][tx]
			if !t.Solid {
				t.FaceLeft, t.FaceRight, t.FaceUp, t.FaceDown = false, false, false, false
				continue
			}
			t.FaceLeft = !s.blocks(tx-1, ty)
			t.FaceRight = !s.blocks(tx+1, ty)
			t.FaceUp = !s.blocks(tx, ty-1)
			t.FaceDown = !s.blocks(tx, ty+1)
		}
	}
}

// blocks reports whether a neighbour cell hides a face. Only in-stage solid,
// non-semisolid tiles do; the stage border never hides faces.
func (s *Stage) blocks(tx, ty int) bool {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return false
	}
	t := s.Tiles[ty][tx]
	return t.Solid && !t.Semisolid
}

func (s *Stage) tileSize() int {
	if s.TileSize <= 0 {
		return 16 // fallback
	}
	return s.TileSize
}
