package system

import (
	"fmt"

	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity.
// Unmapped characters are empty; a mapping naming an unknown tile type
// fails with config.ErrUnknownTile.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	tileSize := cfg.Size.TileSize
	if tileSize <= 0 {
		return nil, fmt.Errorf("stage %s: invalid tile size %d", cfg.ID, tileSize)
	}
	tileWidth := cfg.Size.Width / tileSize
	tileHeight := len(cfg.Layers.Collision)

	mapping := make(map[rune]entity.Tile, len(cfg.TileMapping))
	for char, m := range cfg.TileMapping {
		runes := []rune(char)
		if len(runes) != 1 {
			return nil, fmt.Errorf("stage %s: mapping key %q must be one character", cfg.ID, char)
		}
		tileType, ok := entity.ParseTileType(m.Type)
		if !ok {
			return nil, fmt.Errorf("stage %s: %q maps to %q: %w", cfg.ID, char, m.Type, config.ErrUnknownTile)
		}
		tile := entity.NewTile(tileType)
		tile.Damage = m.Damage
		mapping[runes[0]] = tile
	}

	stage := entity.NewStage(tileWidth, tileHeight, tileSize)
	for y, row := range cfg.Layers.Collision {
		x := 0
		for _, char := range row {
			if x >= tileWidth {
				break
			}
			if tile, ok := mapping[char]; ok {
				stage.Tiles[y][x] = tile
			}
			x++
		}
	}
	stage.CalculateFaces()
	stage.SpawnX = cfg.PlayerSpawn.X
	stage.SpawnY = cfg.PlayerSpawn.Y

	return stage, nil
}

// SpawnEntities spawns enemies and pickups from spawn records, whichever
// loader produced them.
func SpawnEntities(sys *EnemySystem, enemies []config.EnemySpawnConfig, pickups []config.PickupSpawnConfig) error {
	for _, e := range enemies {
		if _, err := sys.SpawnEnemy(e.Type, e.X, e.Y, e.FacingRight); err != nil {
			return err
		}
	}
	for _, p := range pickups {
		kind, ok := entity.ParsePickupKind(p.Type)
		if !ok {
			return fmt.Errorf("unknown pickup type %q", p.Type)
		}
		sys.SpawnPickup(kind, p.X, p.Y)
	}
	return nil
}
