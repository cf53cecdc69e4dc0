// Package tilemap loads stages drawn in the Tiled editor.
//
// A level has a tile layer named "collision" whose tileset tiles carry a
// "type" property (wall, platform, spike, heat, soft, hard) and an optional
// int "damage". Tiles without a type are walls. Object groups:
//
//	PlayerSpawn  first object is the spawn point
//	EnemySpawn   "enemyType" string, optional "facingRight" bool
//	Pickups      "kind" string (falls back to the object class)
package tilemap

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

// Layer and object group names.
const (
	CollisionLayer = "collision"
	PlayerSpawn    = "PlayerSpawn"
	EnemySpawn     = "EnemySpawn"
	Pickups        = "Pickups"
)

// Level is a loaded TMX map: the tile stage plus its spawn records.
type Level struct {
	Name    string
	Stage   *entity.Stage
	Enemies []config.EnemySpawnConfig
	Pickups []config.PickupSpawnConfig
}

// Load parses a TMX file from fsys.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("TMX %s: tiles must be square, got %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	stage, err := buildStage(levelMap)
	if err != nil {
		return nil, fmt.Errorf("TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name:  strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Stage: stage,
	}
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case PlayerSpawn:
			if len(og.Objects) > 0 {
				stage.SpawnX = og.Objects[0].X
				stage.SpawnY = og.Objects[0].Y
			}
		case EnemySpawn:
			for _, o := range og.Objects {
				enemyType := o.Properties.GetString("enemyType")
				if enemyType == "" {
					return nil, fmt.Errorf("TMX %s: enemy object %d has no enemyType", tmxPath, o.ID)
				}
				level.Enemies = append(level.Enemies, config.EnemySpawnConfig{
					Type:        enemyType,
					X:           o.X,
					Y:           o.Y,
					FacingRight: o.Properties.GetBool("facingRight"),
				})
			}
		case Pickups:
			for _, o := range og.Objects {
				kind := o.Properties.GetString("kind")
				if kind == "" {
					kind = o.Class
				}
				level.Pickups = append(level.Pickups, config.PickupSpawnConfig{Type: kind, X: o.X, Y: o.Y})
			}
		}
	}

	// Spawn order follows the map left to right.
	sort.SliceStable(level.Enemies, func(i, j int) bool { return level.Enemies[i].X < level.Enemies[j].X })
	sort.SliceStable(level.Pickups, func(i, j int) bool { return level.Pickups[i].X < level.Pickups[j].X })

	return level, nil
}

// LoadAll loads every .tmx file in dir, keyed by file stem, plus the
// sorted names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		level, err := Load(fsys, p)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}
	sort.Strings(names)
	return levels, names, nil
}

func buildStage(levelMap *tiled.Map) (*entity.Stage, error) {
	var layer *tiled.Layer
	for _, l := range levelMap.Layers {
		if l.Name == CollisionLayer {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("missing %q tile layer", CollisionLayer)
	}

	stage := entity.NewStage(levelMap.Width, levelMap.Height, levelMap.TileWidth)
	for y := 0; y < levelMap.Height; y++ {
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				continue
			}
			t, err := tileFor(tile)
			if err != nil {
				return nil, fmt.Errorf("tile (%d,%d): %w", x, y, err)
			}
			stage.Tiles[y][x] = t
		}
	}
	stage.CalculateFaces()
	return stage, nil
}

// tileFor reads the tile type and damage from the tileset properties.
func tileFor(lt *tiled.LayerTile) (entity.Tile, error) {
	if lt.Tileset == nil {
		return entity.NewTile(entity.TileWall), nil
	}
	tt, err := lt.Tileset.GetTilesetTile(lt.ID)
	if err != nil {
		// Tiles without their own entry have no properties.
		return entity.NewTile(entity.TileWall), nil
	}

	name := tt.Properties.GetString("type")
	if name == "" {
		return entity.NewTile(entity.TileWall), nil
	}
	kind, ok := entity.ParseTileType(name)
	if !ok {
		return entity.Tile{}, fmt.Errorf("%q: %w", name, config.ErrUnknownTile)
	}
	t := entity.NewTile(kind)
	t.Damage = tt.Properties.GetInt("damage")
	return t, nil
}
