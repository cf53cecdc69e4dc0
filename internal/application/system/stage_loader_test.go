package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

func TestLoadStage(t *testing.T) {
	t.Run("loads basic stage", func(t *testing.T) {
		cfg := &config.StageConfig{
			ID: "box",
			Size: config.StageSizeConfig{
				Width:    48,
				Height:   48,
				TileSize: 16,
			},
			PlayerSpawn: config.PositionConfig{X: 24, Y: 20},
			Layers: config.LayersConfig{
				Collision: []string{
					"###",
					"#.#",
					"###",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall"},
			},
		}

		stage, err := LoadStage(cfg)

		require.NoError(t, err)
		assert.Equal(t, 3, stage.Width)
		assert.Equal(t, 3, stage.Height)
		assert.Equal(t, 16, stage.TileSize)
		assert.Equal(t, 24.0, stage.SpawnX)
		assert.Equal(t, 20.0, stage.SpawnY)
		assert.Equal(t, entity.TileWall, stage.GetTile(0, 0).Type)
		assert.Equal(t, entity.TileEmpty, stage.GetTile(1, 1).Type)
	})

	t.Run("maps every tile type", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{Width: 96, Height: 16, TileSize: 16},
			Layers: config.LayersConfig{
				Collision: []string{"#-^~oH"},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall"},
				"-": {Type: "platform"},
				"^": {Type: "spike", Damage: 25},
				"~": {Type: "heat", Damage: 10},
				"o": {Type: "soft"},
				"H": {Type: "hard"},
			},
		}

		stage, err := LoadStage(cfg)
		require.NoError(t, err)

		want := []entity.TileType{
			entity.TileWall, entity.TilePlatform, entity.TileSpike,
			entity.TileHeat, entity.TileSoft, entity.TileHard,
		}
		for x, tt := range want {
			assert.Equal(t, tt, stage.GetTile(x, 0).Type, "column %d", x)
		}
		assert.True(t, stage.GetTile(1, 0).Semisolid)
		assert.Equal(t, 25, stage.GetTile(2, 0).Damage)
		assert.Equal(t, 10, stage.GetTile(3, 0).Damage)
		assert.Equal(t, entity.BreakableSoft, stage.GetTile(4, 0).Breakable)
		assert.Equal(t, entity.BreakableHard, stage.GetTile(5, 0).Breakable)
	})

	t.Run("computes faces", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{Width: 48, Height: 32, TileSize: 16},
			Layers: config.LayersConfig{
				Collision: []string{
					"...",
					"##.",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{"#": {Type: "wall"}},
		}

		stage, err := LoadStage(cfg)
		require.NoError(t, err)

		left := stage.GetTile(0, 1)
		right := stage.GetTile(1, 1)
		assert.True(t, left.FaceUp)
		assert.False(t, left.FaceRight, "hidden by its neighbour")
		assert.True(t, right.FaceRight)
		assert.False(t, right.FaceLeft)
	})

	t.Run("rows are truncated to the stage width", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:        config.StageSizeConfig{Width: 32, Height: 16, TileSize: 16},
			Layers:      config.LayersConfig{Collision: []string{"####"}},
			TileMapping: map[string]config.TileMappingConfig{"#": {Type: "wall"}},
		}

		stage, err := LoadStage(cfg)
		require.NoError(t, err)
		assert.Equal(t, 2, stage.Width)
		assert.Len(t, stage.Tiles[0], 2)
	})

	t.Run("unknown tile type", func(t *testing.T) {
		cfg := &config.StageConfig{
			ID:          "bad",
			Size:        config.StageSizeConfig{Width: 16, Height: 16, TileSize: 16},
			Layers:      config.LayersConfig{Collision: []string{"?"}},
			TileMapping: map[string]config.TileMappingConfig{"?": {Type: "lava"}},
		}

		_, err := LoadStage(cfg)

		require.ErrorIs(t, err, config.ErrUnknownTile)
		assert.Contains(t, err.Error(), "lava")
	})

	t.Run("invalid tile size", func(t *testing.T) {
		_, err := LoadStage(&config.StageConfig{})
		assert.Error(t, err)
	})

	t.Run("multi-character mapping key", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:        config.StageSizeConfig{Width: 16, Height: 16, TileSize: 16},
			TileMapping: map[string]config.TileMappingConfig{"##": {Type: "wall"}},
		}

		_, err := LoadStage(cfg)
		assert.Error(t, err)
	})
}

func TestSpawnEntities(t *testing.T) {
	gameCfg := testGameConfig()
	stage := entity.NewStage(20, 15, 16)

	t.Run("spawns enemies and pickups", func(t *testing.T) {
		contacts := NewContactSpace(stage)
		enemies := NewEnemySystem(gameCfg, stage, contacts)
		spawns := []config.EnemySpawnConfig{{Type: "slime", X: 100, Y: 50, FacingRight: true}}
		pickups := []config.PickupSpawnConfig{
			{Type: "health", X: 40, Y: 40},
			{Type: "checkpoint", X: 80, Y: 40},
		}

		require.NoError(t, SpawnEntities(enemies, spawns, pickups))

		require.Len(t, enemies.Enemies(), 1)
		assert.Equal(t, 1, enemies.Enemies()[0].PatrolDir)
		require.Len(t, enemies.Pickups(), 2)
		assert.Equal(t, entity.PickupCheckpoint, enemies.Pickups()[1].Kind())
		ne, ni := contacts.Len()
		assert.Equal(t, 1, ne)
		assert.Equal(t, 2, ni)
	})

	t.Run("unknown enemy", func(t *testing.T) {
		enemies := NewEnemySystem(gameCfg, stage, nil)
		err := SpawnEntities(enemies, []config.EnemySpawnConfig{{Type: "dragon"}}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "dragon")
	})

	t.Run("unknown pickup", func(t *testing.T) {
		enemies := NewEnemySystem(gameCfg, stage, nil)
		err := SpawnEntities(enemies, nil, []config.PickupSpawnConfig{{Type: "coin"}})

		assert.ErrorContains(t, err, "coin")
	})
}
