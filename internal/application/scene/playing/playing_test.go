package playing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/application/player"
	"github.com/younwookim/kickrun/internal/application/replay"
	"github.com/younwookim/kickrun/internal/application/scene"
	"github.com/younwookim/kickrun/internal/application/state"
	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
	"github.com/younwookim/kickrun/internal/infrastructure/settings"
)

func createTestConfig() *config.GameConfig {
	return &config.GameConfig{
		Physics: config.DefaultPhysics(),
		Entities: &config.EntitiesConfig{
			Enemies: map[string]config.EnemyConfig{
				"slime": {
					ID:    "slime",
					Size:  config.Size{Width: 14, Height: 12},
					Stats: config.EnemyStats{MaxHealth: 2, ContactDamage: 20, MoveSpeed: 30, PatrolDistance: 48},
				},
			},
			Pickups: map[string]config.PickupConfig{
				"checkpoint": {ID: "checkpoint", Size: config.Size{Width: 8, Height: 24}},
			},
		},
	}
}

// createTestLevel is 20x10 tiles with ground on row 8 (top at y=128), a
// soft block at (10,7), one slime and one checkpoint.
func createTestLevel() Level {
	stage := entity.NewStage(20, 10, 16)
	for tx := 0; tx < stage.Width; tx++ {
		stage.SetTile(tx, 8, entity.NewTile(entity.TileWall))
	}
	stage.SetTile(10, 7, entity.NewTile(entity.TileSoft))
	stage.SpawnX, stage.SpawnY = 40, 116

	return Level{
		Name:    "test",
		Stage:   stage,
		Enemies: []config.EnemySpawnConfig{{Type: "slime", X: 250, Y: 116}},
		Pickups: []config.PickupSpawnConfig{{Type: "checkpoint", X: 146, Y: 104}},
	}
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(createTestConfig(), createTestLevel())
	require.NoError(t, err)
	return w
}

// replayOf builds a replay where frame i holds the buttons in frames[i].
func replayOf(frames ...[]input.ButtonID) replay.ReplayData {
	data := replay.ReplayData{Version: replay.Version, Seed: 7, Stage: "test"}
	for i, ids := range frames {
		var raw [input.ButtonCount]bool
		for _, id := range ids {
			raw[id] = true
		}
		data.Frames = append(data.Frames, replay.NewFrameInput(i, raw, entity.TickMs))
	}
	return data
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
	var _ player.Lifecycle = (*World)(nil)
}

func TestNewWorld(t *testing.T) {
	w := newTestWorld(t)

	assert.Equal(t, 40.0, w.Player.Body.X)
	assert.Equal(t, 116.0, w.Player.Body.Y)
	assert.Equal(t, StartLives, w.Lives())
	assert.Len(t, w.Enemies.Enemies(), 1)
	assert.Len(t, w.Enemies.Pickups(), 1)
	assert.Equal(t, 1.0, w.Physics.TimeScale())

	enemies, items := w.Contacts.Len()
	assert.Equal(t, 1, enemies)
	assert.Equal(t, 1, items)
}

func TestNewWorld_UnknownEnemy(t *testing.T) {
	level := createTestLevel()
	level.Enemies = []config.EnemySpawnConfig{{Type: "dragon"}}

	_, err := NewWorld(createTestConfig(), level)
	assert.ErrorContains(t, err, "dragon")
}

func TestWorld_IdleStaysGrounded(t *testing.T) {
	w := newTestWorld(t)

	for i := 0; i < 60; i++ {
		w.Step(input.Snapshot{}, entity.TickMs)
	}

	assert.True(t, w.Player.Body.OnFloor)
	assert.InDelta(t, 116.0, w.Player.Body.Y, 0.01)
	assert.Equal(t, 0.0, w.Player.Body.VY)
}

func TestWorld_CheckpointMovesRespawn(t *testing.T) {
	w := newTestWorld(t)
	w.Player.Body.X = 150

	events := w.Step(input.Snapshot{}, entity.TickMs)

	require.NotEmpty(t, events)
	x, y := w.Checkpoint()
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 116.0, y)
}

func TestWorld_DeathAndRespawn(t *testing.T) {
	w := newTestWorld(t)
	w.Player.Upgrades.DoubleJump = true
	w.Player.Body.X = 90

	require.True(t, w.Player.Hurt(player.CauseSpike, 1000))
	require.True(t, w.Player.Dead())
	assert.Equal(t, StartLives-1, w.Lives())
	assert.Equal(t, 1, w.Deaths())
	assert.True(t, w.Respawning())

	for i := 0; i < respawnTicks-1; i++ {
		w.Step(input.Snapshot{}, entity.TickMs)
	}
	assert.True(t, w.Player.Dead(), "death pose is held")

	w.Step(input.Snapshot{}, entity.TickMs)

	assert.False(t, w.Player.Dead())
	assert.False(t, w.Respawning())
	assert.Equal(t, 40.0, w.Player.Body.X, "back at the checkpoint")
	assert.True(t, w.Player.Upgrades.DoubleJump, "upgrades survive a respawn")
	assert.Equal(t, w.Player.Config().Health.MaxHP, w.Player.HP)
}

func TestWorld_GameOver(t *testing.T) {
	w := newTestWorld(t)

	for life := 0; life < StartLives; life++ {
		require.True(t, w.Player.Hurt(player.CauseEnemy, 1000), "life %d", life)
		for i := 0; i < respawnTicks; i++ {
			w.Step(input.Snapshot{}, entity.TickMs)
		}
	}

	assert.True(t, w.GameOver())
	assert.Equal(t, 0, w.Lives())
	assert.Nil(t, w.Step(input.Pressed(input.Jump), entity.TickMs))
}

func TestWorld_FallingOutDies(t *testing.T) {
	level := createTestLevel()
	level.Stage.RemoveTile(2, 8)
	level.Stage.RemoveTile(3, 8)
	w, err := NewWorld(createTestConfig(), level)
	require.NoError(t, err)

	for i := 0; i < 200 && w.Deaths() == 0; i++ {
		w.Step(input.Snapshot{}, entity.TickMs)
	}

	assert.Equal(t, 1, w.Deaths())
}

func TestWorld_BulletTimeLastsItsWindowInWallTime(t *testing.T) {
	level := createTestLevel()
	level.Stage.SetTile(3, 7, entity.NewTile(entity.TileWall))
	w, err := NewWorld(createTestConfig(), level)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		w.Step(input.Snapshot{}, entity.TickMs)
	}
	require.True(t, w.Player.Body.OnFloor)

	// Drop-kick into the wall beside the spawn.
	w.Player.Facing = 1
	w.Player.Body.VX = 260
	w.Player.Flags.CanDropKick = true
	events := w.Step(input.Pressed(input.Down, input.Attack), entity.TickMs)
	require.True(t, hasKind(events, player.EventRebound))

	dc := w.Player.Config().DropKick
	require.Equal(t, dc.SlowScale, w.Physics.TimeScale())

	for i := 1; i < dc.SlowTicks; i++ {
		w.Step(input.Snapshot{}, entity.TickMs)
		require.True(t, w.Player.Slowed(), "tick %d", i)
		require.False(t, w.Player.Body.OnFloor, "still airborne at tick %d", i)
	}
	w.Step(input.Snapshot{}, entity.TickMs)

	assert.False(t, w.Player.Slowed())
	assert.Equal(t, 1.0, w.Physics.TimeScale(), "restored after SlowTicks ticks of wall time")
}

func hasKind(events []player.Event, kind player.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestWorld_RestartRestoresLevel(t *testing.T) {
	w := newTestWorld(t)
	w.Stage.RemoveTile(10, 7)
	w.Player.Upgrades.Laser = true
	w.Player.Body.X = 150
	w.Step(input.Snapshot{}, entity.TickMs)
	require.Empty(t, w.Enemies.Pickups())

	require.NoError(t, w.Restart())

	assert.Equal(t, entity.TileSoft, w.Stage.GetTile(10, 7).Type)
	assert.Equal(t, entity.TileSoft, w.Level().Stage.GetTile(10, 7).Type, "level itself is never modified")
	assert.False(t, w.Player.Upgrades.Laser)
	assert.Len(t, w.Enemies.Pickups(), 1)
	x, _ := w.Checkpoint()
	assert.Equal(t, 40.0, x)
}

func TestPlaying_ReplayPauseToggles(t *testing.T) {
	data := replayOf(
		nil,
		[]input.ButtonID{input.Pause},
		[]input.ButtonID{input.Pause, input.Right},
		nil,
		[]input.ButtonID{input.Pause},
		nil,
	)
	p, err := NewReplay(createTestConfig(), createTestLevel(), data)
	require.NoError(t, err)
	require.Equal(t, state.StateReplay, p.State())

	want := []state.GameState{
		state.StateReplay,
		state.StatePaused,
		state.StatePaused, // still held, no new edge
		state.StatePaused,
		state.StateReplay,
		state.StateReplay,
	}
	for i, w := range want {
		_, err := p.Update(entity.TickMs)
		require.NoError(t, err)
		assert.Equal(t, w, p.State(), "frame %d", i)
	}

	x := p.World().Player.Body.X
	assert.Equal(t, 40.0, x, "input while paused does not move the player")

	_, err = p.Update(entity.TickMs)
	require.NoError(t, err)
	assert.Equal(t, state.StateGameOver, p.State(), "replay ran out of frames")
}

func TestPlaying_MuteSilencesCues(t *testing.T) {
	data := replayOf(
		[]input.ButtonID{input.Mute},
		nil,
		[]input.ButtonID{input.Mute},
	)
	p, err := NewReplay(createTestConfig(), createTestLevel(), data)
	require.NoError(t, err)

	_, _ = p.Update(entity.TickMs)
	assert.True(t, p.Muted())

	p.react([]player.Event{{Kind: player.EventPickup, Pickup: entity.PickupLaser}})
	assert.Empty(t, p.LastCue())

	_, _ = p.Update(entity.TickMs)
	_, _ = p.Update(entity.TickMs)
	assert.False(t, p.Muted())

	p.react([]player.Event{{Kind: player.EventHurt, Cause: player.CauseHeat}})
	assert.Equal(t, "hurt_heat", p.LastCue())
}

func TestPlaying_Settings(t *testing.T) {
	p, err := NewReplay(createTestConfig(), createTestLevel(), replayOf([]input.ButtonID{input.Mute}))
	require.NoError(t, err)

	p.ApplySettings(settings.Settings{Muted: true, ShowHitboxes: true})
	assert.True(t, p.Muted())

	_, err = p.Update(entity.TickMs)
	require.NoError(t, err)

	assert.Equal(t, settings.Settings{Muted: false, ShowHitboxes: true}, p.Settings(), "mute press toggles the saved value")
}

func TestPlaying_ReactShakes(t *testing.T) {
	p, err := NewReplay(createTestConfig(), createTestLevel(), replayOf())
	require.NoError(t, err)

	p.react([]player.Event{{Kind: player.EventTileBroken}})
	assert.Equal(t, shakeBreak, p.shake)

	p.react([]player.Event{{Kind: player.EventDeath}})
	assert.Equal(t, shakeDeath, p.shake)

	p.settleShake(100)
	assert.Less(t, p.shake, shakeDeath, "shake eases out")
	assert.Greater(t, p.shake, 0.0)

	p.settleShake(1000)
	assert.Zero(t, p.shake)
	assert.Nil(t, p.shakeTw)
}

func TestFlipBarWidth(t *testing.T) {
	w := newTestWorld(t)
	assert.Zero(t, flipBarWidth(w.Player, 100))

	w.Player.Body.Y = 60
	w.Player.Body.OnFloor = false
	w.Player.Facing = 1
	w.Step(input.Pressed(input.Up, input.Attack), entity.TickMs)
	require.Equal(t, player.Flipping, w.Player.Move())
	w.Step(input.Snapshot{}, entity.TickMs)

	step := w.Player.Config().Flip.Step
	assert.InDelta(t, 100*step, flipBarWidth(w.Player, 100), 1e-9)
}

func TestPickupToast(t *testing.T) {
	assert.Equal(t, "LASER! hold down in the air", pickupToast(entity.PickupLaser))
}

func TestCue(t *testing.T) {
	tests := []struct {
		event player.Event
		want  string
	}{
		{player.Event{Kind: player.EventHurt, Cause: player.CauseSpike}, "hurt_spike"},
		{player.Event{Kind: player.EventPickup, Pickup: entity.PickupCheckpoint}, "pickup_checkpoint"},
		{player.Event{Kind: player.EventRebound, Move: player.SideKicking}, "rebound_sidekicking"},
		{player.Event{Kind: player.EventTileBroken}, "tile_broken"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, cue(tt.event))
		})
	}
}

func TestPlaying_WithRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	p, err := New(createTestConfig(), createTestLevel(), path)
	require.NoError(t, err)
	require.NotNil(t, p.recorder)

	_, err = p.Update(entity.TickMs)
	require.NoError(t, err)
	assert.Equal(t, 1, p.recorder.FrameCount())

	p.OnExit()

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, p.seed, data.Seed)
	assert.Equal(t, "test", data.Stage)
	assert.Len(t, data.Frames, 1)
}

func TestRecorder_SaveRoundTrip(t *testing.T) {
	r := NewRecorder(12345, "test")
	var raw [input.ButtonCount]bool
	raw[input.Jump] = true
	r.RecordFrame(raw, 16)
	r.RecordFrame([input.ButtonCount]bool{}, 8)

	path := filepath.Join(t.TempDir(), "r.json")
	require.NoError(t, r.Save(path))

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, r.Data(), *data)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder(1, "test")
	assert.Error(t, r.Save(filepath.Join(t.TempDir(), "empty.json")))
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder(12345, "test")
	assert.True(t, r.IsRecording())

	r.Stop()
	r.RecordFrame([input.ButtonCount]bool{true}, 16)

	assert.False(t, r.IsRecording())
	assert.Equal(t, 0, r.FrameCount())
}
