package playing

import (
	"log"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/application/player"
	"github.com/younwookim/kickrun/internal/application/system"
	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

const (
	// StartLives is how many deaths a run survives before game over.
	StartLives = 3
	// respawnTicks is how long the death pose is held.
	respawnTicks = 75
)

// Level is a stage plus the spawn records it was loaded with.
type Level struct {
	Name    string
	Stage   *entity.Stage
	Enemies []config.EnemySpawnConfig
	Pickups []config.PickupSpawnConfig
}

// World is one run of a level: the player, its collaborators, the
// checkpoint and the lives counter. It has no rendering or keyboard so
// replays and tests drive it directly.
type World struct {
	cfg   *config.GameConfig
	level Level

	Stage    *entity.Stage
	Player   *player.Player
	Physics  *system.PhysicsSystem
	Contacts *system.ContactSpace
	Enemies  *system.EnemySystem

	clock     entity.Clock
	respawnAt entity.Deadline

	checkpointX, checkpointY float64
	lives                    int
	deaths                   int
	gameOver                 bool
}

// NewWorld builds a world on a copy of level.Stage, so the level can be
// restarted with its breakables intact.
func NewWorld(cfg *config.GameConfig, level Level) (*World, error) {
	stage := level.Stage.Clone()
	contacts := system.NewContactSpace(stage)
	w := &World{
		cfg:      cfg,
		level:    level,
		Physics:  system.NewPhysicsSystem(cfg.Physics, stage),
		Contacts: contacts,
		Enemies:  system.NewEnemySystem(cfg, stage, contacts),
	}
	if err := w.Restart(); err != nil {
		return nil, err
	}
	return w, nil
}

// Restart reloads the level from scratch. Upgrades are lost.
func (w *World) Restart() error {
	stage := w.level.Stage.Clone()
	w.Player = player.New(w.cfg.Physics, stage, stage.SpawnX, stage.SpawnY)
	w.Player.SetEntities(w.Contacts)
	w.Player.SetLifecycle(w)
	w.Player.SetTimeScaler(w.Physics)
	return w.load(stage)
}

func (w *World) load(stage *entity.Stage) error {
	w.Stage = stage
	w.Physics.SetStage(stage)
	w.Physics.SetTimeScale(1)
	w.Enemies.Reset(stage)
	if err := system.SpawnEntities(w.Enemies, w.level.Enemies, w.level.Pickups); err != nil {
		return err
	}
	w.Contacts.Sync()

	w.checkpointX, w.checkpointY = stage.SpawnX, stage.SpawnY
	w.lives = StartLives
	w.deaths = 0
	w.gameOver = false
	w.respawnAt.Clear()
	return nil
}

// Step advances the world by elapsedMs of wall time: player, then physics,
// then enemies. The player's timers run on wall time; bullet time only
// shortens the physics and enemy step. It returns the player's events for
// the tick.
func (w *World) Step(in input.Snapshot, elapsedMs float64) []player.Event {
	if w.gameOver {
		return nil
	}
	w.clock.Advance(elapsedMs)

	world := w.Physics.Scale(elapsedMs)
	events := w.Player.Update(in, elapsedMs)
	w.Physics.Update(w.Player.Body, world)
	w.Enemies.Update(world)

	for _, e := range events {
		if e.Kind == player.EventPickup && e.Pickup == entity.PickupCheckpoint {
			w.checkpointX, w.checkpointY = e.X, e.Y
		}
	}

	if w.respawnAt.Passed(w.clock.Now()) {
		w.respawnAt.Clear()
		if w.lives > 0 {
			w.Player.Respawn(w.checkpointX, w.checkpointY)
		} else {
			w.gameOver = true
			log.Printf("[playing] game over on %s after %d deaths", w.level.Name, w.deaths)
		}
	}
	return events
}

// Die implements player.Lifecycle.
func (w *World) Die() {
	w.deaths++
	w.lives--
	w.respawnAt.Arm(w.clock.Now(), respawnTicks)
	log.Printf("[playing] player died at (%.0f, %.0f), %d lives left", w.Player.Body.X, w.Player.Body.Y, w.lives)
}

// DeathPlaneY implements player.Lifecycle.
func (w *World) DeathPlaneY() float64 {
	return w.Stage.DeathPlaneY()
}

// Checkpoint returns the current respawn point.
func (w *World) Checkpoint() (x, y float64) {
	return w.checkpointX, w.checkpointY
}

// Lives returns the remaining lives.
func (w *World) Lives() int { return w.lives }

// Deaths returns how often the player died since the last restart.
func (w *World) Deaths() int { return w.deaths }

// Respawning reports whether the death pose is being held.
func (w *World) Respawning() bool { return w.respawnAt.Armed() }

// GameOver reports whether the last life was lost.
func (w *World) GameOver() bool { return w.gameOver }

// Level returns the level the world was built from.
func (w *World) Level() Level { return w.level }
