package system

import (
	"fmt"
	"math"

	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

// knockDrag slows a knocked-back enemy, in px/s².
const knockDrag = 600.0

// EnemySystem owns the stage's enemies and pickups: spawning, patrol
// movement, knockback and stun. It keeps the contact space in sync.
type EnemySystem struct {
	config   *config.GameConfig
	stage    *entity.Stage
	contacts *ContactSpace

	enemies []*entity.Enemy
	pickups []*entity.Pickup
	nextID  entity.EntityID
}

// NewEnemySystem creates an enemy system that registers everything it
// spawns in contacts.
func NewEnemySystem(cfg *config.GameConfig, stage *entity.Stage, contacts *ContactSpace) *EnemySystem {
	return &EnemySystem{
		config:   cfg,
		stage:    stage,
		contacts: contacts,
		enemies:  make([]*entity.Enemy, 0, 16),
		pickups:  make([]*entity.Pickup, 0, 16),
		nextID:   1,
	}
}

// SpawnEnemy spawns an enemy of a configured type with its top-left corner
// at (x, y).
func (s *EnemySystem) SpawnEnemy(enemyType string, x, y float64, facingRight bool) (*entity.Enemy, error) {
	enemyCfg, ok := s.config.Entities.Enemies[enemyType]
	if !ok {
		return nil, fmt.Errorf("unknown enemy type %q", enemyType)
	}

	enemy := entity.NewEnemy(s.allocID(), x, y, enemyType)
	if enemyCfg.Stats.MaxHealth > 0 {
		enemy.MaxHealth = enemyCfg.Stats.MaxHealth
		enemy.Health = enemyCfg.Stats.MaxHealth
	}
	enemy.ContactDamage = enemyCfg.Stats.ContactDamage
	enemy.MoveSpeed = orDefault(enemyCfg.Stats.MoveSpeed, s.config.Physics.Physics.EnemySpeed)
	enemy.PatrolDistance = orDefault(enemyCfg.Stats.PatrolDistance, s.config.Physics.Physics.EnemyPatrol)
	if enemyCfg.Size.Width > 0 && enemyCfg.Size.Height > 0 {
		enemy.Width = enemyCfg.Size.Width
		enemy.Height = enemyCfg.Size.Height
	}
	enemy.FacingRight = facingRight
	if facingRight {
		enemy.PatrolDir = 1
	}

	s.enemies = append(s.enemies, enemy)
	if s.contacts != nil {
		s.contacts.AddEnemy(enemy)
	}
	return enemy, nil
}

// SpawnPickup spawns a pickup with its top-left corner at (x, y).
func (s *EnemySystem) SpawnPickup(kind entity.PickupKind, x, y float64) *entity.Pickup {
	p := entity.NewPickup(s.allocID(), kind, x, y)
	if pc, ok := s.config.Entities.Pickups[kind.String()]; ok {
		if pc.Size.Width > 0 && pc.Size.Height > 0 {
			p.W, p.H = pc.Size.Width, pc.Size.Height
		}
		if pc.Amount > 0 {
			p.Value = pc.Amount
		}
	}

	s.pickups = append(s.pickups, p)
	if s.contacts != nil {
		s.contacts.AddPickup(p)
	}
	return p
}

// Enemies returns the spawned enemies, including defeated ones until the
// next Update.
func (s *EnemySystem) Enemies() []*entity.Enemy {
	return s.enemies
}

// Pickups returns the spawned pickups still in play.
func (s *EnemySystem) Pickups() []*entity.Pickup {
	return s.pickups
}

// Reset removes every enemy and pickup, e.g. before a stage reload.
func (s *EnemySystem) Reset(stage *entity.Stage) {
	s.stage = stage
	s.enemies = s.enemies[:0]
	s.pickups = s.pickups[:0]
	if s.contacts != nil {
		s.contacts.Clear()
	}
}

// Update advances all enemies by dt world milliseconds and refreshes the
// contact index.
func (s *EnemySystem) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	sec := dt / 1000

	alive := s.enemies[:0]
	for _, enemy := range s.enemies {
		if !enemy.IsAlive() {
			continue
		}
		s.updateEnemy(enemy, dt, sec)
		alive = append(alive, enemy)
	}
	s.enemies = alive

	active := s.pickups[:0]
	for _, p := range s.pickups {
		if p.Active {
			active = append(active, p)
		}
	}
	s.pickups = active

	if s.contacts != nil {
		s.contacts.Sync()
	}
}

func (s *EnemySystem) updateEnemy(enemy *entity.Enemy, dt, sec float64) {
	if enemy.HitTimer > 0 {
		// Knockback slides out during stun.
		enemy.HitTimer = math.Max(0, enemy.HitTimer-dt)
		s.moveEnemyX(enemy, enemy.VX*sec, false)
		enemy.VX = approachZero(enemy.VX, knockDrag*sec)
	} else {
		s.updatePatrol(enemy, sec)
	}
	s.applyEnemyGravity(enemy, sec)
}

// updatePatrol walks back and forth, turning at walls, ledges and the
// patrol bounds.
func (s *EnemySystem) updatePatrol(enemy *entity.Enemy, sec float64) {
	enemy.VX = float64(enemy.PatrolDir) * enemy.MoveSpeed
	s.moveEnemyX(enemy, enemy.VX*sec, true)

	if enemy.OnGround && s.atLedge(enemy) {
		s.turn(enemy)
	}
	if enemy.PatrolDistance > 0 && math.Abs(enemy.X-enemy.PatrolStartX) > enemy.PatrolDistance {
		// Only turn back toward the start so the enemy never jitters outside.
		if float64(enemy.PatrolDir)*(enemy.X-enemy.PatrolStartX) > 0 {
			s.turn(enemy)
		}
	}
}

func (s *EnemySystem) turn(enemy *entity.Enemy) {
	enemy.PatrolDir *= -1
	enemy.FacingRight = enemy.PatrolDir > 0
}

// atLedge reports whether the floor ends just ahead of the enemy.
func (s *EnemySystem) atLedge(enemy *entity.Enemy) bool {
	b := enemy.Bounds()
	x := b.Left() - 1
	if enemy.PatrolDir > 0 {
		x = b.Right() + 1
	}
	return !s.stage.IsSolidAt(x, b.Bottom()+1)
}

// moveEnemyX moves an enemy horizontally in steps of at most one pixel.
func (s *EnemySystem) moveEnemyX(enemy *entity.Enemy, moveX float64, patrol bool) {
	for moveX != 0 {
		step := clampStep(moveX)
		r := enemy.Bounds()
		r.X += step
		if s.stage.IsSolidRect(r, false) {
			if patrol {
				s.turn(enemy)
			} else {
				enemy.VX = 0
			}
			return
		}
		enemy.X += step
		moveX -= step
	}
}

// moveEnemyY moves an enemy vertically, landing on solids and on
// semisolids from above.
func (s *EnemySystem) moveEnemyY(enemy *entity.Enemy, moveY float64) {
	enemy.OnGround = false
	for moveY != 0 {
		step := clampStep(moveY)
		r := enemy.Bounds()
		r.Y += step
		if s.stage.IsSolidRect(r, step > 0 && s.landsOnSemisolid(enemy, r)) {
			if step > 0 {
				enemy.OnGround = true
			}
			enemy.VY = 0
			return
		}
		enemy.Y += step
		moveY -= step
	}
}

// landsOnSemisolid reports whether r reaches a semisolid top the enemy's
// feet were above.
func (s *EnemySystem) landsOnSemisolid(enemy *entity.Enemy, r entity.Rect) bool {
	feet := enemy.Bounds().Bottom()
	for _, pt := range s.stage.TilesIn(r) {
		if pt.Semisolid && feet <= pt.Bounds.Top() {
			return true
		}
	}
	return false
}

// applyEnemyGravity applies gravity and moves the enemy vertically.
func (s *EnemySystem) applyEnemyGravity(enemy *entity.Enemy, sec float64) {
	gravity := s.config.Physics.Physics.Gravity
	maxFall := s.config.Physics.Player.Movement.HardMaxY

	enemy.VY = math.Min(enemy.VY+gravity*sec, maxFall)
	s.moveEnemyY(enemy, enemy.VY*sec)
	if sec == 0 {
		r := enemy.Bounds()
		r.Y++
		enemy.OnGround = s.stage.IsSolidRect(r, false)
	}
}

func (s *EnemySystem) allocID() entity.EntityID {
	id := s.nextID
	s.nextID++
	return id
}

func approachZero(v, amount float64) float64 {
	if math.Abs(v) <= amount {
		return 0
	}
	if v > 0 {
		return v - amount
	}
	return v + amount
}

func orDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
