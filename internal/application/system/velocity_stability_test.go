package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/application/player"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

// stepPlayer runs one tick the way the playing scene does.
func stepPlayer(p *player.Player, sys *PhysicsSystem, in input.Snapshot, elapsed float64) {
	p.Update(in, elapsed)
	sys.Update(p.Body, sys.Scale(elapsed))
}

// TestVelocityStabilityWhenIdle checks that a player standing on the floor
// stays put with no input.
func TestVelocityStabilityWhenIdle(t *testing.T) {
	stage := floorStage()
	sys := NewPhysicsSystem(config.DefaultPhysics(), stage)
	p := player.New(config.DefaultPhysics(), stage, 80, 150)

	for i := 0; i < 60; i++ {
		stepPlayer(p, sys, input.Snapshot{}, tick)
	}
	require.True(t, p.Body.OnFloor)
	restY := p.Body.Y

	t.Run("VX should remain 0 when idle", func(t *testing.T) {
		for i := 0; i < 60; i++ {
			stepPlayer(p, sys, input.Snapshot{}, tick)
			assert.Equal(t, 0.0, p.Body.VX, "frame %d", i)
		}
	})

	t.Run("VY and position stay stable on the ground", func(t *testing.T) {
		fluctuations := 0
		for i := 0; i < 60; i++ {
			stepPlayer(p, sys, input.Snapshot{}, tick)
			if p.Body.VY != 0 || p.Body.Y != restY || !p.Body.OnFloor {
				fluctuations++
			}
		}
		assert.Zero(t, fluctuations)
		assert.Equal(t, player.ActionIdle, p.Action())
	})
}

func TestVelocityStability_RunAndStop(t *testing.T) {
	stage := floorStage()
	sys := NewPhysicsSystem(config.DefaultPhysics(), stage)
	p := player.New(config.DefaultPhysics(), stage, 60, 180)
	tr := input.NewTracker()

	var right [input.ButtonCount]bool
	right[input.Right] = true
	for i := 0; i < 60; i++ {
		stepPlayer(p, sys, tr.Update(right, tick), tick)
	}
	softMax := p.Config().Movement.SoftMaxX
	assert.InDelta(t, softMax, p.Body.VX, 1e-6)
	assert.True(t, p.Body.OnFloor)

	var none [input.ButtonCount]bool
	for i := 0; i < 60; i++ {
		stepPlayer(p, sys, tr.Update(none, tick), tick)
		require.GreaterOrEqual(t, p.Body.VX, 0.0)
	}
	assert.Zero(t, p.Body.VX)
}

func TestVelocityStability_SlowMotionScalesWorld(t *testing.T) {
	stage := floorStage()
	sys := NewPhysicsSystem(config.DefaultPhysics(), stage)
	p := player.New(config.DefaultPhysics(), stage, 100, 50)
	p.SetTimeScaler(sys)
	p.Body.VX = 100

	sys.SetTimeScale(0.25)
	x := p.Body.X
	stepPlayer(p, sys, input.Snapshot{}, tick)

	moved := p.Body.X - x
	assert.Less(t, moved, 100*tick/1000/2)
	assert.Greater(t, moved, 0.0)
	assert.False(t, math.IsNaN(p.Body.Y))
}
