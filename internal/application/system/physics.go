package system

import (
	"math"

	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

// groundProbe is how far below the feet a resting body looks for floor.
const groundProbe = 0.5

// PhysicsSystem integrates bodies against the stage tiles and owns the
// world time scale.
type PhysicsSystem struct {
	config    *config.PhysicsConfig
	stage     *entity.Stage
	timeScale float64
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		config:    cfg,
		stage:     stage,
		timeScale: 1,
	}
}

// SetStage swaps the stage, e.g. after a reload.
func (s *PhysicsSystem) SetStage(stage *entity.Stage) {
	s.stage = stage
}

// SetTimeScale sets the world time scale. Non-positive or non-finite
// scales reset it to 1.
func (s *PhysicsSystem) SetTimeScale(scale float64) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	s.timeScale = scale
}

// TimeScale returns the current world time scale.
func (s *PhysicsSystem) TimeScale() float64 {
	return s.timeScale
}

// Scale converts real elapsed milliseconds to world milliseconds.
func (s *PhysicsSystem) Scale(elapsedMs float64) float64 {
	if elapsedMs <= 0 || math.IsNaN(elapsedMs) {
		return 0
	}
	return elapsedMs * s.timeScale
}

// Update advances the body by deltaMs world milliseconds: acceleration,
// clamp, then a collision-aware move.
func (s *PhysicsSystem) Update(body *entity.Body, deltaMs float64) {
	mc := s.config.Player.Movement

	body.Accelerate(deltaMs)
	body.ClampVelocity(mc.HardMaxX, mc.HardMaxY)

	dt := deltaMs / 1000
	if dt < 0 {
		dt = 0
	}
	s.applyMovement(body, body.VX*dt, body.VY*dt)
}

// applyMovement moves the body with substep collision detection
func (s *PhysicsSystem) applyMovement(body *entity.Body, dx, dy float64) {
	body.OnFloor = false
	body.OnCeiling = false

	s.resolveOverlap(body)
	s.moveX(body, dx)
	s.moveY(body, dy)
	s.resolveOverlap(body)

	if !body.OnFloor && body.VY >= 0 && s.blockedBelow(body, groundProbe) {
		body.OnFloor = true
	}
}

// moveX moves the body horizontally in steps of at most one pixel.
// Semisolid tiles never block sideways.
func (s *PhysicsSystem) moveX(body *entity.Body, dx float64) {
	for dx != 0 {
		step := clampStep(dx)
		r := body.Bounds()
		r.X += step
		if edge, hit := s.solidEdgeX(r, step); hit {
			if step > 0 {
				body.X = edge - body.HalfW
			} else {
				body.X = edge + body.HalfW
			}
			body.VX = 0
			return
		}
		body.X += step
		dx -= step
	}
}

// moveY moves the body vertically in steps of at most one pixel.
func (s *PhysicsSystem) moveY(body *entity.Body, dy float64) {
	for dy != 0 {
		step := clampStep(dy)
		r := body.Bounds()
		r.Y += step

		if step > 0 {
			if top, hit := s.floorBelow(body.Feet(), r); hit {
				body.Y = top - body.HalfH
				body.VY = 0
				body.OnFloor = true
				return
			}
		} else if bottom, hit := s.ceilingAbove(r); hit {
			if s.tryCornerCorrection(body, step) {
				continue
			}
			body.Y = bottom + body.HalfH
			body.VY = 0
			body.OnCeiling = true
			return
		}

		body.Y += step
		dy -= step
	}
}

// solidEdgeX returns the nearest blocking tile edge for a horizontal step.
func (s *PhysicsSystem) solidEdgeX(r entity.Rect, step float64) (float64, bool) {
	edge := math.Inf(1)
	if step < 0 {
		edge = math.Inf(-1)
	}
	hit := false
	for _, pt := range s.stage.TilesIn(r) {
		if !pt.Solid || pt.Semisolid {
			continue
		}
		hit = true
		if step > 0 {
			edge = math.Min(edge, pt.Bounds.Left())
		} else {
			edge = math.Max(edge, pt.Bounds.Right())
		}
	}
	return edge, hit
}

// floorBelow finds the highest tile top that stops a downward step.
// Semisolid tiles only catch bodies whose feet started above them.
func (s *PhysicsSystem) floorBelow(feet float64, r entity.Rect) (float64, bool) {
	top := math.Inf(1)
	hit := false
	for _, pt := range s.stage.TilesIn(r) {
		if !pt.Solid {
			continue
		}
		if pt.Semisolid && feet > pt.Bounds.Top()+1e-9 {
			continue
		}
		if pt.Bounds.Top() < feet-1e-9 {
			// Already overlapping this tile sideways; the push-out owns it.
			continue
		}
		hit = true
		top = math.Min(top, pt.Bounds.Top())
	}
	return top, hit
}

// ceilingAbove finds the lowest tile bottom that stops an upward step.
func (s *PhysicsSystem) ceilingAbove(r entity.Rect) (float64, bool) {
	bottom := math.Inf(-1)
	hit := false
	for _, pt := range s.stage.TilesIn(r) {
		if !pt.Solid || pt.Semisolid {
			continue
		}
		hit = true
		bottom = math.Max(bottom, pt.Bounds.Bottom())
	}
	return bottom, hit
}

// tryCornerCorrection nudges a rising body sideways around a ceiling corner.
func (s *PhysicsSystem) tryCornerCorrection(body *entity.Body, step float64) bool {
	cc := s.config.Collision.CornerCorrection
	if !cc.Enabled {
		return false
	}

	for i := 1; i <= cc.Margin; i++ {
		for _, dir := range []float64{-1, 1} {
			r := body.Bounds()
			r.X += dir * float64(i)
			if s.stage.IsSolidRect(r, false) {
				continue
			}
			r.Y += step
			if _, hit := s.ceilingAbove(r); !hit {
				body.X += dir * float64(i)
				return true
			}
		}
	}
	return false
}

// blockedBelow reports whether a floor lies within probe pixels of the feet.
func (s *PhysicsSystem) blockedBelow(body *entity.Body, probe float64) bool {
	r := body.Bounds()
	r.Y += probe
	_, hit := s.floorBelow(body.Feet(), r)
	return hit
}

// resolveOverlap pushes the body out of any solid tiles it overlaps.
// Returns false if the body was stuck and moved back to the spawn point.
func (s *PhysicsSystem) resolveOverlap(body *entity.Body) bool {
	const maxPushOut = 8

	if !s.stage.IsSolidRect(body.Bounds(), false) {
		return true
	}

	type pushOption struct {
		dx, dy   float64
		distance int
	}
	var options []pushOption

	dirs := [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, d := range dirs {
		for i := 1; i <= maxPushOut; i++ {
			r := body.Bounds()
			r.X += d[0] * float64(i)
			r.Y += d[1] * float64(i)
			if !s.stage.IsSolidRect(r, false) {
				options = append(options, pushOption{d[0] * float64(i), d[1] * float64(i), i})
				break
			}
		}
	}

	if len(options) == 0 {
		body.X = s.stage.SpawnX
		body.Y = s.stage.SpawnY
		body.VX = 0
		body.VY = 0
		return false
	}

	best := options[0]
	for _, opt := range options[1:] {
		if opt.distance < best.distance {
			best = opt
		}
	}

	body.X += best.dx
	body.Y += best.dy

	if best.dx != 0 {
		body.VX = 0
	}
	if best.dy > 0 {
		body.OnCeiling = true
		body.VY = 0
	} else if best.dy < 0 {
		body.OnFloor = true
		body.VY = 0
	}
	return true
}

func clampStep(d float64) float64 {
	return math.Max(-1, math.Min(1, d))
}
