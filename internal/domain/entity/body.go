package entity

import "math"

// TickMs is the length of one logic tick in milliseconds.
// Durations are configured in ticks and converted with this constant.
const TickMs = 16.0

// Rect is an axis-aligned rectangle in world pixels (top-left origin).
type Rect struct {
	X, Y float64
	W, H float64
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Overlaps reports whether two rects intersect with non-zero area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Body is the arcade rigid body of the player.
// Position is the center of the box; Y grows downward.
type Body struct {
	X, Y   float64
	VX, VY float64
	AX, AY float64

	DragX    float64
	GravityY float64

	HalfW, HalfH float64

	OnFloor   bool
	OnCeiling bool

	overrideY bool
}

// NewBody creates a body centered at (x, y) with the given full size.
func NewBody(x, y, width, height, gravity float64) *Body {
	return &Body{
		X:        x,
		Y:        y,
		HalfW:    width / 2,
		HalfH:    height / 2,
		GravityY: gravity,
	}
}

// Bounds returns the body box in world coordinates.
func (b *Body) Bounds() Rect {
	return Rect{X: b.X - b.HalfW, Y: b.Y - b.HalfH, W: b.HalfW * 2, H: b.HalfH * 2}
}

// Feet returns the Y coordinate of the bottom edge.
func (b *Body) Feet() float64 {
	return b.Y + b.HalfH
}

// Resize changes the box height keeping the feet where they are.
func (b *Body) Resize(height float64) {
	half := height / 2
	if half == b.HalfH {
		return
	}
	feet := b.Feet()
	b.HalfH = half
	b.Y = feet - half
}

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// SetVelocityX sets the horizontal velocity.
func (b *Body) SetVelocityX(vx float64) { b.VX = vx }

// SetVelocityY sets the vertical velocity.
func (b *Body) SetVelocityY(vy float64) { b.VY = vy }

// SetAcceleration sets both acceleration components.
// Gravity is still added to AY during Integrate.
func (b *Body) SetAcceleration(ax, ay float64) {
	b.AX = ax
	b.AY = ay
}

// SetAccelerationX sets the horizontal acceleration.
func (b *Body) SetAccelerationX(ax float64) { b.AX = ax }

// SetAccelerationY sets the extra vertical acceleration added to gravity.
func (b *Body) SetAccelerationY(ay float64) { b.AY = ay }

// OverrideAccelerationY replaces gravity with ay for the next Integrate call.
func (b *Body) OverrideAccelerationY(ay float64) {
	b.AY = ay
	b.overrideY = true
}

// GravityOverridden reports whether the next Integrate skips gravity.
func (b *Body) GravityOverridden() bool {
	return b.overrideY
}

// Integrate advances the body by deltaMs using semi-implicit Euler.
func (b *Body) Integrate(deltaMs float64) {
	b.Accelerate(deltaMs)
	dt := deltaMs / 1000
	if dt <= 0 {
		return
	}
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Accelerate applies acceleration, gravity and drag to the velocity
// without moving the body. Collision-aware movers call this and then
// displace the body themselves.
func (b *Body) Accelerate(deltaMs float64) {
	b.sanitize()

	dt := deltaMs / 1000
	if dt <= 0 {
		b.overrideY = false
		return
	}

	ay := b.AY
	if !b.overrideY {
		ay += b.GravityY
	}
	b.overrideY = false

	if b.AX != 0 {
		b.VX += b.AX * dt
	} else if b.DragX > 0 && b.VX != 0 {
		b.VX = applyDrag(b.VX, b.DragX*dt)
	}
	b.VY += ay * dt
}

// ClampVelocity truncates the velocity to the hard limits.
func (b *Body) ClampVelocity(hardMaxX, hardMaxY float64) {
	b.VX = clamp(b.VX, -hardMaxX, hardMaxX)
	b.VY = clamp(b.VY, -hardMaxY, hardMaxY)
}

func (b *Body) sanitize() {
	for _, f := range []*float64{&b.VX, &b.VY, &b.AX, &b.AY} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = 0
		}
	}
}

// applyDrag moves v toward zero by amount without crossing zero.
func applyDrag(v, amount float64) float64 {
	if v > 0 {
		v -= amount
		if v < 0 {
			v = 0
		}
		return v
	}
	v += amount
	if v > 0 {
		v = 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
