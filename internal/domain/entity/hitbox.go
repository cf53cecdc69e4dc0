package entity

import "math"

// HitboxKind identifies which move owns a hitbox.
type HitboxKind int

const (
	HitboxSlide HitboxKind = iota
	HitboxSideKick
	HitboxDropKick
	HitboxFlip
	HitboxBeam
)

// String returns the string representation of the hitbox kind
func (k HitboxKind) String() string {
	switch k {
	case HitboxSlide:
		return "slide"
	case HitboxSideKick:
		return "sidekick"
	case HitboxDropKick:
		return "dropkick"
	case HitboxFlip:
		return "flip"
	case HitboxBeam:
		return "beam"
	default:
		return "unknown"
	}
}

// HitboxRect is a hitbox placement relative to the body.
// OffsetX is measured from the body center toward the facing side,
// OffsetY from the body center downward.
type HitboxRect struct {
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// GetWorldRect returns the rect in world coordinates for a body center and facing.
// Facing -1 mirrors the offset around the body center.
func (hr HitboxRect) GetWorldRect(centerX, centerY float64, facing int) Rect {
	cx := centerX + hr.OffsetX
	if facing < 0 {
		cx = centerX - hr.OffsetX
	}
	cy := centerY + hr.OffsetY
	return Rect{X: cx - hr.Width/2, Y: cy - hr.Height/2, W: hr.Width, H: hr.Height}
}

// Hitbox is a transient move region. Only active hitboxes take part in
// overlap tests.
type Hitbox struct {
	Kind   HitboxKind
	Shape  HitboxRect
	Rect   Rect
	Active bool
}

// NewHitbox creates an inactive hitbox of the given kind and shape.
func NewHitbox(kind HitboxKind, shape HitboxRect) Hitbox {
	return Hitbox{Kind: kind, Shape: shape}
}

// Activate enables the hitbox and places it relative to the body.
func (h *Hitbox) Activate(b *Body, facing int) {
	h.Active = true
	h.Follow(b, facing)
}

// Deactivate disables the hitbox.
func (h *Hitbox) Deactivate() {
	h.Active = false
}

// Follow repositions the hitbox relative to the body.
func (h *Hitbox) Follow(b *Body, facing int) {
	h.Rect = h.Shape.GetWorldRect(b.X, b.Y, facing)
}

// PlaceAt centers the hitbox on a world point.
func (h *Hitbox) PlaceAt(x, y float64) {
	h.Rect = Rect{X: x - h.Shape.Width/2, Y: y - h.Shape.Height/2, W: h.Shape.Width, H: h.Shape.Height}
}

// Arc is an elliptical path around the body center traversed by t in [0, 1].
// Dir +1 runs clockwise on screen (Y down), -1 counter-clockwise.
// t = 0 starts below the center.
type Arc struct {
	RadiusX, RadiusY float64
	Dir              int
}

func (a Arc) angle(t float64) float64 {
	return math.Pi/2 + float64(a.Dir)*t*2*math.Pi
}

// Point returns the arc position at t relative to the center.
func (a Arc) Point(t float64) (dx, dy float64) {
	th := a.angle(t)
	return a.RadiusX * math.Cos(th), a.RadiusY * math.Sin(th)
}

// Tangent returns the unit direction of travel at t.
func (a Arc) Tangent(t float64) (tx, ty float64) {
	th := a.angle(t)
	d := float64(a.Dir)
	tx = -a.RadiusX * math.Sin(th) * d
	ty = a.RadiusY * math.Cos(th) * d
	n := math.Hypot(tx, ty)
	if n == 0 {
		return 0, 0
	}
	return tx / n, ty / n
}
