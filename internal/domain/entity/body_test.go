package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"apart", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestNewBody(t *testing.T) {
	b := NewBody(100, 200, 12, 24, 1100)

	require.NotNil(t, b)
	assert.Equal(t, Rect{X: 94, Y: 188, W: 12, H: 24}, b.Bounds())
	assert.Equal(t, 212.0, b.Feet())
	assert.Equal(t, 1100.0, b.GravityY)
}

func TestBody_Integrate(t *testing.T) {
	t.Run("semi-implicit euler uses the new velocity", func(t *testing.T) {
		b := NewBody(0, 0, 10, 10, 0)
		b.SetAcceleration(1000, 0)

		b.Integrate(100)

		assert.InDelta(t, 100.0, b.VX, 1e-9)
		assert.InDelta(t, 10.0, b.X, 1e-9)
	})

	t.Run("gravity is added to vertical acceleration", func(t *testing.T) {
		b := NewBody(0, 0, 10, 10, 1000)
		b.SetAccelerationY(-400)

		b.Integrate(100)

		assert.InDelta(t, 60.0, b.VY, 1e-9)
	})

	t.Run("override replaces gravity for one step", func(t *testing.T) {
		b := NewBody(0, 0, 10, 10, 1000)
		b.OverrideAccelerationY(-400)
		require.True(t, b.GravityOverridden())

		b.Integrate(100)
		assert.InDelta(t, -40.0, b.VY, 1e-9)
		assert.False(t, b.GravityOverridden())

		b.SetAccelerationY(0)
		b.Integrate(100)
		assert.InDelta(t, 60.0, b.VY, 1e-9)
	})

	t.Run("zero elapsed time changes nothing", func(t *testing.T) {
		b := NewBody(5, 5, 10, 10, 1000)
		b.SetVelocity(30, -20)
		b.SetAcceleration(100, 100)

		b.Integrate(0)

		assert.Equal(t, 5.0, b.X)
		assert.Equal(t, 5.0, b.Y)
		assert.Equal(t, 30.0, b.VX)
		assert.Equal(t, -20.0, b.VY)
	})
}

func TestBody_Drag(t *testing.T) {
	tests := []struct {
		name   string
		vx     float64
		ax     float64
		drag   float64
		wantVX float64
	}{
		{"slows positive velocity", 100, 0, 500, 50},
		{"slows negative velocity", -100, 0, 500, -50},
		{"never reverses sign", 20, 0, 500, 0},
		{"never reverses negative sign", -20, 0, 500, 0},
		{"ignored while accelerating", 100, 100, 500, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(0, 0, 10, 10, 0)
			b.VX = tt.vx
			b.AX = tt.ax
			b.DragX = tt.drag

			b.Accelerate(100)

			assert.InDelta(t, tt.wantVX, b.VX, 1e-9)
		})
	}
}

func TestBody_ClampVelocity(t *testing.T) {
	b := NewBody(0, 0, 10, 10, 0)
	b.SetVelocity(-2000, 1500)

	b.ClampVelocity(800, 900)

	assert.Equal(t, -800.0, b.VX)
	assert.Equal(t, 900.0, b.VY)
}

func TestBody_SanitizesNaN(t *testing.T) {
	b := NewBody(0, 0, 10, 10, 0)
	b.VX = math.NaN()
	b.AY = math.Inf(1)

	b.Integrate(16)

	assert.Equal(t, 0.0, b.VX)
	assert.Equal(t, 0.0, b.VY)
	assert.False(t, math.IsNaN(b.X))
}

func TestBody_Resize_KeepsFeet(t *testing.T) {
	b := NewBody(50, 100, 12, 24, 0)
	feet := b.Feet()

	b.Resize(14)

	assert.Equal(t, 7.0, b.HalfH)
	assert.Equal(t, feet, b.Feet())

	b.Resize(24)
	assert.Equal(t, 100.0, b.Y)
}
