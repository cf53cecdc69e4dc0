package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(ids ...ButtonID) [ButtonCount]bool {
	var r [ButtonCount]bool
	for _, id := range ids {
		r[id] = true
	}
	return r
}

func TestTracker_ShortPressWindow(t *testing.T) {
	tr := NewTracker()

	// 16ms ticks: held 16, 32, ... 96 are inside the window, 112 is not.
	var just []bool
	for i := 0; i < 8; i++ {
		s := tr.Update(raw(Attack), 16)
		require.True(t, s.Down(Attack))
		just = append(just, s.JustPressed(Attack))
	}

	assert.Equal(t, []bool{true, true, true, true, true, true, false, false}, just)
}

func TestTracker_WindowBounds(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  float64
		wantJust bool
	}{
		{"1ms is not a press yet", 1, false},
		{"just over 1ms", 1.5, true},
		{"exactly 100ms", 100, true},
		{"over 100ms", 101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			s := tr.Update(raw(Jump), tt.elapsed)
			assert.Equal(t, tt.wantJust, s.JustPressed(Jump))
		})
	}
}

func TestTracker_ReleaseResets(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < 10; i++ {
		tr.Update(raw(Jump), 16)
	}
	s := tr.Update(raw(Jump), 16)
	require.False(t, s.JustPressed(Jump))

	s = tr.Update(raw(), 16)
	assert.False(t, s.Down(Jump))
	assert.Zero(t, s.Buttons[Jump].HeldMs)

	s = tr.Update(raw(Jump), 16)
	assert.True(t, s.JustPressed(Jump), "a new press opens a new window")
}

func TestTracker_ZeroElapsedIsStable(t *testing.T) {
	tr := NewTracker()
	first := tr.Update(raw(Left), 16)
	second := tr.Update(raw(Left), 0)
	third := tr.Update(raw(Left), 0)

	assert.Equal(t, first, second)
	assert.Equal(t, second, third)
}

func TestHeldAndPressed(t *testing.T) {
	s := Pressed(Down, Attack)
	assert.True(t, s.Down(Down))
	assert.True(t, s.JustPressed(Attack))
	assert.False(t, s.Down(Up))

	h := Held(500, Left)
	assert.True(t, h.Down(Left))
	assert.False(t, h.JustPressed(Left))

	m := h.Merge(s)
	assert.True(t, m.Down(Left))
	assert.True(t, m.JustPressed(Attack))
	assert.Equal(t, raw(Left, Down, Attack), m.Raw())
}

func TestKeyboard_Poll(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyX: true}
	k := NewKeyboard(DefaultBindings())
	k.pressed = func(key ebiten.Key) bool { return held[key] }

	s := k.Poll(16)

	assert.True(t, s.Down(Left))
	assert.True(t, s.JustPressed(Attack))
	assert.False(t, s.Down(Right))

	delete(held, ebiten.KeyArrowLeft)
	held[ebiten.KeyA] = true
	s = k.Poll(16)
	assert.True(t, s.Down(Left), "alternate binding keeps the button held")
	assert.Equal(t, 32.0, s.Buttons[Left].HeldMs)
}

func TestButtonID_String(t *testing.T) {
	assert.Equal(t, "attack", Attack.String())
	assert.Equal(t, "mute", Mute.String())
	assert.Equal(t, "unknown", ButtonCount.String())
}
