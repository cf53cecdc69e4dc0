package input

import "github.com/hajimehoshi/ebiten/v2"

// Bindings maps each logical button to the keys that trigger it.
type Bindings [ButtonCount][]ebiten.Key

// DefaultBindings returns arrow keys + Z/X with WASD alternatives.
func DefaultBindings() Bindings {
	var b Bindings
	b[Left] = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	b[Right] = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	b[Up] = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	b[Down] = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
	b[Jump] = []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace}
	b[Attack] = []ebiten.Key{ebiten.KeyX, ebiten.KeyJ}
	b[Pause] = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP}
	b[Mute] = []ebiten.Key{ebiten.KeyM}
	return b
}

// Keyboard reads logical buttons from ebiten and tracks press windows.
type Keyboard struct {
	bindings Bindings
	tracker  *Tracker
	pressed  func(ebiten.Key) bool
}

// NewKeyboard creates a keyboard reader with the given bindings.
func NewKeyboard(bindings Bindings) *Keyboard {
	return &Keyboard{
		bindings: bindings,
		tracker:  NewTracker(),
		pressed:  ebiten.IsKeyPressed,
	}
}

// Raw returns which logical buttons are currently down.
func (k *Keyboard) Raw() [ButtonCount]bool {
	var raw [ButtonCount]bool
	for id, keys := range k.bindings {
		for _, key := range keys {
			if k.pressed(key) {
				raw[id] = true
				break
			}
		}
	}
	return raw
}

// Poll reads the keyboard and returns the snapshot for a tick of elapsedMs.
func (k *Keyboard) Poll(elapsedMs float64) Snapshot {
	return k.tracker.Update(k.Raw(), elapsedMs)
}

// Reset forgets all hold durations.
func (k *Keyboard) Reset() {
	k.tracker.Reset()
}
