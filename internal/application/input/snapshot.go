// Package input turns raw button states into per-tick snapshots with a
// short-press window, and reads them from the keyboard.
package input

// ButtonID names one of the eight logical buttons.
type ButtonID int

const (
	Left ButtonID = iota
	Right
	Up
	Down
	Jump
	Attack
	Pause
	Mute
	ButtonCount
)

// String returns the string representation of the button
func (b ButtonID) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Jump:
		return "jump"
	case Attack:
		return "attack"
	case Pause:
		return "pause"
	case Mute:
		return "mute"
	default:
		return "unknown"
	}
}

// Short-press window bounds in milliseconds. A held button reports
// JustPressed while its hold time lies in (ShortPressMinMs, ShortPressMaxMs].
const (
	ShortPressMinMs = 1.0
	ShortPressMaxMs = 100.0
)

// Button is the state of one logical button for a tick.
type Button struct {
	IsDown      bool
	JustPressed bool
	HeldMs      float64
}

// Snapshot is the state of all buttons for one tick.
type Snapshot struct {
	Buttons [ButtonCount]Button
}

// Down reports whether the button is held.
func (s Snapshot) Down(id ButtonID) bool {
	return s.Buttons[id].IsDown
}

// JustPressed reports whether the button is inside its short-press window.
func (s Snapshot) JustPressed(id ButtonID) bool {
	return s.Buttons[id].JustPressed
}

// Held builds a snapshot where the given buttons were pressed heldMs ago.
// Mostly useful for tests and replays.
func Held(heldMs float64, ids ...ButtonID) Snapshot {
	var s Snapshot
	for _, id := range ids {
		s.Buttons[id] = Button{IsDown: true, HeldMs: heldMs, JustPressed: inWindow(heldMs)}
	}
	return s
}

// Pressed builds a snapshot where the given buttons were just pressed.
func Pressed(ids ...ButtonID) Snapshot {
	return Held(16, ids...)
}

// Merge returns a snapshot holding the buttons of both snapshots.
// Where both hold a button, o wins.
func (s Snapshot) Merge(o Snapshot) Snapshot {
	for i, b := range o.Buttons {
		if b.IsDown {
			s.Buttons[i] = b
		}
	}
	return s
}

// Raw returns the IsDown state of every button.
func (s Snapshot) Raw() [ButtonCount]bool {
	var raw [ButtonCount]bool
	for i, b := range s.Buttons {
		raw[i] = b.IsDown
	}
	return raw
}

func inWindow(heldMs float64) bool {
	return heldMs > ShortPressMinMs && heldMs <= ShortPressMaxMs
}
