package input

// Tracker accumulates hold durations across ticks.
type Tracker struct {
	held [ButtonCount]float64
	down [ButtonCount]bool
}

// NewTracker creates a tracker with every button released.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update records the raw button states for a tick of elapsedMs and returns
// the resulting snapshot. A button that goes down during a tick is assumed
// to have been held for that whole tick.
func (t *Tracker) Update(raw [ButtonCount]bool, elapsedMs float64) Snapshot {
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	var s Snapshot
	for i := range raw {
		if !raw[i] {
			t.down[i] = false
			t.held[i] = 0
			continue
		}
		if !t.down[i] {
			t.down[i] = true
			t.held[i] = 0
		}
		t.held[i] += elapsedMs
		s.Buttons[i] = Button{
			IsDown:      true,
			HeldMs:      t.held[i],
			JustPressed: inWindow(t.held[i]),
		}
	}
	return s
}

// Reset releases every button.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
