package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/younwookim/kickrun/internal/application/input"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data    ReplayData
	frame   int
	tracker *input.Tracker
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:    data,
		tracker: input.NewTracker(),
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeReplay(file)
}

// DecodeReplay reads replay JSON from r.
func DecodeReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// Next returns the snapshot and elapsed time of the current frame and
// advances. Held times are rebuilt from the recorded raw states, so
// playback sees the same short-press windows as the live session.
func (r *Replayer) Next() (input.Snapshot, float64, bool) {
	if r.frame >= len(r.data.Frames) {
		return input.Snapshot{}, 0, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return r.tracker.Update(fi.Raw(), fi.Ms), fi.Ms, true
}

// Done reports whether every frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Stage returns the stage the replay was recorded on.
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.tracker.Reset()
}

// CreateTestReplayData creates replay data for testing (idle player)
func CreateTestReplayData(frames int, elapsedMs float64) ReplayData {
	data := ReplayData{
		Version:   Version,
		Seed:      12345,
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i, Ms: elapsedMs}
	}

	return data
}

// RandomReplayData generates a seeded session of random gameplay buttons
// for property tests. Pause and mute are never pressed. Buttons tend to
// stay in their state for a few frames, as a human's would.
func RandomReplayData(seed int64, frames int, elapsed []float64) ReplayData {
	rng := rand.New(rand.NewSource(seed))
	data := ReplayData{
		Version: Version,
		Seed:    seed,
		Stage:   "random",
		Frames:  make([]FrameInput, frames),
	}

	var raw [input.ButtonCount]bool
	for i := 0; i < frames; i++ {
		for id := input.Left; id <= input.Attack; id++ {
			if rng.Intn(4) == 0 {
				raw[id] = !raw[id]
			}
		}
		ms := 16.0
		if len(elapsed) > 0 {
			ms = elapsed[rng.Intn(len(elapsed))]
		}
		data.Frames[i] = NewFrameInput(i, raw, ms)
	}
	return data
}
