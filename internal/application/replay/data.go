package replay

import "github.com/younwookim/kickrun/internal/application/input"

// Version is written into every recording.
const Version = "2.0"

// FrameInput records the raw button state and elapsed time of one tick
type FrameInput struct {
	F  int     `json:"f"`           // Frame number
	Ms float64 `json:"ms"`          // Elapsed milliseconds
	L  bool    `json:"l,omitempty"` // Left
	R  bool    `json:"r,omitempty"` // Right
	U  bool    `json:"u,omitempty"` // Up
	D  bool    `json:"d,omitempty"` // Down
	J  bool    `json:"j,omitempty"` // Jump
	A  bool    `json:"a,omitempty"` // Attack
	P  bool    `json:"p,omitempty"` // Pause
	M  bool    `json:"m,omitempty"` // Mute
}

// NewFrameInput packs a raw button array.
func NewFrameInput(frame int, raw [input.ButtonCount]bool, elapsedMs float64) FrameInput {
	return FrameInput{
		F:  frame,
		Ms: elapsedMs,
		L:  raw[input.Left],
		R:  raw[input.Right],
		U:  raw[input.Up],
		D:  raw[input.Down],
		J:  raw[input.Jump],
		A:  raw[input.Attack],
		P:  raw[input.Pause],
		M:  raw[input.Mute],
	}
}

// Raw unpacks the frame into a raw button array.
func (f FrameInput) Raw() [input.ButtonCount]bool {
	var raw [input.ButtonCount]bool
	raw[input.Left] = f.L
	raw[input.Right] = f.R
	raw[input.Up] = f.U
	raw[input.Down] = f.D
	raw[input.Jump] = f.J
	raw[input.Attack] = f.A
	raw[input.Pause] = f.P
	raw[input.Mute] = f.M
	return raw
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
