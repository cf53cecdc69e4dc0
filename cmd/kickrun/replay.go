package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/application/replay"
	"github.com/younwookim/kickrun/internal/application/scene/playing"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
)

// ReplayResult summarizes a headless replay.
type ReplayResult struct {
	Stage    string
	Frames   int
	Deaths   int
	Lives    int
	GameOver bool
	FinalX   float64
	FinalY   float64
	HP       float64
	Events   map[string]int
}

// String formats the summary for the terminal.
func (r ReplayResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stage %s: %d frames, %d deaths, %d lives left", r.Stage, r.Frames, r.Deaths, r.Lives)
	if r.GameOver {
		b.WriteString(" (game over)")
	}
	fmt.Fprintf(&b, "\nfinal position (%.1f, %.1f), hp %.0f", r.FinalX, r.FinalY, r.HP)

	kinds := make([]string, 0, len(r.Events))
	for k := range r.Events {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "\n  %-12s %d", k, r.Events[k])
	}
	return b.String()
}

// RunReplay simulates a recorded session on level without a window.
// Pause frames are skipped the way the scene skips them.
func RunReplay(cfg *config.GameConfig, level playing.Level, data replay.ReplayData) (ReplayResult, error) {
	world, err := playing.NewWorld(cfg, level)
	if err != nil {
		return ReplayResult{}, err
	}

	result := ReplayResult{Stage: level.Name, Events: make(map[string]int)}
	replayer := replay.NewReplayer(data)
	paused := false
	var prevPause bool
	for !world.GameOver() {
		in, ms, ok := replayer.Next()
		if !ok {
			break
		}
		result.Frames++

		pause := in.Down(input.Pause)
		edge := pause && !prevPause
		prevPause = pause
		if edge {
			paused = !paused
			continue
		}
		if paused {
			continue
		}

		for _, e := range world.Step(in, ms) {
			result.Events[e.Kind.String()]++
		}
	}

	body := world.Player.Body
	result.Deaths = world.Deaths()
	result.Lives = world.Lives()
	result.GameOver = world.GameOver()
	result.FinalX, result.FinalY = body.X, body.Y
	result.HP = world.Player.HP
	return result, nil
}
