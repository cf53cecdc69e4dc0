// Package game adapts a Scene stack to ebiten.Game.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/kickrun/internal/application/scene"
	"github.com/younwookim/kickrun/internal/domain/entity"
)

// ErrQuit is returned by a scene to end the game without an error exit.
var ErrQuit = errors.New("quit")

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	tickMs  float64
}

// New creates a Game on the given initial scene and calls its OnEnter.
// Each Update advances the scene by one logic tick.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		tickMs:  entity.TickMs,
	}
	g.current.OnEnter()
	return g
}

// Update implements ebiten.Game. A scene returning ErrQuit gets its
// OnExit before ebiten is told to terminate.
func (g *Game) Update() error {
	next, err := g.current.Update(g.tickMs)
	if errors.Is(err, ErrQuit) {
		g.current.OnExit()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout implements ebiten.Game with a fixed logical screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetTickMs sets the elapsed time passed to the scene per update.
func (g *Game) SetTickMs(ms float64) {
	g.tickMs = ms
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}
