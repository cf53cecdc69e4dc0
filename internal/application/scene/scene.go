// Package scene defines the Scene interface for game screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one game screen. The game loop delegates Update and Draw to the
// current scene; returning a non-nil Scene from Update switches to it.
type Scene interface {
	// Update advances the scene by elapsedMs of wall time (one logic tick,
	// normally 16ms). A non-nil error terminates the game.
	Update(elapsedMs float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced or the game closes.
	OnExit()
}
