// Package playing provides the sandbox gameplay scene: one level, the
// player state machine and its collaborators, drawn as flat rectangles.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/kickrun/internal/application/input"
	"github.com/younwookim/kickrun/internal/application/player"
	"github.com/younwookim/kickrun/internal/application/replay"
	"github.com/younwookim/kickrun/internal/application/scene"
	"github.com/younwookim/kickrun/internal/application/state"
	"github.com/younwookim/kickrun/internal/domain/entity"
	"github.com/younwookim/kickrun/internal/infrastructure/config"
	"github.com/younwookim/kickrun/internal/infrastructure/settings"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorWall       = color.RGBA{80, 80, 100, 255}
	colorPlatform   = color.RGBA{140, 120, 80, 255}
	colorSpike      = color.RGBA{200, 50, 50, 255}
	colorHeat       = color.RGBA{230, 120, 30, 255}
	colorSoft       = color.RGBA{150, 110, 70, 255}
	colorHard       = color.RGBA{110, 110, 130, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorAttacking  = color.RGBA{140, 230, 255, 255}
	colorHurt       = color.RGBA{255, 255, 255, 220}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorStunned    = color.RGBA{255, 255, 255, 255}
	colorHitbox     = color.RGBA{255, 220, 0, 110}
	colorBeam       = color.RGBA{255, 80, 200, 160}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorCheckpoint = color.RGBA{90, 160, 255, 255}
)

var pickupColors = map[entity.PickupKind]color.RGBA{
	entity.PickupHealth:     {230, 70, 90, 255},
	entity.PickupLaser:      {255, 80, 200, 255},
	entity.PickupDoubleJump: {120, 220, 255, 255},
	entity.PickupSpeedUp:    {255, 230, 60, 255},
	entity.PickupCheckpoint: colorCheckpoint,
}

// Screen shake per event, in pixels, eased out to zero over shakeSeconds.
const (
	shakeHurt    = 4.0
	shakeBreak   = 2.0
	shakeDeath   = 6.0
	shakeSeconds = 0.3

	toastTicks = 90
)

// Playing is the sandbox gameplay scene. It either reads the keyboard or
// plays back a recorded session; both feed the same World.
type Playing struct {
	config  *config.GameConfig
	world   *World
	state   state.GameState
	screenW int
	screenH int

	keyboard *input.Keyboard
	replayer *replay.Replayer
	prev     input.Snapshot

	// Feedback
	shake   float64
	shakeTw *gween.Tween
	toast   string
	toastAt entity.Deadline
	clock   entity.Clock
	lastCue string
	muted   bool

	showHitboxes bool

	// Screen shake jitter is the only randomness; the seed is recorded so
	// a replay shakes the same way.
	rng  *rand.Rand
	seed int64

	recorder       *Recorder
	recordFilename string
}

// New creates a keyboard-driven scene on level. If recordPath is not
// empty, every tick's buttons are recorded and saved there.
func New(cfg *config.GameConfig, level Level, recordPath string) (*Playing, error) {
	p, err := newPlaying(cfg, level, time.Now().UnixNano())
	if err != nil {
		return nil, err
	}
	p.keyboard = input.NewKeyboard(input.DefaultBindings())
	p.state = state.StatePlaying

	if recordPath != "" {
		p.recordFilename = recordPath
		p.recorder = NewRecorder(p.seed, level.Name)
		log.Printf("[playing] recording enabled: %s (seed: %d)", recordPath, p.seed)
	}
	return p, nil
}

// NewReplay creates a scene that plays back data on level.
func NewReplay(cfg *config.GameConfig, level Level, data replay.ReplayData) (*Playing, error) {
	p, err := newPlaying(cfg, level, data.Seed)
	if err != nil {
		return nil, err
	}
	p.replayer = replay.NewReplayer(data)
	p.state = state.StateReplay
	log.Printf("[playing] replaying %d frames on %s (seed: %d)", len(data.Frames), level.Name, data.Seed)
	return p, nil
}

func newPlaying(cfg *config.GameConfig, level Level, seed int64) (*Playing, error) {
	world, err := NewWorld(cfg, level)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.Name, err)
	}
	return &Playing{
		config:  cfg,
		world:   world,
		screenW: cfg.Physics.Display.ScreenWidth,
		screenH: cfg.Physics.Display.ScreenHeight,
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
	}, nil
}

// World returns the simulated world.
func (p *Playing) World() *World { return p.world }

// State returns the scene state.
func (p *Playing) State() state.GameState { return p.state }

// Muted reports whether event cues are silenced.
func (p *Playing) Muted() bool { return p.muted }

// LastCue returns the sound cue of the latest event, empty while muted.
func (p *Playing) LastCue() string { return p.lastCue }

// ApplySettings restores saved preferences.
func (p *Playing) ApplySettings(s settings.Settings) {
	p.muted = s.Muted
	p.showHitboxes = s.ShowHitboxes
}

// Settings returns the current preferences for saving.
func (p *Playing) Settings() settings.Settings {
	return settings.Settings{Muted: p.muted, ShowHitboxes: p.showHitboxes}
}

// Update advances the scene by one tick (implements scene.Scene).
func (p *Playing) Update(elapsedMs float64) (scene.Scene, error) {
	p.handleDebugKeys()
	p.clock.Advance(elapsedMs)

	in, ms, ok := p.poll(elapsedMs)
	if !ok {
		p.state = state.StateGameOver
		log.Printf("[playing] replay finished after %d frames", p.replayer.TotalFrames())
		return nil, nil
	}
	if p.recorder != nil && p.state != state.StateGameOver {
		p.recorder.RecordFrame(in.Raw(), ms)
	}
	p.step(in, ms)
	return nil, nil // nil = stay on this scene
}

// poll reads this tick's buttons from the replay or the keyboard. It
// reports false once a replay has run out of frames.
func (p *Playing) poll(elapsedMs float64) (input.Snapshot, float64, bool) {
	if p.replayer == nil {
		return p.keyboard.Poll(elapsedMs), elapsedMs, true
	}
	if p.state == state.StateGameOver {
		return input.Snapshot{}, 0, true
	}
	return p.replayer.Next()
}

// step applies one tick of input. Live and replayed sessions both go
// through here, so recorded pause and mute presses replay too.
func (p *Playing) step(in input.Snapshot, ms float64) {
	defer func() { p.prev = in }()

	switch p.state {
	case state.StateGameOver:
		if p.replayer == nil && p.pressed(in, input.Jump) {
			p.restart()
		}
		return
	case state.StatePaused:
		if p.pressed(in, input.Pause) {
			p.state = p.running()
		}
		return
	}

	if p.pressed(in, input.Pause) {
		p.state = state.StatePaused
		return
	}
	if p.pressed(in, input.Mute) {
		p.muted = !p.muted
		p.lastCue = ""
	}

	p.react(p.world.Step(in, ms))
	p.settleShake(ms)

	switch {
	case p.world.GameOver():
		p.state = state.StateGameOver
		p.saveRecording()
	case p.world.Respawning():
		p.state = state.StateDying
	default:
		p.state = p.running()
	}
}

// running is the state a live or replayed session returns to.
func (p *Playing) running() state.GameState {
	if p.replayer != nil {
		return state.StateReplay
	}
	return state.StatePlaying
}

// pressed reports a press edge, once per physical press.
func (p *Playing) pressed(in input.Snapshot, id input.ButtonID) bool {
	return in.Down(id) && !p.prev.Down(id)
}

// react turns player events into screen feedback.
func (p *Playing) react(events []player.Event) {
	for _, e := range events {
		switch e.Kind {
		case player.EventHurt:
			p.startShake(shakeHurt)
		case player.EventTileBroken, player.EventEnemyHit:
			p.startShake(max(p.shake, shakeBreak))
		case player.EventDeath:
			p.startShake(shakeDeath)
		case player.EventPickup:
			p.showToast(pickupToast(e.Pickup))
		}
		if !p.muted {
			p.lastCue = cue(e)
		}
	}
}

func (p *Playing) startShake(amount float64) {
	p.shake = amount
	p.shakeTw = gween.New(float32(amount), 0, shakeSeconds, ease.OutQuad)
}

func (p *Playing) settleShake(ms float64) {
	if p.shakeTw == nil {
		return
	}
	v, done := p.shakeTw.Update(float32(ms / 1000))
	p.shake = float64(v)
	if done {
		p.shake = 0
		p.shakeTw = nil
	}
}

func (p *Playing) showToast(msg string) {
	p.toast = msg
	p.toastAt.Arm(p.clock.Now(), toastTicks)
}

// cue names the sound an event would play.
func cue(e player.Event) string {
	switch e.Kind {
	case player.EventHurt:
		return "hurt_" + e.Cause.String()
	case player.EventPickup:
		return "pickup_" + e.Pickup.String()
	case player.EventEnemyHit, player.EventRebound:
		return e.Kind.String() + "_" + e.Move.String()
	default:
		return e.Kind.String()
	}
}

func pickupToast(kind entity.PickupKind) string {
	switch kind {
	case entity.PickupLaser:
		return "LASER! hold down in the air"
	case entity.PickupDoubleJump:
		return "DOUBLE JUMP!"
	case entity.PickupSpeedUp:
		return "SPEED UP!"
	case entity.PickupCheckpoint:
		return "checkpoint"
	default:
		return strings.ToUpper(kind.String())
	}
}

// handleDebugKeys reads keys that sit outside the logical button set.
func (p *Playing) handleDebugKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		p.showHitboxes = !p.showHitboxes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) && p.replayer == nil {
		p.restart()
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("[playing] failed to save recording: %v", err)
	} else {
		log.Printf("[playing] recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

func (p *Playing) restart() {
	if err := p.world.Restart(); err != nil {
		log.Printf("[playing] restart failed: %v", err)
		return
	}
	p.seed = time.Now().UnixNano()
	p.rng = rand.New(rand.NewSource(p.seed))
	p.shake = 0
	p.shakeTw = nil
	p.toastAt.Clear()
	p.state = state.StatePlaying
	if p.keyboard != nil {
		p.keyboard.Reset()
	}

	if p.recordFilename != "" {
		p.recorder = NewRecorder(p.seed, p.world.Level().Name)
		log.Printf("[playing] recording restarted (seed: %d)", p.seed)
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera()

	p.drawTiles(screen, camX, camY)
	p.drawPickups(screen, camX, camY)
	p.drawEnemies(screen, camX, camY)
	p.drawPlayer(screen, camX, camY)
	if p.showHitboxes {
		p.drawHitboxes(screen, camX, camY)
	}

	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		if p.replayer != nil {
			p.drawOverlay(screen, color.RGBA{0, 0, 60, 160}, "REPLAY FINISHED")
		} else {
			p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, "GAME OVER\n\nPress Z to restart")
		}
	}
}

// camera returns the top-left world pixel shown, centered on the player,
// clamped to the stage and jittered by screen shake.
func (p *Playing) camera() (float64, float64) {
	b := p.world.Player.Body
	camX := b.X - float64(p.screenW)/2
	camY := b.Y - float64(p.screenH)/2

	if p.shake > 0.5 {
		camX += p.shake * (2*p.rng.Float64() - 1)
		camY += p.shake * (2*p.rng.Float64() - 1)
	}

	maxCamX := float64(p.world.Stage.PixelWidth() - p.screenW)
	maxCamY := float64(p.world.Stage.PixelHeight() - p.screenH)
	camX = min(max(camX, 0), max(maxCamX, 0))
	camY = min(max(camY, 0), max(maxCamY, 0))
	return camX, camY
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY float64) {
	stage := p.world.Stage
	size := stage.TileSize
	startTileX := int(camX) / size
	startTileY := int(camY) / size
	endTileX := (int(camX)+p.screenW)/size + 1
	endTileY := (int(camY)+p.screenH)/size + 1

	for ty := startTileY; ty <= endTileY && ty < stage.Height; ty++ {
		for tx := startTileX; tx <= endTileX && tx < stage.Width; tx++ {
			tile := stage.GetTile(tx, ty)
			if tile.Type == entity.TileEmpty {
				continue
			}

			x := float64(tx*size) - camX
			y := float64(ty*size) - camY
			w, h := float64(size), float64(size)

			var c color.Color
			switch tile.Type {
			case entity.TileWall:
				c = colorWall
			case entity.TilePlatform:
				c = colorPlatform
				h = 4
			case entity.TileSpike:
				c = colorSpike
			case entity.TileHeat:
				c = colorHeat
			case entity.TileSoft:
				c = colorSoft
			case entity.TileHard:
				c = colorHard
			}

			ebitenutil.DrawRect(screen, x, y, w, h, c)
		}
	}
}

func (p *Playing) drawPickups(screen *ebiten.Image, camX, camY float64) {
	for _, pu := range p.world.Enemies.Pickups() {
		if !pu.Active {
			continue
		}
		b := pu.Bounds()
		ebitenutil.DrawRect(screen, b.X-camX, b.Y-camY, b.W, b.H, pickupColors[pu.Kind()])
	}

	// Respawn point marker
	cx, cy := p.world.Checkpoint()
	ebitenutil.DrawRect(screen, cx-1-camX, cy-12-camY, 2, 24, colorCheckpoint)
}

func (p *Playing) drawEnemies(screen *ebiten.Image, camX, camY float64) {
	for _, enemy := range p.world.Enemies.Enemies() {
		if !enemy.IsAlive() {
			continue
		}

		c := colorEnemy
		if enemy.HitTimer > 0 {
			c = colorStunned
		}

		b := enemy.Bounds()
		ebitenutil.DrawRect(screen, b.X-camX, b.Y-camY, b.W, b.H, c)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, camX, camY float64) {
	pl := p.world.Player
	if pl.Blink() {
		return
	}

	c := colorPlayer
	switch {
	case pl.Action() == player.ActionHurt, pl.Dead():
		c = colorHurt
	case pl.Move() != player.Idle:
		c = colorAttacking
	}

	b := pl.Body.Bounds()
	ebitenutil.DrawRect(screen, b.X-camX, b.Y-camY, b.W, b.H, c)

	// Eye on the facing side
	eyeX := b.X + b.W - 4
	if pl.FlipX() {
		eyeX = b.X + 1
	}
	ebitenutil.DrawRect(screen, eyeX-camX, b.Y+4-camY, 3, 3, colorBG)
}

func (p *Playing) drawHitboxes(screen *ebiten.Image, camX, camY float64) {
	for _, hb := range p.world.Player.Hitboxes() {
		c := colorHitbox
		if hb.Kind == entity.HitboxBeam {
			c = colorBeam
		}
		r := hb.Rect
		ebitenutil.DrawRect(screen, r.X-camX, r.Y-camY, r.W, r.H, c)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	pl := p.world.Player

	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)

	healthRatio := 0.0
	if maxHP := pl.Config().Health.MaxHP; maxHP > 0 {
		healthRatio = max(pl.HP/maxHP, 0)
	}
	ebitenutil.DrawRect(screen, barX, barY, barW*healthRatio, barH, colorHealthFG)
	if w := flipBarWidth(pl, barW); w > 0 {
		ebitenutil.DrawRect(screen, barX, barY+barH+2, w, 2, colorAttacking)
	}

	status := fmt.Sprintf("Lives: %d  %s  %s", p.world.Lives(), pl.Action(), upgradeText(pl.Upgrades))
	if p.muted {
		status += "  [muted]"
	} else if p.lastCue != "" {
		status += "  ~" + p.lastCue
	}
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-35)

	if p.toastAt.Pending(p.clock.Now()) {
		ebitenutil.DebugPrintAt(screen, p.toast, p.screenW/2-len(p.toast)*3, 20)
	}

	if p.state == state.StateReplay {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("REPLAY %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames()), p.screenW-110, 4)
	}

	debugText := "Arrows: Move | Z: Jump | X: Attack | ESC: Pause | M: Mute | F1: Hitboxes"
	ebitenutil.DebugPrint(screen, debugText)
}

// flipBarWidth scales full by the flip arc progress, zero outside a flip.
func flipBarWidth(pl *player.Player, full float64) float64 {
	if pl.Move() != player.Flipping {
		return 0
	}
	return full * pl.FlipProgress()
}

func upgradeText(u player.Upgrades) string {
	var parts []string
	if u.Laser {
		parts = append(parts, "laser")
	}
	if u.DoubleJump {
		parts = append(parts, "2jump")
	}
	if u.SpeedUp {
		parts = append(parts, "speed")
	}
	return strings.Join(parts, " ")
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	log.Printf("[playing] entering %s", p.world.Level().Name)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
