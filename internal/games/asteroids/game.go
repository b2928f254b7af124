// Package asteroids adapts the simulation core to the platform's Game
// interface: it maps input frames onto the control contract, forwards
// wall-clock time, and draws snapshots into a character screen.
package asteroids

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

// GameID is the registry and score-storage identifier.
const GameID = "asteroids"

// Minimum playable terminal size.
const (
	minScreenW = 30
	minScreenH = 12
	hudRows    = 1
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// defaultAudio is handed to every new session unless overridden.
var defaultAudio sim.AudioSink = sim.NopAudio{}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetAudioSink sets the sink used by games created afterwards.
func SetAudioSink(a sim.AudioSink) {
	if a == nil {
		a = sim.NopAudio{}
	}
	defaultAudio = a
}

// Game implements registry.Game on top of sim.Sim.
type Game struct {
	sim     *sim.Sim
	cfg     config.AsteroidsConfig
	runtime core.RuntimeConfig
	audio   sim.AudioSink
	logger  *log.Logger

	last      sim.Snapshot
	observers []sim.RenderSink
	paused    bool
	frame     uint64 // render frames, drives blinking

	screenTooSmall bool
}

// New creates a new Asteroids game instance.
func New() *Game {
	return &Game{
		audio:  defaultAudio,
		logger: log.Default().WithPrefix(GameID),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Asteroids" }

// Observe adds a read-only consumer of every snapshot, such as a
// spectator feed. Observers survive Reset.
func (g *Game) Observe(o sim.RenderSink) {
	g.observers = append(g.observers, o)
}

// SetAudio replaces the audio sink for this instance. It takes effect on
// the next Reset.
func (g *Game) SetAudio(a sim.AudioSink) {
	if a == nil {
		a = sim.NopAudio{}
	}
	g.audio = a
}

// Reset builds a fresh simulation waiting for the start trigger.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadAsteroids(configPath)
	if err != nil {
		g.logger.Warn("config rejected, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultAsteroidsConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyAsteroidsPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.sim = sim.New(cfg, rand.New(rand.NewSource(runtime.Seed)), g.audio, g)
	g.paused = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)
	g.last = g.sim.Snapshot()
}

// Resize follows a terminal resize. Only the presentation changes.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	g.screenTooSmall = screenW < minScreenW || screenH < minScreenH

	vp := sim.Viewport{Width: screenW, Height: max(screenH-hudRows, 0)}
	g.last.Viewport = vp
	if g.sim != nil {
		g.sim.SetViewport(vp)
	}
}

// Present implements sim.RenderSink. It keeps the latest snapshot for
// Render and forwards it to observers.
func (g *Game) Present(snap sim.Snapshot) {
	prev := g.last.State
	g.last = snap

	if prev.Phase != snap.State.Phase {
		g.logger.Debug("phase change", "from", prev.Phase, "to", snap.State.Phase,
			"score", snap.State.Score, "wave", snap.State.Wave)
	} else if prev.Wave != snap.State.Wave {
		g.logger.Debug("wave cleared", "wave", snap.State.Wave, "score", snap.State.Score)
	}

	for _, o := range g.observers {
		o.Present(snap)
	}
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	phase := g.last.State.Phase

	// Handle pause toggle
	if in.Has(core.ActionPause) && phase == sim.PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	g.sim.Rotate(rotation(in))
	g.sim.SetThrusting(in.Has(core.ActionThrust))

	switch phase {
	case sim.PhaseNotStarted:
		if in.Has(core.ActionStart) || in.Has(core.ActionFire) {
			g.sim.Start()
		}
	case sim.PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.sim.Restart()
		}
	default:
		if in.Has(core.ActionFire) {
			g.sim.Fire()
		}
	}

	g.sim.Tick(elapsed)
	return core.StepResult{State: g.State()}
}

// rotation resolves the held rotate actions. The key mapper already keeps
// only the most recent direction; if both still arrive they cancel.
func rotation(in core.InputFrame) sim.RotateDir {
	left, right := in.Has(core.ActionRotateLeft), in.Has(core.ActionRotateRight)
	switch {
	case left && !right:
		return sim.RotateLeft
	case right && !left:
		return sim.RotateRight
	default:
		return sim.RotateNone
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.last.State
	return core.GameState{
		Score:    st.Score,
		Lives:    st.Lives,
		Wave:     st.Wave,
		Started:  st.Phase != sim.PhaseNotStarted,
		GameOver: st.Phase == sim.PhaseGameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the most recently presented snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.last
}

// Render draws the current state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.frame++

	// Check for screen too small
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	snap := g.last
	if snap.State.Phase == sim.PhaseNotStarted {
		g.renderHUD(dst, snap)
		g.renderTitle(dst)
		return
	}

	field := newProjector(snap.World, snap.Viewport, hudRows)
	field.particles(dst, snap.Particles)
	field.asteroids(dst, snap.Asteroids)
	field.saucers(dst, snap.Saucers)
	field.bullets(dst, snap.Bullets, '•', core.ColorBrightWhite)
	field.bullets(dst, snap.SaucerBullets, '∙', core.ColorBrightRed)
	if snap.HasShip && snap.State.Phase == sim.PhasePlaying {
		// Blink while invulnerable
		if !snap.Ship.Invulnerable || g.frame%8 < 5 {
			field.ship(dst, snap.Ship)
		}
	}

	// Drawn last so field content never covers the HUD.
	g.renderHUD(dst, snap)
	g.renderOverlay(dst, snap)
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
