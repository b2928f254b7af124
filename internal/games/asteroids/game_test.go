package asteroids

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

const frame = time.Second / 60

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func startedGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testRuntime())
	g.Step(frameWith(core.ActionStart), frame)
	if !g.State().Started {
		t.Fatal("game did not start")
	}
	return g
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("asteroids should register itself")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Asteroids" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Resizer); !ok {
		t.Error("asteroids should follow resizes without a reset")
	}
}

func TestGameStart(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	if g.State().Started {
		t.Fatal("a reset game should wait at the prompt")
	}
	g.Step(core.NewInputFrame(), frame)
	if g.State().Started {
		t.Fatal("an empty frame should not start the game")
	}

	result := g.Step(frameWith(core.ActionStart), frame)
	if !result.State.Started || result.State.Lives != 3 || result.State.Wave != 1 {
		t.Errorf("after start: %+v", result.State)
	}
}

func TestGamePause(t *testing.T) {
	g := startedGame(t)
	g.Step(frameWith(core.ActionThrust), frame)

	g.Step(frameWith(core.ActionPause), frame)
	if !g.State().Paused {
		t.Fatal("pause should toggle on")
	}
	tick := g.Snapshot().Tick
	for range 10 {
		g.Step(frameWith(core.ActionThrust), frame)
	}
	if g.Snapshot().Tick != tick {
		t.Error("paused frames must not advance the simulation")
	}

	g.Step(frameWith(core.ActionPause), frame)
	if g.State().Paused {
		t.Fatal("pause should toggle off")
	}
	g.Step(core.NewInputFrame(), frame)
	if g.Snapshot().Tick == tick {
		t.Error("simulation should resume after unpausing")
	}
}

func TestGameResizeKeepsWorld(t *testing.T) {
	g := startedGame(t)
	for range 30 {
		g.Step(frameWith(core.ActionRotateLeft, core.ActionThrust), frame)
	}
	before := g.Snapshot()

	g.Resize(120, 40)

	after := g.Snapshot()
	if after.World != before.World {
		t.Error("resize must not change the world")
	}
	if after.Tick != before.Tick || after.State != before.State {
		t.Error("resize must not reset the session")
	}
	if after.Viewport.Width != 120 || after.Viewport.Height != 40-hudRows {
		t.Errorf("viewport = %+v", after.Viewport)
	}

	g.Step(core.NewInputFrame(), frame)
	if g.Snapshot().Viewport.Width != 120 {
		t.Error("later snapshots should carry the new viewport")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() sim.Snapshot {
		g := New()
		g.Reset(testRuntime())
		g.Step(frameWith(core.ActionStart), frame)
		for i := range 600 {
			in := core.NewInputFrame()
			if i%50 < 20 {
				in.Set(core.ActionRotateRight)
			}
			if i%80 < 30 {
				in.Set(core.ActionThrust)
			}
			if i%9 == 0 {
				in.Set(core.ActionFire)
			}
			if g.State().GameOver {
				in.Set(core.ActionRestart)
			}
			g.Step(in, frame)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("same seed and inputs diverged: %d vs %d", a.Hash(), b.Hash())
	}
}

func TestRotation(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		want    sim.RotateDir
	}{
		{"none", nil, sim.RotateNone},
		{"left", []core.Action{core.ActionRotateLeft}, sim.RotateLeft},
		{"right", []core.Action{core.ActionRotateRight}, sim.RotateRight},
		{"both cancel", []core.Action{core.ActionRotateLeft, core.ActionRotateRight}, sim.RotateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rotation(frameWith(tt.actions...)); got != tt.want {
				t.Errorf("rotation = %v, expected %v", got, tt.want)
			}
		})
	}
}

type countingSink struct{ n int }

func (c *countingSink) Present(sim.Snapshot) { c.n++ }

func TestObserver(t *testing.T) {
	g := New()
	obs := &countingSink{}
	g.Observe(obs)
	g.Reset(testRuntime())

	for range 5 {
		g.Step(core.NewInputFrame(), frame)
	}
	if obs.n != 5 {
		t.Errorf("observer saw %d snapshots, expected 5", obs.n)
	}
}

func TestRenderTitle(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "A S T E R O I D S") || !strings.Contains(out, "Press ENTER") {
		t.Errorf("title screen missing prompt:\n%s", out)
	}
}

func TestRenderPlaying(t *testing.T) {
	g := startedGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.HasPrefix(screen.Row(0), " Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Wave: 1") {
		t.Errorf("HUD row should show the wave: %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), '^') {
		t.Error("ship should be drawn pointing up")
	}
	if !strings.ContainsRune(screen.String(), AsteroidChar) {
		t.Error("asteroids should be drawn")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.last = sim.Snapshot{
		World:    sim.World{W: 800, H: 600},
		Viewport: sim.Viewport{Width: 80, Height: 23},
		State:    sim.GameState{Score: 1200, Wave: 3, Phase: sim.PhaseGameOver},
	}
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Score: 1200  Wave: 3") {
		t.Errorf("game over overlay missing:\n%s", out)
	}
	if !g.State().GameOver {
		t.Error("State should report game over")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 20, 8
	g.Reset(rt)
	screen := core.NewScreen(20, 8)

	g.Step(frameWith(core.ActionStart), frame)
	g.Render(screen)

	if g.State().Started {
		t.Error("a too-small screen should hold the simulation")
	}
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small message")
	}
}

func TestAsteroidOutlineDeterministic(t *testing.T) {
	a := sim.AsteroidView{Radius: 40, Seed: 99}
	first, second := asteroidOutline(a), asteroidOutline(a)
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("outline must depend only on the seed")
		}
		if r := first[i].Len(); r < 30-1e-9 || r > 40+1e-9 {
			t.Errorf("vertex %d at radius %v, expected within [30, 40]", i, r)
		}
	}
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '>'},
		{1.5708, 'v'},
		{-1.5708, '^'},
		{3.1416, '<'},
		{-3.1416, '<'},
	}
	for _, tt := range tests {
		if got := shipGlyph(tt.heading); got != tt.want {
			t.Errorf("shipGlyph(%v) = %q, expected %q", tt.heading, got, tt.want)
		}
	}
}
