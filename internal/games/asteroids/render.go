package asteroids

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// Visual characters for rendering
const (
	AsteroidChar = '#'
	SaucerBody   = "<=>"
	ThrustChar   = '*'
	LifeChar     = '▲'
)

// shipGlyphs are indexed by heading octant, starting at +X and turning clockwise
// (screen Y grows downward).
var shipGlyphs = [8]rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}

// asteroidVertices is the number of points in an asteroid outline.
const asteroidVertices = 10

// projector maps world coordinates onto the playfield rows of the screen.
type projector struct {
	world  sim.World
	sx, sy float64
	top    int
}

func newProjector(w sim.World, vp sim.Viewport, top int) projector {
	p := projector{world: w, top: top}
	if w.W > 0 && w.H > 0 {
		p.sx = float64(vp.Width) / w.W
		p.sy = float64(vp.Height) / w.H
	}
	return p
}

// cell converts an unwrapped world point to a screen cell. Points off the
// field land outside the screen and are clipped by it.
func (p projector) cell(v core.Vec2) (int, int) {
	return int(math.Floor(v.X * p.sx)), p.top + int(math.Floor(v.Y*p.sy))
}

// ghosts returns the copies of a circle needed to draw it across seams.
func (p projector) ghosts(pos core.Vec2, r float64) []core.Vec2 {
	out := make([]core.Vec2, 0, 4)
	for _, dx := range []float64{-p.world.W, 0, p.world.W} {
		for _, dy := range []float64{-p.world.H, 0, p.world.H} {
			c := core.V(pos.X+dx, pos.Y+dy)
			if c.X+r < 0 || c.X-r >= p.world.W || c.Y+r < 0 || c.Y-r >= p.world.H {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

func (p projector) plot(dst *core.Screen, v core.Vec2, r rune, c core.Color) {
	x, y := p.cell(v)
	dst.SetColored(x, y, r, c)
}

func (p projector) asteroids(dst *core.Screen, list []sim.AsteroidView) {
	for _, a := range list {
		outline := asteroidOutline(a)
		for _, center := range p.ghosts(a.Pos, a.Radius) {
			for i := range outline {
				v0 := center.Add(outline[i])
				v1 := center.Add(outline[(i+1)%len(outline)])
				x0, y0 := p.cell(v0)
				x1, y1 := p.cell(v1)
				dst.DrawLine(x0, y0, x1, y1, AsteroidChar, core.ColorGray)
			}
		}
	}
}

// asteroidOutline returns the jagged outline offsets for an asteroid.
// The same seed always yields the same shape.
func asteroidOutline(a sim.AsteroidView) []core.Vec2 {
	rng := rand.New(rand.NewSource(a.Seed))
	pts := make([]core.Vec2, asteroidVertices)
	for i := range pts {
		angle := float64(i) / asteroidVertices * 2 * math.Pi
		pts[i] = core.FromAngle(angle, a.Radius*(0.75+0.25*rng.Float64()))
	}
	return pts
}

func (p projector) saucers(dst *core.Screen, list []sim.SaucerView) {
	for _, s := range list {
		for _, c := range p.ghosts(s.Pos, s.Radius) {
			x, y := p.cell(c)
			dst.DrawTextColored(x-1, y, SaucerBody, core.ColorBrightGreen)
		}
	}
}

func (p projector) bullets(dst *core.Screen, list []core.Vec2, r rune, c core.Color) {
	for _, b := range list {
		p.plot(dst, b, r, c)
	}
}

func (p projector) particles(dst *core.Screen, list []sim.ParticleView) {
	for _, pt := range list {
		color := core.ColorDarkGray
		switch {
		case pt.Life > 0.6:
			color = core.ColorBrightYellow
		case pt.Life > 0.3:
			color = core.ColorOrange
		}
		p.plot(dst, pt.Pos, '·', color)
	}
}

func (p projector) ship(dst *core.Screen, s sim.ShipView) {
	if s.Thrusting {
		tail := s.Pos.Sub(core.FromAngle(s.Heading, s.Radius+1/max(p.sx, 1e-9)))
		p.plot(dst, p.world.Wrap(tail), ThrustChar, core.ColorOrange)
	}
	p.plot(dst, s.Pos, shipGlyph(s.Heading), core.ColorBrightCyan)
}

// shipGlyph picks the arrow closest to the heading.
func shipGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return shipGlyphs[octant]
}

// renderHUD draws the score, lives, and wave over a blanked top row.
func (g *Game) renderHUD(dst *core.Screen, snap sim.Snapshot) {
	dst.DrawRect(core.NewRect(0, 0, dst.Width(), hudRows), ' ')
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.State.Score), core.ColorBrightWhite)

	lives := strings.Repeat(string(LifeChar), max(snap.State.Lives, 0))
	dst.DrawTextCenteredColored(0, lives, core.ColorBrightCyan)

	waveText := fmt.Sprintf("Wave: %d", snap.State.Wave)
	dst.DrawTextColored(dst.Width()-len(waveText)-1, 0, waveText, core.ColorBrightWhite)
}

// renderTitle draws the start prompt.
func (g *Game) renderTitle(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-3, "A S T E R O I D S", core.ColorBrightYellow)
	dst.DrawTextCentered(mid-1, "Press ENTER to start")
	dst.DrawTextCenteredColored(mid+1, "←/→ rotate  ↑ thrust  SPACE fire", core.ColorGray)
	dst.DrawTextCenteredColored(mid+2, "P pause  TAB scores  Q quit", core.ColorGray)
}

// renderOverlay draws pause and game-over messages.
func (g *Game) renderOverlay(dst *core.Screen, snap sim.Snapshot) {
	mid := dst.Height() / 2
	switch {
	case snap.State.Phase == sim.PhaseGameOver:
		dst.DrawTextCenteredColored(mid-1, "GAME OVER", core.ColorBrightRed)
		dst.DrawTextCentered(mid, fmt.Sprintf("Score: %d  Wave: %d", snap.State.Score, snap.State.Wave))
		dst.DrawTextCenteredColored(mid+2, "Press R to restart", core.ColorGray)
	case g.paused:
		dst.DrawTextCenteredColored(mid, "PAUSED", core.ColorBrightYellow)
	}
}
