package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

var (
	flagSimTicks    int
	flagSimConfig   string
	flagSimDiff     string
	flagSimFireGap  int
	flagSimRestarts int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot session",
	Long: `Run the simulation without a terminal. An autopilot turns toward the
nearest asteroid and fires. The same seed always produces the same run,
so the printed state hash can be compared across builds.

Examples:
  asteroids sim
  asteroids sim --ticks 36000 --seed 42
  asteroids sim --restarts 3 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().IntVar(&flagSimFireGap, "fire-every", 10, "Ticks between autopilot shots")
	simCmd.Flags().IntVar(&flagSimRestarts, "restarts", 0, "Sessions to restart after game over")
}

// cueCounter tallies audio cues.
type cueCounter map[sim.SoundKind]int

func (c cueCounter) Play(ev sim.AudioEvent) {
	c[ev.Kind]++
}

// waveLogger logs session progress from snapshots.
type waveLogger struct {
	last sim.GameState
}

func (w *waveLogger) Present(s sim.Snapshot) {
	st := s.State
	switch {
	case st.Phase != w.last.Phase:
		log.Debug("phase change", "tick", s.Tick, "phase", st.Phase, "score", st.Score)
	case st.Wave != w.last.Wave:
		log.Info("wave", "tick", s.Tick, "wave", st.Wave, "score", st.Score, "lives", st.Lives)
	}
	w.last = st
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadAsteroids(flagSimConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagSimDiff != "" {
		preset, ok := config.ParsePreset(flagSimDiff)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", flagSimDiff)
		}
		config.ApplyAsteroidsPreset(&cfg, preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := max(flagFPS, 1)
	frame := time.Second / time.Duration(fps)

	cues := cueCounter{}
	s := sim.New(cfg, rand.New(rand.NewSource(seed)), cues, &waveLogger{})
	pilot := autopilot{fireEvery: max(flagSimFireGap, 1)}

	restarts := flagSimRestarts
	best := 0
	ran := 0
	for tick := range flagSimTicks {
		st := s.State()
		if st.Phase == sim.PhaseGameOver {
			best = max(best, st.Score)
			if restarts == 0 {
				break
			}
			restarts--
			s.Restart()
		} else {
			pilot.control(s, s.Snapshot(), tick)
		}
		s.Tick(frame)
		ran++
	}

	snap := s.Snapshot()
	best = max(best, snap.State.Score)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed:      %d\n", seed)
	fmt.Fprintf(out, "ticks:     %d (%s simulated)\n", ran, snap.Time.Round(time.Millisecond))
	fmt.Fprintf(out, "phase:     %s\n", snap.State.Phase)
	fmt.Fprintf(out, "score:     %d (best %d)\n", snap.State.Score, best)
	fmt.Fprintf(out, "wave:      %d\n", snap.State.Wave)
	fmt.Fprintf(out, "lives:     %d\n", snap.State.Lives)
	fmt.Fprintf(out, "asteroids: %d  saucers: %d\n", len(snap.Asteroids), len(snap.Saucers))
	fmt.Fprintf(out, "shots:     %d  explosions: %d\n", cues[sim.SoundFire], cues[sim.SoundExplosion])
	fmt.Fprintf(out, "hash:      %016x\n", snap.Hash())
	return nil
}

// autopilot aims at the nearest asteroid along the wrapped playfield.
type autopilot struct {
	fireEvery int
}

func (a autopilot) control(s *sim.Sim, snap sim.Snapshot, tick int) {
	if snap.State.Phase == sim.PhaseNotStarted {
		s.Start()
		return
	}
	if !snap.HasShip || len(snap.Asteroids) == 0 {
		s.Rotate(sim.RotateNone)
		return
	}

	ship := snap.Ship
	nearest := snap.World.Delta(ship.Pos, snap.Asteroids[0].Pos)
	for _, ast := range snap.Asteroids[1:] {
		if d := snap.World.Delta(ship.Pos, ast.Pos); d.Len() < nearest.Len() {
			nearest = d
		}
	}

	diff := math.Remainder(nearest.Angle()-ship.Heading, 2*math.Pi)
	switch {
	case diff > 0.05:
		s.Rotate(sim.RotateRight)
	case diff < -0.05:
		s.Rotate(sim.RotateLeft)
	default:
		s.Rotate(sim.RotateNone)
	}

	if math.Abs(diff) < 0.3 && tick%a.fireEvery == 0 {
		s.Fire()
	}
}
