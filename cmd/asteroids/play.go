package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/audio"
	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Asteroids",
	Long: `Start a game in this terminal.

Controls:
  Left/A, Right/D   - Rotate
  Up/W              - Thrust
  Space             - Fire (also starts the game)
  Enter             - Start
  P/Esc             - Pause
  R                 - Restart (after game over)
  Tab               - High scores
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at lowest difficulty, extra lives, slower saucers
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, fewer lives, sharper saucers
  fixed  - No progression, stays at config's initial level

Examples:
  asteroids play
  asteroids play --difficulty easy
  asteroids play --mute
  asteroids play --config ./my-asteroids.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Master volume from 0 to 1")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded with your scores")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
	}

	width, height := terminalSize()

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagPlayer,
	}

	// Set config path and difficulty before creation
	asteroids.SetConfigPath(flagConfig)
	asteroids.SetDifficultyPreset(flagDifficulty)

	if !flagMute {
		player := audio.NewPlayer(flagVolume)
		if err := player.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			log.Warn("audio unavailable", "err", err)
		} else {
			asteroids.SetAudioSink(player)
			defer player.Close()
		}
	}

	game, err := registry.Create(asteroids.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
