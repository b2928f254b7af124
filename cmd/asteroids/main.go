// asteroids is a terminal Asteroids game with local play, an SSH server,
// and a headless simulation runner.
//
// Usage:
//
//	asteroids play             - Play in this terminal
//	asteroids serve            - Start SSH server for remote play
//	asteroids scores           - Show high scores
//	asteroids sim              - Run a headless autopilot session
//	asteroids config           - Print or check game configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.asteroids/scores.db)
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logCloser is the open log file, if any.
var logCloser io.Closer

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids - a toroidal space shooter in your terminal",
	Long: `Asteroids is a terminal version of the vector arcade classic.
Rotate, thrust and shoot your way through waves of splitting rocks
while saucers hunt you across the wrapping playfield.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run a headless autopilot session
  config   - Print or check game configuration

Examples:
  asteroids play
  asteroids play --difficulty hard
  asteroids serve --ssh :2222 --spectate :8080
  asteroids scores
  asteroids sim --ticks 3600 --seed 7`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.asteroids/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging installs the default logger. The full-screen play command
// logs nowhere unless a file is given.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logCloser = f
		out = f
	case cmd.Name() == playCmd.Name():
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          asteroids.GameID,
		Level:           level,
	})
	log.SetDefault(logger)
	return nil
}
