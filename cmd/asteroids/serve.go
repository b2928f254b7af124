package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/platform/spectate"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagSpectateAddr  string
	flagSpectateEvery int
	flagServeConfig   string
	flagServeDiff     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Asteroids SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. The SSH user name is recorded
with the score, and all users share the same leaderboard.

With --spectate, every running game is also streamed to WebSocket
watchers at ws://<addr>/ws as msgpack frames.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.asteroids/host_key

Examples:
  asteroids serve                           # Listen on :23234 with auto-generated key
  asteroids serve --ssh :2222               # Listen on port 2222
  asteroids serve --host-key ./my_host_key  # Use specific host key
  asteroids serve --spectate :8080          # Also stream games to watchers

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagSpectateAddr, "spectate", "", "Serve the spectator feed on this address")
	serveCmd.Flags().IntVar(&flagSpectateEvery, "spectate-every", 3, "Publish every nth tick to spectators")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) error {
	asteroids.SetConfigPath(flagServeConfig)
	asteroids.SetDifficultyPreset(flagServeDiff)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	if flagSpectateAddr != "" {
		hub := spectate.NewHub()
		go hub.Run(ctx)

		cfg.OnSession = func(user string, game registry.Game) func() {
			g, ok := game.(*asteroids.Game)
			if !ok {
				return nil
			}
			feed := hub.Feed(user, flagSpectateEvery)
			g.Observe(feed)
			return feed.Close
		}

		httpSrv := &http.Server{
			Addr:              flagSpectateAddr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info("starting spectator feed", "address", flagSpectateAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("spectator feed stopped", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutdownCtx)
		}()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Asteroids SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
