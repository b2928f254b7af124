package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

// Model is the Bubble Tea model for running a game. It also hosts the
// scoreboard overlay opened with Tab.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	scoreboard *ScoreboardModel
	logger     *log.Logger
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		logger:     log.Default().WithPrefix("tui"),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.Press(msg, now, &m.inputFrame)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionScoreboard {
		m.inputFrame.Unset(core.ActionScoreboard)
		m.keys.Release()
		sb := newEmbeddedScoreboard(m.store, m.game.ID(), m.config.Player, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
	}

	return m, nil
}

// updateScoreboard forwards input to the open scoreboard.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}

	switch {
	case sb.IsQuitting():
		m.scoreboard = nil
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		// Drop the gap so the game does not see it as one long frame.
		m.lastTick = time.Time{}
	default:
		m.scoreboard = &sb
	}
	return m, cmd
}

// handleResize processes window resize events. Games that can follow a
// resize keep their session; others are reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	if m.scoreboard != nil {
		m.scoreboard.resize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		return m, tickCmd(m.config.TickRate)
	}

	elapsed := elapsedSince(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	m.keys.Apply(now, &m.inputFrame)

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame, elapsed)
	m.gameState = result.State

	// A restart happened inside the game
	if wasOver && !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished session. Failures are logged and the
// game continues.
func (m Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	_, err := m.store.SaveScore(m.game.ID(), m.config.Player, m.gameState.Score, m.gameState.Wave)
	if err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "score", m.gameState.Score, "err", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "player", m.config.Player,
		"score", m.gameState.Score, "wave", m.gameState.Wave)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".asteroids", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
