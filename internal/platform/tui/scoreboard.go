package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 50  // Below this the date column is dropped
	maxScores     = 100 // Max scores to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
// Embedded in a game session it reports Back and Quit through its
// accessors instead of ending the program.
type ScoreboardModel struct {
	gameID    string
	title     string
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	player    string // highlighted in the table
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	embedded  bool
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model for one game.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		gameID: gameID,
		title:  title,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Reload()
	return m
}

// newEmbeddedScoreboard creates a scoreboard shown inside a game session.
func newEmbeddedScoreboard(store *storage.Store, gameID, player string, width, height int) ScoreboardModel {
	m := NewScoreboardModel(store, gameID, width, height)
	m.embedded = true
	m.player = player
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Wave", Width: 5},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if tableWidth >= tableMinWidth {
		columns = append(columns, table.Column{Title: "Date", Width: min(tableWidth-42, 14)})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, stats, and help
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Reload fetches scores and stats from the store.
func (m *ScoreboardModel) Reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil {
		if scores, err := m.store.TopScores(m.gameID, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(m.gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	withDate := len(m.table.Columns()) > 4
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if m.player != "" && player == m.player {
			player = "* " + player
		}
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Wave),
		}
		if withDate {
			row = append(row, s.CreatedAt.Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, m.exit()

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.table = m.createTable()
	m.updateTableRows()
	m.help.Width = width
}

func (m ScoreboardModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if !m.embedded && (m.quitting || m.goingBack) {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("HIGH SCORES - "+m.title, m.width)))
	b.WriteString("\n\n")

	if line := m.statsLine(); line != "" {
		statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		b.WriteString(statsStyle.Render(centerText(line, m.width)))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes all recorded games.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games  %d players  best wave %d  avg %.0f",
		m.stats.GamesCount, m.stats.Players, m.stats.BestWave, m.stats.AvgScore)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to leave the scoreboard.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// RunScoreboard runs the scoreboard screen as its own program.
func RunScoreboard(store *storage.Store, gameID string, width, height int) error {
	model := NewScoreboardModel(store, gameID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
