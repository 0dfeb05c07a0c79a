package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asteroid-dodger/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores = 100 // Max rows to load per board
	dateWidth = 14
)

// Board selects which leaderboard the scoreboard shows.
type Board int

const (
	BoardPilots Board = iota // Best score per pilot
	BoardRuns                // Individual runs
	boardCount
)

// String returns the board title.
func (b Board) String() string {
	switch b {
	case BoardPilots:
		return "Pilots"
	case BoardRuns:
		return "Top Runs"
	default:
		return "Unknown"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
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
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "m"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the pilot leaderboard and the best individual runs.
// It can run as its own program or be embedded in the game model.
type ScoreboardModel struct {
	store     *storage.Store
	pilot     string // Highlighted in the pilots board and used for stats
	board     Board
	runs      []storage.Run
	pilots    []storage.PilotBest
	stats     *storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard and loads both boards.
func NewScoreboardModel(store *storage.Store, pilot string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		pilot:  pilot,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads every board from the store. A nil store shows empty boards.
func (m *ScoreboardModel) load() {
	m.runs, m.pilots, m.stats, m.loadErr = nil, nil, nil, nil
	if m.store == nil {
		return
	}

	var err error
	if m.pilots, err = m.store.TopPilots(maxScores); err != nil {
		m.loadErr = err
		return
	}
	if m.runs, err = m.store.TopRuns(maxScores); err != nil {
		m.loadErr = err
		return
	}
	if m.pilot != "" {
		if m.stats, err = m.store.Stats(m.pilot); err != nil {
			m.loadErr = err
		}
	}
}

// createTable creates a table with columns for the current board.
func (m *ScoreboardModel) createTable() table.Model {
	nameWidth := max(min(m.width-4-6-10-dateWidth-8, 24), 8)

	var columns []table.Column
	switch m.board {
	case BoardRuns:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Pilot", Width: nameWidth},
			{Title: "Score", Width: 10},
			{Title: "Ticks", Width: 8},
			{Title: "Date", Width: dateWidth},
		}
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Pilot", Width: nameWidth},
			{Title: "Best", Width: 10},
			{Title: "Updated", Width: dateWidth},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats, help
	)

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

// Rows returns the table rows for the current board.
func (m ScoreboardModel) Rows() []table.Row {
	switch m.board {
	case BoardRuns:
		rows := make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			score := fmt.Sprintf("%d", r.Score)
			if r.Forced {
				score += "*"
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				r.Pilot,
				score,
				fmt.Sprintf("%d", r.Ticks),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	default:
		rows := make([]table.Row, len(m.pilots))
		for i, p := range m.pilots {
			name := p.Pilot
			if name == m.pilot {
				name = "> " + name
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				name,
				fmt.Sprintf("%d", p.Score),
				p.UpdatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}
}

func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(m.Rows())
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchBoard(delta int) {
	m.board = Board((int(m.board) + delta + int(boardCount)) % int(boardCount))
	m.table = m.createTable()
	m.updateTableRows()
}

// Board returns the board being shown.
func (m ScoreboardModel) Board() Board {
	return m.board
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard. When embedded, the parent
// checks IsGoingBack and IsQuitting after each update.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextBoard):
			m.switchBoard(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.switchBoard(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES - "+m.board.String(), m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if line := m.statsLine(); line != "" {
		b.WriteString(dim.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, boardCount)
	for i := range boardCount {
		if i == m.board {
			tabs[i] = activeTabStyle.Render(i.String())
		} else {
			tabs[i] = tabStyle.Render(i.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	}
	if len(m.table.Rows()) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nDodge some rocks to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.RunsCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %d runs, best %d, avg %.0f, last %s",
		m.pilot, m.stats.RunsCount, m.stats.HighScore, m.stats.AvgScore,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// IsGoingBack returns true if user wants to go back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// standaloneScoreboard quits the program when the embedded board is done.
type standaloneScoreboard struct {
	ScoreboardModel
}

func (s standaloneScoreboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.ScoreboardModel.Update(msg)
	s.ScoreboardModel = next.(ScoreboardModel)
	if s.IsGoingBack() || s.IsQuitting() {
		return s, tea.Quit
	}
	return s, cmd
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(store *storage.Store, pilot string, width, height int) error {
	p := tea.NewProgram(
		standaloneScoreboard{NewScoreboardModel(store, pilot, width, height)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
