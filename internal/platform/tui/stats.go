package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

const maxStatsRows = 100

// StatsSource provides the records shown on the statistics screen.
type StatsSource interface {
	Stats(ctx context.Context) (storage.Stats, error)
	RecentGames(ctx context.Context, limit int) ([]storage.GameRecord, error)
	TopScores(ctx context.Context, limit int) ([]storage.GameRecord, error)
}

var _ StatsSource = (*storage.Store)(nil)

// statsView selects which records the table lists.
type statsView int

const (
	viewRecent statsView = iota
	viewTop
)

func (v statsView) String() string {
	if v == viewTop {
		return "Top scores"
	}
	return "Recent games"
}

// StatsKeyMap defines the key bindings for the statistics screen.
type StatsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Quit}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "recent/top"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the statistics screen.
type StatsModel struct {
	ctx      context.Context
	source   StatsSource
	view     statsView
	stats    storage.Stats
	records  []storage.GameRecord
	err      error
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a statistics screen and loads the recent games.
func NewStatsModel(ctx context.Context, source StatsSource, width, height int) StatsModel {
	m := StatsModel{
		ctx:    ctx,
		source: source,
		keys:   DefaultStatsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the window.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Max", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Board", Width: 5},
		{Title: "Result", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}

	height := m.height - 12 // Title, summary, help and borders
	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// load refreshes the summary and the records for the current view.
func (m *StatsModel) load() {
	m.err = nil
	m.records = nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	stats, err := m.source.Stats(m.ctx)
	if err != nil {
		m.err = err
		m.updateTableRows()
		return
	}
	m.stats = stats

	if m.view == viewTop {
		m.records, m.err = m.source.TopScores(m.ctx, maxStatsRows)
	} else {
		m.records, m.err = m.source.RecentGames(m.ctx, storage.DefaultRecentLimit)
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded records.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		result := "lost"
		if r.Won {
			result = "won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.MaxTile),
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%dx%d", r.Size, r.Size),
			result,
			r.Slot,
			r.FinishedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the statistics model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == viewRecent {
				m.view = viewTop
			} else {
				m.view = viewRecent
			}
			m.load()
			return m, nil
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

// View renders the statistics screen.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerText(titleStyle.Render("2048 STATISTICS - "+strings.ToUpper(m.view.String())), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderSummary(), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(panel.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSummary renders the totals line.
func (m StatsModel) renderSummary() string {
	st := m.stats
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Local().Format("Jan 02 15:04")
	}
	field := func(label string, value any) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(fmt.Sprint(value))
	}
	return strings.Join([]string{
		field("Games", st.TotalGames),
		field("Wins", st.TotalWins),
		field("Win rate", fmt.Sprintf("%d%%", st.WinRate)),
		field("Best", st.BestScore),
		field("Average", fmt.Sprintf("%.0f", st.AvgScore)),
		field("Last played", last),
	}, "  ")
}

// renderTableContent renders the table, an error, or an empty message.
func (m StatsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load games:\n" + m.err.Error())
	case len(m.records) == 0:
		return emptyStyle.Render("No games recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// RunStats runs the statistics screen.
func RunStats(ctx context.Context, source StatsSource, width, height int) error {
	p := tea.NewProgram(
		NewStatsModel(ctx, source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
