package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Model is the Bubble Tea model for a 2048 game.
type Model struct {
	ctx        context.Context
	store      Store
	opts       Options
	session    *t2048.Session
	keys       KeyMap
	help       help.Model
	hl         highlight
	ticking    bool
	status     string
	confirmNew bool // N was pressed once during a running game
	recorded   bool // Finished game has been recorded
	quitting   bool
	width      int
	height     int
}

// NewModel creates a game screen, resuming the slot's saved game unless
// opts.Fresh is set. store may be nil to play without persistence.
func NewModel(ctx context.Context, store Store, opts Options) (Model, error) {
	opts = opts.withDefaults()

	s, resumed, err := startSession(ctx, store, opts)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:     ctx,
		store:   store,
		opts:    opts,
		session: s,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	if resumed {
		m.status = "Welcome back! Resumed your saved game."
	}
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("2048")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.hl.step() {
			return m, tickCmd(m.opts.Config.UI.TickRate)
		}
		m.ticking = false
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.New) {
		return m.handleNew()
	}
	m.confirmNew = false

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		return m.handleUndo()
	}

	if dir, ok := m.keys.Direction(msg); ok {
		return m.handleMove(dir)
	}

	return m, nil
}

func (m Model) handleMove(dir t2048.Direction) (tea.Model, tea.Cmd) {
	turn, err := m.session.ApplyMove(dir)
	switch {
	case errors.Is(err, t2048.ErrNoOpMove):
		return m, nil
	case errors.Is(err, t2048.ErrSessionTerminal):
		m.status = "The game is over. Press N to play again."
		return m, nil
	case err != nil:
		m.opts.Logger.Error("move failed", "direction", dir, "error", err)
		return m, nil
	}

	m.status = ""
	if turn.Won {
		m.status = fmt.Sprintf("You reached %d! Keep going for a higher score.", m.session.WinTarget())
	}
	m.save()

	if turn.Spawned.Value == 0 || m.opts.Config.UI.HighlightTicks == 0 {
		return m, nil
	}
	m.hl = highlight{cell: turn.Spawned.Cell, remaining: m.opts.Config.UI.HighlightTicks}
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.opts.Config.UI.TickRate)
}

func (m Model) handleUndo() (tea.Model, tea.Cmd) {
	if err := m.session.Undo(); err != nil {
		switch {
		case errors.Is(err, t2048.ErrSessionTerminal):
			m.status = "The game is over. Press N to play again."
		case m.session.MaxUndo() == 0:
			m.status = "Undo is disabled for these rules."
		case m.session.UndoRemaining() == 0:
			m.status = "No undos left."
		default:
			m.status = "Nothing to undo."
		}
		return m, nil
	}

	m.hl = highlight{}
	m.status = fmt.Sprintf("Move undone. %d left.", m.session.UndoRemaining())
	m.save()
	return m, nil
}

// handleNew starts a new game. A running game needs the key pressed twice.
func (m Model) handleNew() (tea.Model, tea.Cmd) {
	if !m.session.IsOver() && m.session.Moves() > 0 && !m.confirmNew {
		m.confirmNew = true
		m.status = "Press N again to abandon this game."
		return m, nil
	}

	opts := m.opts.sessionOptions(m.session.BestScore())
	s, err := t2048.NewSession(opts)
	if err != nil {
		m.opts.Logger.Error("could not start new game", "error", err)
		return m, nil
	}

	m.session = s
	m.recorded = false
	m.confirmNew = false
	m.hl = highlight{}
	m.status = "New game."
	m.save()
	return m, nil
}

func (m *Model) save() {
	if persist(m.ctx, m.store, m.opts, m.session, m.recorded) {
		m.recorded = true
	}
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{
		titleStyle.Render("2048"),
		renderStats(m.session),
		renderBoard(m.session.Grid(), m.hl),
	}
	if overlay := renderOverlay(m.session); overlay != "" {
		parts = append(parts, overlay)
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(m.help.View(m.keys)))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// Session returns the running game.
func (m Model) Session() *t2048.Session {
	return m.session
}

// Status returns the message shown under the board.
func (m Model) Status() string {
	return m.status
}

// Run starts the Bubble Tea program for a local game.
func Run(ctx context.Context, store Store, opts Options) error {
	model, err := NewModel(ctx, store, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
