package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	tileWidth  = 7
	tileHeight = 3
)

// tileColors maps tile values to background/foreground colour pairs.
var tileColors = map[int][2]string{
	0:    {"237", "237"},
	2:    {"255", "235"},
	4:    {"230", "235"},
	8:    {"215", "255"},
	16:   {"209", "255"},
	32:   {"203", "255"},
	64:   {"196", "255"},
	128:  {"222", "235"},
	256:  {"221", "235"},
	512:  {"220", "235"},
	1024: {"214", "255"},
	2048: {"226", "235"},
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("229")).
			Bold(true).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyle returns the style for a tile. Values past 2048 share a dark style.
func tileStyle(value int, fresh bool) lipgloss.Style {
	colors, ok := tileColors[value]
	if !ok {
		colors = [2]string{"53", "255"}
	}
	style := lipgloss.NewStyle().
		Width(tileWidth).
		Height(tileHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Background(lipgloss.Color(colors[0])).
		Foreground(lipgloss.Color(colors[1])).
		Bold(value >= 8)
	if fresh {
		style = style.Underline(true).Foreground(lipgloss.Color("202"))
	}
	return style
}

// renderBoard draws the grid as coloured tiles.
func renderBoard(grid t2048.Grid, hl highlight) string {
	rows := make([]string, len(grid))
	for r, row := range grid {
		tiles := make([]string, len(row))
		for c, v := range row {
			label := ""
			if v != 0 {
				label = strconv.Itoa(v)
			}
			tiles[c] = tileStyle(v, hl.at(r, c)).Render(label)
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
	}
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderStats draws score, best and undo counters.
func renderStats(s *t2048.Session) string {
	field := func(label string, value any) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(fmt.Sprint(value))
	}
	return strings.Join([]string{
		field("Score", s.Score()),
		field("Best", s.BestScore()),
		field("Undo", fmt.Sprintf("%d/%d", s.UndoRemaining(), s.MaxUndo())),
		field("Goal", s.WinTarget()),
	}, "   ")
}

// renderOverlay draws a boxed message once the game is over.
func renderOverlay(s *t2048.Session) string {
	if !s.IsOver() {
		return ""
	}
	headline := "GAME OVER"
	if s.IsWon() {
		headline = "GAME OVER - YOU WON"
	}
	return overlayStyle.Render(fmt.Sprintf("%s\nScore %d  Max tile %d\nPress N for a new game", headline, s.Score(), s.MaxTile()))
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
