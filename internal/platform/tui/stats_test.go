package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

type fakeStats struct {
	stats  storage.Stats
	recent []storage.GameRecord
	top    []storage.GameRecord
	err    error
}

func (f fakeStats) Stats(context.Context) (storage.Stats, error) {
	return f.stats, f.err
}

func (f fakeStats) RecentGames(context.Context, int) ([]storage.GameRecord, error) {
	return f.recent, nil
}

func (f fakeStats) TopScores(context.Context, int) ([]storage.GameRecord, error) {
	return f.top, nil
}

func TestStatsModelViews(t *testing.T) {
	src := fakeStats{
		stats: storage.Stats{TotalGames: 3, TotalWins: 1, WinRate: 33, BestScore: 2400, AvgScore: 1200},
		recent: []storage.GameRecord{
			{Score: 100, MaxTile: 16, Size: 4, Slot: "alice", FinishedAt: time.Now()},
			{Score: 2400, MaxTile: 2048, Won: true, Size: 4, Slot: "bob", FinishedAt: time.Now()},
		},
		top: []storage.GameRecord{
			{Score: 2400, MaxTile: 2048, Won: true, Size: 4, Slot: "bob", FinishedAt: time.Now()},
		},
	}

	m := NewStatsModel(context.Background(), src, 100, 30)
	if len(m.records) != 2 {
		t.Fatalf("recent records = %d, want 2", len(m.records))
	}
	view := m.View()
	for _, want := range []string{"RECENT GAMES", "33%", "2400", "alice"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(StatsModel)
	if m.view != viewTop || len(m.records) != 1 {
		t.Errorf("after tab: view = %v records = %d, want top/1", m.view, len(m.records))
	}
	if !strings.Contains(m.View(), "TOP SCORES") {
		t.Error("View() after tab does not show top scores")
	}
}

func TestStatsModelEmptyAndError(t *testing.T) {
	m := NewStatsModel(context.Background(), fakeStats{}, 80, 24)
	if !strings.Contains(m.View(), "No games recorded yet") {
		t.Error("empty View() missing placeholder")
	}

	m = NewStatsModel(context.Background(), fakeStats{err: errors.New("locked")}, 80, 24)
	if !strings.Contains(m.View(), "locked") {
		t.Error("View() does not show load error")
	}

	m = NewStatsModel(context.Background(), nil, 80, 24)
	if !strings.Contains(m.View(), "never") {
		t.Error("View() without source should show no last played date")
	}
}

func TestStatsModelQuit(t *testing.T) {
	m := NewStatsModel(context.Background(), fakeStats{}, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if next.View() != "" {
		t.Error("View() after quit is not empty")
	}
}
