package t2048

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func playedSession(t *testing.T, seed int64, moves int) *Session {
	t.Helper()

	opts := DefaultOptions()
	opts.Spawn4Prob = 0.25
	opts.Rand = rand.New(rand.NewSource(seed))
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	for range moves {
		mustMove(t, s)
	}
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := playedSession(t, 42, 8)
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.History) != DefaultSnapshotHistory {
		t.Errorf("snapshot history = %d entries, want %d", len(snap.History), DefaultSnapshotHistory)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	restored, err := RestoreSession(decoded, DefaultOptions())
	if err != nil {
		t.Fatalf("RestoreSession() failed: %v", err)
	}

	if restored.Spawn4Prob() != 0.25 {
		t.Errorf("Spawn4Prob = %v, want 0.25", restored.Spawn4Prob())
	}

	again := restored.Snapshot()
	again.SavedAt = snap.SavedAt
	if !reflect.DeepEqual(snap, again) {
		t.Errorf("snapshot changed across restore:\n%+v\nvs\n%+v", snap, again)
	}
	if !decoded.SavedAt.Equal(snap.SavedAt) {
		t.Errorf("SavedAt = %v, want %v", decoded.SavedAt, snap.SavedAt)
	}
}

func TestRestoredSessionKeepsPlaying(t *testing.T) {
	s := playedSession(t, 5, 4)
	snap := s.Snapshot()
	prev := snap.History[len(snap.History)-1]

	restored, err := RestoreSession(snap, DefaultOptions())
	if err != nil {
		t.Fatalf("RestoreSession() failed: %v", err)
	}

	if restored.UndoRemaining() != s.UndoRemaining() {
		t.Errorf("UndoRemaining = %d, want %d", restored.UndoRemaining(), s.UndoRemaining())
	}
	if err := restored.Undo(); err != nil {
		t.Fatalf("Undo() on restored session failed: %v", err)
	}
	if !restored.Grid().Equal(prev.Grid) || restored.Score() != prev.Score {
		t.Errorf("restored undo = %v/%d, want %v/%d", restored.Grid(), restored.Score(), prev.Grid, prev.Score)
	}

	mustMove(t, restored)
}

func TestRestoreKeepsSpawnOdds(t *testing.T) {
	opts := DefaultOptions()
	opts.Spawn4Prob = 0.25
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	restored, err := RestoreSession(s.Snapshot(), Options{})
	if err != nil {
		t.Fatalf("RestoreSession() failed: %v", err)
	}
	if restored.Spawn4Prob() != 0.25 {
		t.Errorf("Spawn4Prob = %v, want 0.25", restored.Spawn4Prob())
	}
}

func TestRestoreTrimsHistoryToRetention(t *testing.T) {
	snap := playedSession(t, 11, 6).Snapshot()

	opts := DefaultOptions()
	opts.HistoryLimit = 2
	restored, err := RestoreSession(snap, opts)
	if err != nil {
		t.Fatalf("RestoreSession() failed: %v", err)
	}
	if restored.HistoryLen() != 2 {
		t.Errorf("HistoryLen = %d, want 2", restored.HistoryLen())
	}
}

func TestRestoreTerminalSnapshot(t *testing.T) {
	snap := Snapshot{
		Version:   SnapshotVersion,
		Size:      4,
		Grid:      checkerboard(4),
		Score:     100,
		BestScore: 120,
		MaxUndo:   3,
		Over:      true,
		WinTarget: 2048,
	}

	s, err := RestoreSession(snap, DefaultOptions())
	if err != nil {
		t.Fatalf("RestoreSession() failed: %v", err)
	}
	if !s.IsOver() {
		t.Fatal("restored terminal snapshot should be over")
	}
	for _, dir := range Directions {
		if _, err := s.ApplyMove(dir); !errors.Is(err, ErrSessionTerminal) {
			t.Errorf("ApplyMove(%s) error = %v, want ErrSessionTerminal", dir, err)
		}
	}
}

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	valid := func() Snapshot {
		return Snapshot{
			Version: SnapshotVersion,
			Size:    4,
			Grid: Grid{
				{2, 0, 0, 0},
				{0, 4, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			Score:     8,
			BestScore: 16,
			UndoUsed:  1,
			MaxUndo:   3,
			WinTarget: 2048,
			History: []HistoryEntry{
				{Grid: NewGrid(4), Score: 4, UndoUsed: 1},
			},
		}
	}

	if _, err := RestoreSession(valid(), DefaultOptions()); err != nil {
		t.Fatalf("baseline snapshot rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"unknown version", func(s *Snapshot) { s.Version = 0 }},
		{"size too small", func(s *Snapshot) { s.Size = 1 }},
		{"missing row", func(s *Snapshot) { s.Grid = s.Grid[:3] }},
		{"short row", func(s *Snapshot) { s.Grid[2] = []int{0, 0} }},
		{"non power of two", func(s *Snapshot) { s.Grid[0][0] = 6 }},
		{"negative tile", func(s *Snapshot) { s.Grid[0][0] = -2 }},
		{"tile of one", func(s *Snapshot) { s.Grid[0][0] = 1 }},
		{"negative score", func(s *Snapshot) { s.Score = -4 }},
		{"best below score", func(s *Snapshot) { s.BestScore = 4 }},
		{"undo over budget", func(s *Snapshot) { s.UndoUsed = 4 }},
		{"negative undo", func(s *Snapshot) { s.UndoUsed = -1 }},
		{"negative moves", func(s *Snapshot) { s.Moves = -1 }},
		{"bad win target", func(s *Snapshot) { s.WinTarget = 2000 }},
		{"spawn odds above one", func(s *Snapshot) { s.Spawn4Prob = 1.5 }},
		{"spawn odds NaN", func(s *Snapshot) { s.Spawn4Prob = math.NaN() }},
		{"over flag on open grid", func(s *Snapshot) { s.Over = true }},
		{"over flag missing", func(s *Snapshot) { s.Grid = checkerboard(4) }},
		{"win not recorded", func(s *Snapshot) { s.Grid[3][3] = 2048 }},
		{"history grid size", func(s *Snapshot) { s.History[0].Grid = NewGrid(3) }},
		{"history tile", func(s *Snapshot) { s.History[0].Grid[1][1] = 12 }},
		{"history score", func(s *Snapshot) { s.History[0].Score = 64 }},
		{"history undo", func(s *Snapshot) { s.History[0].UndoUsed = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := valid()
			tt.mutate(&snap)

			s, err := RestoreSession(snap, DefaultOptions())
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("RestoreSession() error = %v, want ErrInvalidSnapshot", err)
			}
			if s != nil {
				t.Error("RestoreSession() returned a session for an invalid snapshot")
			}
		})
	}
}

func TestRestoreWonSnapshotBelowTarget(t *testing.T) {
	// Undo may take the 2048 tile away after a win; the flag stays.
	snap := Snapshot{
		Version:   SnapshotVersion,
		Size:      4,
		Grid:      Grid{{1024, 1024, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		Score:     20000,
		BestScore: 22048,
		UndoUsed:  1,
		MaxUndo:   3,
		Won:       true,
		WinTarget: 2048,
	}

	s, err := RestoreSession(snap, DefaultOptions())
	if err != nil {
		t.Fatalf("RestoreSession() failed: %v", err)
	}
	if !s.IsWon() {
		t.Error("IsWon should be restored")
	}
}
