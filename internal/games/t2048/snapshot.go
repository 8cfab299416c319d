package t2048

import (
	"fmt"
	"time"
)

// SnapshotVersion is the current snapshot record format.
const SnapshotVersion = 1

// Snapshot is a plain record of a session, suitable for storage.
type Snapshot struct {
	Version    int            `json:"version"`
	Size       int            `json:"size"`
	Grid       Grid           `json:"grid"`
	Score      int            `json:"score"`
	BestScore  int            `json:"best_score"`
	UndoUsed   int            `json:"undo_used"`
	MaxUndo    int            `json:"max_undo"`
	Moves      int            `json:"moves"`
	Over       bool           `json:"over"`
	Won        bool           `json:"won"`
	WinTarget  int            `json:"win_target"`
	Spawn4Prob float64        `json:"spawn4_prob"`
	History    []HistoryEntry `json:"history,omitempty"` // Oldest first
	SavedAt    time.Time      `json:"saved_at"`
}

// Snapshot captures the session, keeping only the newest history entries.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		Size:       s.opts.Size,
		Grid:       s.grid.Clone(),
		Score:      s.score,
		BestScore:  s.bestScore,
		UndoUsed:   s.undoUsed,
		MaxUndo:    s.opts.MaxUndo,
		Moves:      s.moves,
		Over:       s.over,
		Won:        s.won,
		WinTarget:  s.opts.WinTarget,
		Spawn4Prob: s.opts.Spawn4Prob,
		History:    s.history.Tail(s.opts.SnapshotHistory),
		SavedAt:    time.Now().UTC(),
	}
}

// RestoreSession rebuilds a session from a snapshot.
// Grid size, undo budget, win target, spawn odds and best score come from
// the snapshot; randomness and history bounds come from opts. History entries
// beyond the retention bound are dropped, oldest first.
func RestoreSession(snap Snapshot, opts Options) (*Session, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	opts.Size = snap.Size
	opts.MaxUndo = snap.MaxUndo
	opts.WinTarget = snap.WinTarget
	opts.Spawn4Prob = snap.Spawn4Prob
	opts.BestScore = snap.BestScore
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	s := &Session{
		opts:      opts,
		rng:       opts.Rand,
		history:   NewHistory(opts.HistoryLimit),
		grid:      snap.Grid.Clone(),
		score:     snap.Score,
		bestScore: snap.BestScore,
		over:      snap.Over,
		won:       snap.Won,
		undoUsed:  snap.UndoUsed,
		moves:     snap.Moves,
	}
	for _, e := range snap.History {
		s.history.Push(e)
	}

	return s, nil
}

// Validate checks the snapshot shape and the game invariants.
func (snap Snapshot) Validate() error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, snap.Version)
	}
	if snap.Size < 2 {
		return fmt.Errorf("%w: size %d is below 2", ErrInvalidSnapshot, snap.Size)
	}
	if err := validateGrid(snap.Grid, snap.Size); err != nil {
		return err
	}
	if snap.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, snap.Score)
	}
	if snap.BestScore < snap.Score {
		return fmt.Errorf("%w: best score %d below score %d", ErrInvalidSnapshot, snap.BestScore, snap.Score)
	}
	if snap.MaxUndo < 0 || snap.UndoUsed < 0 || snap.UndoUsed > snap.MaxUndo {
		return fmt.Errorf("%w: undo used %d outside [0,%d]", ErrInvalidSnapshot, snap.UndoUsed, snap.MaxUndo)
	}
	if snap.Moves < 0 {
		return fmt.Errorf("%w: negative move count %d", ErrInvalidSnapshot, snap.Moves)
	}
	if !isPowerOfTwo(snap.WinTarget) || snap.WinTarget < 4 {
		return fmt.Errorf("%w: win target %d", ErrInvalidSnapshot, snap.WinTarget)
	}
	if !(snap.Spawn4Prob >= 0 && snap.Spawn4Prob <= 1) {
		return fmt.Errorf("%w: spawn4 probability %v outside [0,1]", ErrInvalidSnapshot, snap.Spawn4Prob)
	}
	if terminal := !snap.Grid.CanMove(); terminal != snap.Over {
		return fmt.Errorf("%w: over flag %v disagrees with grid", ErrInvalidSnapshot, snap.Over)
	}
	if !snap.Won && snap.Grid.MaxTile() >= snap.WinTarget {
		return fmt.Errorf("%w: win target reached but not marked won", ErrInvalidSnapshot)
	}

	for i, e := range snap.History {
		if err := validateGrid(e.Grid, snap.Size); err != nil {
			return fmt.Errorf("history entry %d: %w", i, err)
		}
		if e.Score < 0 || e.Score > snap.BestScore {
			return fmt.Errorf("%w: history entry %d score %d", ErrInvalidSnapshot, i, e.Score)
		}
		if e.UndoUsed < 0 || e.UndoUsed > snap.UndoUsed {
			return fmt.Errorf("%w: history entry %d undo used %d", ErrInvalidSnapshot, i, e.UndoUsed)
		}
	}

	return nil
}

// validateGrid checks dimensions and that every tile is a power of two.
func validateGrid(g Grid, size int) error {
	if len(g) != size {
		return fmt.Errorf("%w: %d rows, want %d", ErrInvalidSnapshot, len(g), size)
	}
	for r, row := range g {
		if len(row) != size {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSnapshot, r, len(row), size)
		}
		for c, v := range row {
			if v != 0 && (v < 2 || !isPowerOfTwo(v)) {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidSnapshot, r, c, v)
			}
		}
	}
	return nil
}
