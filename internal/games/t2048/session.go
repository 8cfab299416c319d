package t2048

import (
	"fmt"
	"math/rand"
	"time"
)

// Defaults for session options.
const (
	DefaultMaxUndo         = 3
	DefaultSnapshotHistory = 5
	DefaultWinTarget       = 2048
	DefaultSpawn4Prob      = 0.10
)

// Rand is the randomness a session needs to spawn tiles.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Options configures a session.
type Options struct {
	Size            int     // Grid dimension, 0 means DefaultSize
	MaxUndo         int     // Undos allowed per session
	HistoryLimit    int     // Entries kept for undo, 0 means DefaultHistoryLimit
	SnapshotHistory int     // Entries written to snapshots, 0 means DefaultSnapshotHistory
	WinTarget       int     // Tile value that wins, 0 means DefaultWinTarget
	Spawn4Prob      float64 // Probability that a spawned tile is a 4
	BestScore       int     // Best score carried in from earlier games
	Rand            Rand    // Spawn randomness, nil means time-seeded
}

// DefaultOptions returns the classic 4x4 rules.
func DefaultOptions() Options {
	return Options{
		Size:            DefaultSize,
		MaxUndo:         DefaultMaxUndo,
		HistoryLimit:    DefaultHistoryLimit,
		SnapshotHistory: DefaultSnapshotHistory,
		WinTarget:       DefaultWinTarget,
		Spawn4Prob:      DefaultSpawn4Prob,
	}
}

// withDefaults fills zero fields and validates the rest.
func (o Options) withDefaults() (Options, error) {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.HistoryLimit == 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.SnapshotHistory == 0 {
		o.SnapshotHistory = DefaultSnapshotHistory
	}
	if o.WinTarget == 0 {
		o.WinTarget = DefaultWinTarget
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	switch {
	case o.Size < 2:
		return o, fmt.Errorf("%w: size %d is below 2", ErrInvalidOptions, o.Size)
	case o.MaxUndo < 0:
		return o, fmt.Errorf("%w: max undo %d is negative", ErrInvalidOptions, o.MaxUndo)
	case o.HistoryLimit < 0:
		return o, fmt.Errorf("%w: history limit %d is negative", ErrInvalidOptions, o.HistoryLimit)
	case o.SnapshotHistory < 0:
		return o, fmt.Errorf("%w: snapshot history %d is negative", ErrInvalidOptions, o.SnapshotHistory)
	case !isPowerOfTwo(o.WinTarget) || o.WinTarget < 4:
		return o, fmt.Errorf("%w: win target %d is not a power of two above 2", ErrInvalidOptions, o.WinTarget)
	case !(o.Spawn4Prob >= 0 && o.Spawn4Prob <= 1):
		return o, fmt.Errorf("%w: spawn4 probability %v outside [0,1]", ErrInvalidOptions, o.Spawn4Prob)
	case o.BestScore < 0:
		return o, fmt.Errorf("%w: best score %d is negative", ErrInvalidOptions, o.BestScore)
	}
	return o, nil
}

// Spawn describes the tile placed after a move.
type Spawn struct {
	Cell
	Value int
}

// Turn describes a committed move.
type Turn struct {
	Result  MoveResult // Engine output before the spawn
	Spawned Spawn
	Won     bool // True only on the move that first reached the win target
}

// Session owns the state of one 2048 game.
// A Session is not safe for concurrent use; hosts serialize calls.
type Session struct {
	opts    Options
	rng     Rand
	history *History

	grid      Grid
	score     int
	bestScore int
	over      bool
	won       bool
	undoUsed  int
	moves     int
}

// NewSession starts a fresh game with two random tiles.
func NewSession(opts Options) (*Session, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	s := &Session{
		opts:      opts,
		rng:       opts.Rand,
		history:   NewHistory(opts.HistoryLimit),
		grid:      NewGrid(opts.Size),
		bestScore: opts.BestScore,
	}

	// Spawn initial tiles (2 tiles)
	s.spawnTile()
	s.spawnTile()

	// A small win target can be reached by the opening tiles.
	if s.grid.MaxTile() >= opts.WinTarget {
		s.won = true
	}

	return s, nil
}

// ApplyMove slides the grid, spawns a tile and checks for win and game over.
// It returns ErrSessionTerminal once the game is over and ErrNoOpMove when
// the direction does not change the grid; in both cases nothing changes.
func (s *Session) ApplyMove(dir Direction) (Turn, error) {
	if s.over {
		return Turn{}, ErrSessionTerminal
	}

	result := ApplyDirection(s.grid, dir)
	if !result.Moved {
		return Turn{}, ErrNoOpMove
	}

	s.history.Push(HistoryEntry{
		Grid:     s.grid,
		Score:    s.score,
		UndoUsed: s.undoUsed,
	})

	s.grid = result.Grid.Clone()
	s.score += result.ScoreGained
	if s.score > s.bestScore {
		s.bestScore = s.score
	}
	s.moves++

	turn := Turn{Result: result}
	turn.Spawned, _ = s.spawnTile()

	if !s.won && s.grid.MaxTile() >= s.opts.WinTarget {
		s.won = true
		turn.Won = true
	}
	if !s.grid.CanMove() {
		s.over = true
	}

	return turn, nil
}

// Undo restores the grid and score from before the last move.
// The best score and the win flag are kept.
func (s *Session) Undo() error {
	if s.over {
		return ErrSessionTerminal
	}
	if s.undoUsed >= s.opts.MaxUndo {
		return fmt.Errorf("%w: all %d undos used", ErrUndoExhausted, s.opts.MaxUndo)
	}

	entry, ok := s.history.Pop()
	if !ok {
		return fmt.Errorf("%w: history is empty", ErrUndoExhausted)
	}

	s.grid = entry.Grid
	s.score = entry.Score
	s.undoUsed++
	return nil
}

// spawnTile places a 2 or a 4 in a random empty cell.
func (s *Session) spawnTile() (Spawn, bool) {
	empty := s.grid.EmptyCells()
	if len(empty) == 0 {
		return Spawn{}, false
	}

	cell := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rng.Float64() < s.opts.Spawn4Prob {
		value = 4
	}

	s.grid[cell.Row][cell.Col] = value
	return Spawn{Cell: cell, Value: value}, true
}

// Grid returns a copy of the current grid.
func (s *Session) Grid() Grid { return s.grid.Clone() }

// Size returns the grid dimension.
func (s *Session) Size() int { return s.opts.Size }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// BestScore returns the highest score seen, including earlier games.
func (s *Session) BestScore() int { return s.bestScore }

// IsOver reports whether no move is left. It never reverts.
func (s *Session) IsOver() bool { return s.over }

// IsWon reports whether the win target has been reached.
func (s *Session) IsWon() bool { return s.won }

// WinTarget returns the tile value that wins.
func (s *Session) WinTarget() int { return s.opts.WinTarget }

// Spawn4Prob returns the probability that a spawned tile is a 4.
func (s *Session) Spawn4Prob() float64 { return s.opts.Spawn4Prob }

// UndoUsed returns the number of undos taken.
func (s *Session) UndoUsed() int { return s.undoUsed }

// MaxUndo returns the undo budget.
func (s *Session) MaxUndo() int { return s.opts.MaxUndo }

// UndoRemaining returns how many undos the budget still allows.
func (s *Session) UndoRemaining() int { return s.opts.MaxUndo - s.undoUsed }

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool {
	return !s.over && s.undoUsed < s.opts.MaxUndo && s.history.Len() > 0
}

// HistoryLen returns the number of moves that could be rolled back.
func (s *Session) HistoryLen() int { return s.history.Len() }

// EmptyCount returns the number of empty cells.
func (s *Session) EmptyCount() int { return s.grid.EmptyCount() }

// MaxTile returns the highest tile on the grid.
func (s *Session) MaxTile() int { return s.grid.MaxTile() }

// Moves returns the number of successful moves, undone ones included.
func (s *Session) Moves() int { return s.moves }
