package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// DefaultRecentLimit is how many games RecentGames returns by default.
const DefaultRecentLimit = 10

// GameRecord is a finished game.
type GameRecord struct {
	ID         string
	Slot       string
	Score      int
	MaxTile    int
	Moves      int
	Won        bool
	UndoUsed   int
	Size       int
	FinishedAt time.Time
}

// Stats contains aggregated statistics over all finished games.
type Stats struct {
	TotalGames int
	TotalWins  int
	WinRate    int // Rounded percent
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// NewGameRecord builds a record from a finished session.
func NewGameRecord(slot string, s *t2048.Session) GameRecord {
	return GameRecord{
		Slot:     slot,
		Score:    s.Score(),
		MaxTile:  s.MaxTile(),
		Moves:    s.Moves(),
		Won:      s.IsWon(),
		UndoUsed: s.UndoUsed(),
		Size:     s.Size(),
	}
}

// RecordGame stores a finished game. Empty ID and FinishedAt are filled in.
// Returns the record ID.
func (s *Store) RecordGame(ctx context.Context, rec GameRecord) (id string, err error) {
	ctx, span := tracer.Start(ctx, "storage.record_game", trace.WithAttributes(
		attribute.String("slot", rec.Slot),
		attribute.Int("score", rec.Score),
		attribute.Bool("won", rec.Won),
	))
	defer func() { telemetry.End(span, err) }()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = s.now()
	}

	_, err = s.exec(ctx,
		`INSERT INTO games (id, slot, score, max_tile, moves, won, undo_used, size, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Slot, rec.Score, rec.MaxTile, rec.Moves, rec.Won, rec.UndoUsed, rec.Size,
		formatTime(rec.FinishedAt),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record game: %w", err)
	}
	return rec.ID, nil
}

// TopScores retrieves the best N games, highest score first.
func (s *Store) TopScores(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.queryGames(ctx,
		`SELECT id, slot, score, max_tile, moves, won, undo_used, size, finished_at
		 FROM games
		 ORDER BY score DESC, finished_at ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentGames retrieves the last N finished games, newest first.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.queryGames(ctx,
		`SELECT id, slot, score, max_tile, moves, won, undo_used, size, finished_at
		 FROM games
		 ORDER BY finished_at DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryGames(ctx context.Context, query string, args ...any) ([]GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var finishedAt any
		if err := rows.Scan(&r.ID, &r.Slot, &r.Score, &r.MaxTile, &r.Moves, &r.Won,
			&r.UndoUsed, &r.Size, &finishedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.FinishedAt = parseTime(finishedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the highest recorded score.
// Returns 0 if no games exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM games").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates all finished games.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM games`,
	).Scan(&st.TotalGames, &st.TotalWins, &st.BestScore, &st.AvgScore)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if st.TotalGames > 0 {
		st.WinRate = int(math.Round(float64(st.TotalWins) * 100 / float64(st.TotalGames)))
	}

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		"SELECT finished_at FROM games ORDER BY finished_at DESC LIMIT 1",
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Stats{}, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		st.LastPlayed = parseTime(lastPlayed)
	}

	return st, nil
}

// ClearGames deletes all finished-game records.
func (s *Store) ClearGames(ctx context.Context) error {
	if _, err := s.exec(ctx, "DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}
