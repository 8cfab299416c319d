package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// DefaultSnapshotMaxAge is how long a saved game stays resumable.
const DefaultSnapshotMaxAge = 7 * 24 * time.Hour

// DefaultSlot is the save slot used when none is given.
const DefaultSlot = "local"

// SaveSnapshot stores snap in slot, replacing any earlier save.
func (s *Store) SaveSnapshot(ctx context.Context, slot string, snap t2048.Snapshot) (err error) {
	ctx, span := tracer.Start(ctx, "storage.save_snapshot", trace.WithAttributes(
		attribute.String("slot", slot),
		attribute.Int("score", snap.Score),
		attribute.Int("history", len(snap.History)),
	))
	defer func() { telemetry.End(span, err) }()

	if snap.SavedAt.IsZero() {
		snap.SavedAt = s.now().UTC()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	_, err = s.exec(ctx,
		`INSERT INTO snapshots (slot, data, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		slot, string(data), formatTime(snap.SavedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the game saved in slot.
// The second result is false when there is nothing to resume. Saves older
// than maxAge and saves that no longer decode or validate are deleted and
// reported as absent. A maxAge of zero or less uses DefaultSnapshotMaxAge.
func (s *Store) LoadSnapshot(ctx context.Context, slot string, maxAge time.Duration) (snap t2048.Snapshot, found bool, err error) {
	ctx, span := tracer.Start(ctx, "storage.load_snapshot", trace.WithAttributes(attribute.String("slot", slot)))
	defer func() {
		span.SetAttributes(attribute.Bool("found", found))
		telemetry.End(span, err)
	}()

	if maxAge <= 0 {
		maxAge = DefaultSnapshotMaxAge
	}

	var data string
	var savedAt any
	err = s.db.QueryRowContext(ctx,
		"SELECT data, saved_at FROM snapshots WHERE slot = ?", slot,
	).Scan(&data, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t2048.Snapshot{}, false, nil
	}
	if err != nil {
		return t2048.Snapshot{}, false, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	if s.now().Sub(parseTime(savedAt)) > maxAge {
		span.AddEvent("snapshot expired")
		return t2048.Snapshot{}, false, s.DeleteSnapshot(ctx, slot)
	}

	if err := json.Unmarshal([]byte(data), &snap); err != nil || snap.Validate() != nil {
		span.AddEvent("snapshot corrupt")
		return t2048.Snapshot{}, false, s.DeleteSnapshot(ctx, slot)
	}

	return snap, true, nil
}

// DeleteSnapshot removes the save in slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSnapshot(ctx context.Context, slot string) (err error) {
	ctx, span := tracer.Start(ctx, "storage.delete_snapshot", trace.WithAttributes(attribute.String("slot", slot)))
	defer func() { telemetry.End(span, err) }()

	if _, err = s.exec(ctx, "DELETE FROM snapshots WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	return nil
}

// HasSnapshot reports whether slot holds a save, without checking its age.
func (s *Store) HasSnapshot(ctx context.Context, slot string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots WHERE slot = ?", slot).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	return n > 0, nil
}
