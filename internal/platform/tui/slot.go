package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Store is the persistence the game screen needs.
type Store interface {
	LoadSnapshot(ctx context.Context, slot string, maxAge time.Duration) (t2048.Snapshot, bool, error)
	SaveSnapshot(ctx context.Context, slot string, snap t2048.Snapshot) error
	DeleteSnapshot(ctx context.Context, slot string) error
	RecordGame(ctx context.Context, rec storage.GameRecord) (string, error)
	HighScore(ctx context.Context) (int, error)
}

var _ Store = (*storage.Store)(nil)

// Options configures a game screen.
type Options struct {
	Config config.Config
	Slot   string     // Save slot; empty means storage.DefaultSlot
	Fresh  bool       // Discard any saved game instead of resuming it
	Rand   t2048.Rand // Spawn randomness; nil means time-seeded
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Slot == "" {
		o.Slot = storage.DefaultSlot
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// sessionOptions builds session options from the game config.
func (o Options) sessionOptions(best int) t2048.Options {
	opts := o.Config.Game.Options()
	opts.Rand = o.Rand
	opts.BestScore = best
	return opts
}

// startSession resumes the game saved in the slot or starts a new one.
// Storage failures are logged and never prevent play.
// Returns true when a saved game was resumed.
func startSession(ctx context.Context, store Store, opts Options) (*t2048.Session, bool, error) {
	logger := opts.Logger.With("slot", opts.Slot)
	best := 0

	if store != nil {
		high, err := store.HighScore(ctx)
		if err != nil {
			logger.Warn("could not read high score", "error", err)
		}
		best = high

		if opts.Fresh {
			if err := store.DeleteSnapshot(ctx, opts.Slot); err != nil {
				logger.Warn("could not discard saved game", "error", err)
			}
		} else if s, ok := resume(ctx, store, opts, best, logger); ok {
			return s, true, nil
		}
	}

	s, err := t2048.NewSession(opts.sessionOptions(best))
	if err != nil {
		return nil, false, err
	}
	logger.Debug("new game", "size", s.Size(), "target", s.WinTarget())
	return s, false, nil
}

func resume(ctx context.Context, store Store, opts Options, best int, logger *log.Logger) (*t2048.Session, bool) {
	snap, ok, err := store.LoadSnapshot(ctx, opts.Slot, opts.Config.Storage.SnapshotMaxAge)
	if err != nil {
		logger.Warn("could not load saved game", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	snap.BestScore = max(snap.BestScore, best)
	s, err := t2048.RestoreSession(snap, opts.sessionOptions(best))
	if err != nil {
		if errors.Is(err, t2048.ErrInvalidSnapshot) {
			logger.Warn("discarding unusable saved game", "error", err)
			//nolint:errcheck // Best-effort cleanup
			store.DeleteSnapshot(ctx, opts.Slot)
		}
		return nil, false
	}

	logger.Info("resumed saved game", "score", s.Score(), "moves", s.Moves())
	return s, true
}

// persist writes the session to its slot after a change. A finished game is
// recorded once and its slot cleared. Failures are logged, never fatal.
// Returns true when the game was recorded by this call.
func persist(ctx context.Context, store Store, opts Options, s *t2048.Session, recorded bool) bool {
	if store == nil {
		return false
	}
	logger := opts.Logger.With("slot", opts.Slot)

	if !s.IsOver() {
		if err := store.SaveSnapshot(ctx, opts.Slot, s.Snapshot()); err != nil {
			logger.Warn("could not save game", "error", err)
		}
		return false
	}

	if err := store.DeleteSnapshot(ctx, opts.Slot); err != nil {
		logger.Warn("could not clear finished game", "error", err)
	}
	if recorded {
		return false
	}

	id, err := store.RecordGame(ctx, storage.NewGameRecord(opts.Slot, s))
	if err != nil {
		logger.Error("could not record finished game", "error", err)
		return false
	}
	logger.Info("game recorded", "id", id, "score", s.Score(), "won", s.IsWon())
	return true
}
