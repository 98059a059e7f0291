package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/spellquest/internal/quiz"
)

// RemoteStore is the subset of the remote persistence layer the
// recorder needs. Saving the same ID twice must be a no-op.
type RemoteStore interface {
	SaveRecord(ctx context.Context, r *GameResult) error
}

// Recorder saves finished rounds local-first: the SQLite write must
// succeed, the remote write is best effort and failures only flag the
// round for a later sync.
type Recorder struct {
	store  *Store
	remote RemoteStore
	log    *slog.Logger
}

// NewRecorder builds a recorder. remote may be nil when the player is
// offline or remote persistence is not configured.
func NewRecorder(store *Store, remote RemoteStore, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{store: store, remote: remote, log: log}
}

// Record persists the session's outcome exactly once. The session's
// save slot decides: a second call for the same attempt returns
// (nil, nil) without touching storage.
func (r *Recorder) Record(ctx context.Context, s *quiz.Session, userID string) (*GameResult, error) {
	if !s.MarkResultSaved() {
		return nil, nil
	}

	result := NewResult(s, userID)

	if r.remote == nil {
		result.PendingSync = true
	} else if err := r.remote.SaveRecord(ctx, result); err != nil {
		result.PendingSync = true
		r.log.Warn("remote save failed, round kept pending",
			"id", result.ID, "error", err)
	}

	if err := r.store.SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("save result locally: %w", err)
	}
	return result, nil
}

// SyncPending pushes locally pending rounds to the remote store and
// clears their flags. It returns how many rounds were synced.
func (r *Recorder) SyncPending(ctx context.Context) (int, error) {
	if r.remote == nil {
		return 0, fmt.Errorf("no remote store configured")
	}

	pending, err := r.store.Pending(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, rec := range pending {
		if err := r.remote.SaveRecord(ctx, rec); err != nil {
			r.log.Warn("sync failed, will retry later", "id", rec.ID, "error", err)
			continue
		}
		if err := r.store.MarkSynced(ctx, rec.ID); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}
