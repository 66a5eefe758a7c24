package out

import (
	"context"
	"time"

	"dragochi/internal/modules/tracking/domain"
)

// SessionRecorder is the tracker's view of the session store.
type SessionRecorder interface {
	// Begin persists a running session and returns its id.
	Begin(ctx context.Context, startAt time.Time, setup domain.Setup) (string, error)
	// Finish writes the end time and final duration with a full update of the session.
	// It fails with ErrNoActiveSession when the session already ended elsewhere.
	Finish(ctx context.Context, sessionID string, startAt, endAt time.Time, durationSeconds int, setup domain.Setup) error
	// Abandon removes a session that will never be finished. Ended sessions are kept.
	Abandon(ctx context.Context, sessionID string) error
	// Running reports whether the session is stored and has no end time.
	Running(ctx context.Context, sessionID string) (bool, error)
}

// SnapshotStore keeps the encoded snapshot somewhere that outlives the process.
type SnapshotStore interface {
	Save(ctx context.Context, data []byte) error
	// Load returns nil data when nothing was saved.
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}
