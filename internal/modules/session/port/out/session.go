package out

import (
	"context"
	"time"

	"dragochi/internal/modules/session/domain"
)

// SessionStore persists sessions together with their teammate links.
// Implementations write a session row and its links atomically.
type SessionStore interface {
	Insert(ctx context.Context, session domain.Session) (domain.Session, error)
	Update(ctx context.Context, session domain.Session) (domain.Session, error)
	// Finish updates a session that is still running and fails with
	// ErrNoActiveSession when it has already ended or is gone.
	Finish(ctx context.Context, session domain.Session) (domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	ListEnded(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteRunning(ctx context.Context, id string) error
}
