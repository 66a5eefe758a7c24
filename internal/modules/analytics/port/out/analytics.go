package out

import (
	"context"
	"time"

	sessiondomain "dragochi/internal/modules/session/domain"
)

type SessionSource interface {
	// Ended returns sessions whose end time falls in [from, to].
	Ended(ctx context.Context, from, to time.Time) ([]sessiondomain.Session, error)
}
