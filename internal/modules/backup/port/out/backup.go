package out

import (
	"context"
	"time"

	"dragochi/internal/modules/backup/domain"
)

type CatalogSource interface {
	Games(ctx context.Context) ([]domain.GameRecord, error)
	Friends(ctx context.Context) ([]domain.FriendRecord, error)
}

type SessionSource interface {
	// EndedBefore returns every session that ended at or before to.
	EndedBefore(ctx context.Context, to time.Time) ([]domain.SessionRecord, error)
}

type Sink interface {
	Write(ctx context.Context, path string, data []byte) error
}
