package out

import (
	"context"

	"dragochi/internal/modules/catalog/domain"
)

type GameStore interface {
	Upsert(ctx context.Context, game domain.Game) error
	Get(ctx context.Context, id string) (domain.Game, error)
	List(ctx context.Context) ([]domain.Game, error)
	Delete(ctx context.Context, id string) error
}

type FriendStore interface {
	Upsert(ctx context.Context, friend domain.Friend) error
	Get(ctx context.Context, id string) (domain.Friend, error)
	List(ctx context.Context) ([]domain.Friend, error)
	Delete(ctx context.Context, id string) error
}
