package in

import (
	"context"

	"dragochi/internal/modules/catalog/dto"
)

type Usecase interface {
	CreateGame(ctx context.Context, input dto.CreateGameInput) (dto.GameOutput, error)
	UpsertGame(ctx context.Context, input dto.UpdateGameInput) (dto.GameOutput, error)
	GetGame(ctx context.Context, id string) (dto.GameOutput, error)
	ListGames(ctx context.Context) ([]dto.GameOutput, error)
	DeleteGame(ctx context.Context, id string) error
	SyncDefaultGames(ctx context.Context) (dto.SyncOutput, error)

	CreateFriend(ctx context.Context, input dto.CreateFriendInput) (dto.FriendOutput, error)
	GetFriend(ctx context.Context, id string) (dto.FriendOutput, error)
	ListFriends(ctx context.Context) ([]dto.FriendOutput, error)
	DeleteFriend(ctx context.Context, id string) error
	// SeedFriends creates the default teammate list when no friends exist yet.
	SeedFriends(ctx context.Context) ([]dto.FriendOutput, error)
}
