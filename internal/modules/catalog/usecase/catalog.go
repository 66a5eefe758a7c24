package usecase

import (
	"context"

	"dragochi/internal/modules/catalog/domain"
	catalogdto "dragochi/internal/modules/catalog/dto"
	catalogin "dragochi/internal/modules/catalog/port/in"
	"dragochi/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CreateGame(ctx context.Context, input catalogdto.CreateGameInput) (catalogdto.GameOutput, error) {
	game, err := i.svc.CreateGame(ctx, input.Name, input.Icon)
	if err != nil {
		return catalogdto.GameOutput{}, err
	}
	return gameOutput(game), nil
}

func (i *Interactor) UpsertGame(ctx context.Context, input catalogdto.UpdateGameInput) (catalogdto.GameOutput, error) {
	game := domain.Game{ID: input.ID, Name: input.Name, Icon: input.Icon}
	if existing, err := i.svc.GetGame(ctx, input.ID); err == nil {
		game.CreatedAt = existing.CreatedAt
		if game.Icon == "" {
			game.Icon = existing.Icon
		}
	}
	saved, err := i.svc.UpsertGame(ctx, game)
	if err != nil {
		return catalogdto.GameOutput{}, err
	}
	return gameOutput(saved), nil
}

func (i *Interactor) GetGame(ctx context.Context, id string) (catalogdto.GameOutput, error) {
	game, err := i.svc.GetGame(ctx, id)
	if err != nil {
		return catalogdto.GameOutput{}, err
	}
	return gameOutput(game), nil
}

func (i *Interactor) ListGames(ctx context.Context) ([]catalogdto.GameOutput, error) {
	games, err := i.svc.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalogdto.GameOutput, 0, len(games))
	for _, g := range games {
		out = append(out, gameOutput(g))
	}
	return out, nil
}

func (i *Interactor) DeleteGame(ctx context.Context, id string) error {
	return i.svc.DeleteGame(ctx, id)
}

func (i *Interactor) SyncDefaultGames(ctx context.Context) (catalogdto.SyncOutput, error) {
	plan, err := i.svc.SyncDefaultGames(ctx)
	if err != nil {
		return catalogdto.SyncOutput{}, err
	}
	return catalogdto.SyncOutput{Created: len(plan.Creates), Renamed: len(plan.Updates), Removed: len(plan.Deletes)}, nil
}

func (i *Interactor) CreateFriend(ctx context.Context, input catalogdto.CreateFriendInput) (catalogdto.FriendOutput, error) {
	friend, err := i.svc.CreateFriend(ctx, input.Name, input.Handle)
	if err != nil {
		return catalogdto.FriendOutput{}, err
	}
	return friendOutput(friend), nil
}

func (i *Interactor) GetFriend(ctx context.Context, id string) (catalogdto.FriendOutput, error) {
	friend, err := i.svc.GetFriend(ctx, id)
	if err != nil {
		return catalogdto.FriendOutput{}, err
	}
	return friendOutput(friend), nil
}

func (i *Interactor) ListFriends(ctx context.Context) ([]catalogdto.FriendOutput, error) {
	friends, err := i.svc.ListFriends(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalogdto.FriendOutput, 0, len(friends))
	for _, f := range friends {
		out = append(out, friendOutput(f))
	}
	return out, nil
}

func (i *Interactor) DeleteFriend(ctx context.Context, id string) error {
	return i.svc.DeleteFriend(ctx, id)
}

func (i *Interactor) SeedFriends(ctx context.Context) ([]catalogdto.FriendOutput, error) {
	friends, err := i.svc.SeedFriends(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalogdto.FriendOutput, 0, len(friends))
	for _, f := range friends {
		out = append(out, friendOutput(f))
	}
	return out, nil
}

func gameOutput(g domain.Game) catalogdto.GameOutput {
	return catalogdto.GameOutput{ID: g.ID, Name: g.Name, Icon: g.Icon}
}

func friendOutput(f domain.Friend) catalogdto.FriendOutput {
	return catalogdto.FriendOutput{ID: f.ID, Name: f.Name, Handle: f.Handle}
}
