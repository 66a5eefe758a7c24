package in

import (
	"context"

	catalogdto "dragochi/internal/modules/catalog/dto"
	catalogin "dragochi/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddGame(ctx context.Context, name, icon string) (catalogdto.GameOutput, error) {
	return h.usecase.CreateGame(ctx, catalogdto.CreateGameInput{Name: name, Icon: icon})
}

func (h CLIHandler) RenameGame(ctx context.Context, id, name string) (catalogdto.GameOutput, error) {
	return h.usecase.UpsertGame(ctx, catalogdto.UpdateGameInput{ID: id, Name: name})
}

func (h CLIHandler) ListGames(ctx context.Context) ([]catalogdto.GameOutput, error) {
	return h.usecase.ListGames(ctx)
}

func (h CLIHandler) DeleteGame(ctx context.Context, id string) error {
	return h.usecase.DeleteGame(ctx, id)
}

func (h CLIHandler) SyncGames(ctx context.Context) (catalogdto.SyncOutput, error) {
	return h.usecase.SyncDefaultGames(ctx)
}

func (h CLIHandler) AddFriend(ctx context.Context, name, handle string) (catalogdto.FriendOutput, error) {
	return h.usecase.CreateFriend(ctx, catalogdto.CreateFriendInput{Name: name, Handle: handle})
}

func (h CLIHandler) ListFriends(ctx context.Context) ([]catalogdto.FriendOutput, error) {
	return h.usecase.ListFriends(ctx)
}

func (h CLIHandler) DeleteFriend(ctx context.Context, id string) error {
	return h.usecase.DeleteFriend(ctx, id)
}

func (h CLIHandler) SeedFriends(ctx context.Context) ([]catalogdto.FriendOutput, error) {
	return h.usecase.SeedFriends(ctx)
}

// Names resolves game and friend ids to display names for listings.
func (h CLIHandler) Names(ctx context.Context) (games map[string]string, friends map[string]string, err error) {
	gs, err := h.usecase.ListGames(ctx)
	if err != nil {
		return nil, nil, err
	}
	fs, err := h.usecase.ListFriends(ctx)
	if err != nil {
		return nil, nil, err
	}
	games = make(map[string]string, len(gs))
	for _, g := range gs {
		games[g.ID] = g.Name
	}
	friends = make(map[string]string, len(fs))
	for _, f := range fs {
		friends[f.ID] = f.Name
	}
	return games, friends, nil
}
