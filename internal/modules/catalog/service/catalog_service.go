package service

import (
	"context"
	"fmt"
	"strings"

	"dragochi/internal/modules/catalog/domain"
	catalogout "dragochi/internal/modules/catalog/port/out"
	"dragochi/internal/platform/clock"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/platform/id"
	"dragochi/internal/platform/slug"
	"dragochi/internal/platform/tx"
)

type CatalogService struct {
	clock   clock.Clock
	idGen   id.Generator
	games   catalogout.GameStore
	friends catalogout.FriendStore
	tx      tx.Manager
}

func NewCatalogService(clock clock.Clock, idGen id.Generator, games catalogout.GameStore, friends catalogout.FriendStore, txm tx.Manager) *CatalogService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &CatalogService{clock: clock, idGen: idGen, games: games, friends: friends, tx: txm}
}

func (s *CatalogService) CreateGame(ctx context.Context, name, icon string) (domain.Game, error) {
	name, err := domain.ValidateName("game", name)
	if err != nil {
		return domain.Game{}, err
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = slug.Make(name)
	}
	game := domain.Game{ID: s.idGen.New(), Name: name, Icon: icon, CreatedAt: s.clock.Now()}
	if err := s.games.Upsert(ctx, game); err != nil {
		return domain.Game{}, err
	}
	return game, nil
}

// UpsertGame inserts the game or overwrites name and icon of the existing one.
func (s *CatalogService) UpsertGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	if strings.TrimSpace(game.ID) == "" {
		return domain.Game{}, fmt.Errorf("%w: game id is required", apperrors.ErrInvalidInput)
	}
	name, err := domain.ValidateName("game", game.Name)
	if err != nil {
		return domain.Game{}, err
	}
	game.Name = name
	game.Icon = strings.TrimSpace(game.Icon)
	if game.CreatedAt.IsZero() {
		game.CreatedAt = s.clock.Now()
	}
	if err := s.games.Upsert(ctx, game); err != nil {
		return domain.Game{}, err
	}
	return game, nil
}

func (s *CatalogService) GetGame(ctx context.Context, id string) (domain.Game, error) {
	return s.games.Get(ctx, id)
}

func (s *CatalogService) ListGames(ctx context.Context) ([]domain.Game, error) {
	return s.games.List(ctx)
}

func (s *CatalogService) DeleteGame(ctx context.Context, id string) error {
	return s.games.Delete(ctx, id)
}

func (s *CatalogService) SyncDefaultGames(ctx context.Context) (domain.SyncPlan, error) {
	var plan domain.SyncPlan
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		existing, err := s.games.List(ctx)
		if err != nil {
			return err
		}
		plan = domain.PlanSync(existing)
		for _, g := range plan.Updates {
			if err := s.games.Upsert(ctx, g); err != nil {
				return fmt.Errorf("rename game %s: %w", g.ID, err)
			}
		}
		for _, c := range plan.Creates {
			game := domain.Game{ID: s.idGen.New(), Name: c.Name, Icon: c.Icon, CreatedAt: s.clock.Now()}
			if err := s.games.Upsert(ctx, game); err != nil {
				return fmt.Errorf("create game %s: %w", c.Name, err)
			}
		}
		for _, id := range plan.Deletes {
			if err := s.games.Delete(ctx, id); err != nil {
				return fmt.Errorf("remove retired game %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.SyncPlan{}, err
	}
	return plan, nil
}

func (s *CatalogService) CreateFriend(ctx context.Context, name, handle string) (domain.Friend, error) {
	name, err := domain.ValidateName("friend", name)
	if err != nil {
		return domain.Friend{}, err
	}
	friend := domain.Friend{ID: s.idGen.New(), Name: name, Handle: strings.TrimSpace(handle), CreatedAt: s.clock.Now()}
	if err := s.friends.Upsert(ctx, friend); err != nil {
		return domain.Friend{}, err
	}
	return friend, nil
}

func (s *CatalogService) GetFriend(ctx context.Context, id string) (domain.Friend, error) {
	return s.friends.Get(ctx, id)
}

func (s *CatalogService) ListFriends(ctx context.Context) ([]domain.Friend, error) {
	return s.friends.List(ctx)
}

func (s *CatalogService) DeleteFriend(ctx context.Context, id string) error {
	return s.friends.Delete(ctx, id)
}

func (s *CatalogService) SeedFriends(ctx context.Context) ([]domain.Friend, error) {
	var seeded []domain.Friend
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		existing, err := s.friends.List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for _, name := range domain.DefaultFriendNames {
			friend := domain.Friend{ID: s.idGen.New(), Name: name, CreatedAt: s.clock.Now()}
			if err := s.friends.Upsert(ctx, friend); err != nil {
				return fmt.Errorf("seed friend %s: %w", name, err)
			}
			seeded = append(seeded, friend)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seeded, nil
}
