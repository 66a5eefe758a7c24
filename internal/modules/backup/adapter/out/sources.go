package out

import (
	"context"
	"time"

	"dragochi/internal/modules/backup/domain"
	backupout "dragochi/internal/modules/backup/port/out"
	catalogin "dragochi/internal/modules/catalog/port/in"
	sessionin "dragochi/internal/modules/session/port/in"
)

type CatalogUsecaseSource struct {
	catalog catalogin.Usecase
}

func NewCatalogUsecaseSource(catalog catalogin.Usecase) backupout.CatalogSource {
	return &CatalogUsecaseSource{catalog: catalog}
}

func (s *CatalogUsecaseSource) Games(ctx context.Context) ([]domain.GameRecord, error) {
	games, err := s.catalog.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.GameRecord, 0, len(games))
	for _, g := range games {
		out = append(out, domain.GameRecord{ID: g.ID, Name: g.Name, Icon: g.Icon})
	}
	return out, nil
}

func (s *CatalogUsecaseSource) Friends(ctx context.Context) ([]domain.FriendRecord, error) {
	friends, err := s.catalog.ListFriends(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FriendRecord, 0, len(friends))
	for _, f := range friends {
		out = append(out, domain.FriendRecord{ID: f.ID, Name: f.Name, Handle: f.Handle})
	}
	return out, nil
}

type SessionUsecaseSource struct {
	sessions sessionin.Usecase
}

func NewSessionUsecaseSource(sessions sessionin.Usecase) backupout.SessionSource {
	return &SessionUsecaseSource{sessions: sessions}
}

func (s *SessionUsecaseSource) EndedBefore(ctx context.Context, to time.Time) ([]domain.SessionRecord, error) {
	rows, err := s.sessions.ListEnded(ctx, time.Time{}, to)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SessionRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.SessionRecord{
			ID:              r.ID,
			StartAt:         r.StartAt,
			EndAt:           r.EndAt,
			DurationSeconds: r.DurationSeconds,
			Platform:        r.Platform,
			GameID:          r.GameID,
			Note:            r.Note,
			FriendIDs:       r.FriendIDs,
		})
	}
	return out, nil
}
