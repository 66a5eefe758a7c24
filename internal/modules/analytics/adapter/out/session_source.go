package out

import (
	"context"
	"time"

	analyticsout "dragochi/internal/modules/analytics/port/out"
	sessiondomain "dragochi/internal/modules/session/domain"
	sessionin "dragochi/internal/modules/session/port/in"
)

type SessionUsecaseSource struct {
	sessions sessionin.Usecase
}

func NewSessionUsecaseSource(sessions sessionin.Usecase) analyticsout.SessionSource {
	return &SessionUsecaseSource{sessions: sessions}
}

func (s *SessionUsecaseSource) Ended(ctx context.Context, from, to time.Time) ([]sessiondomain.Session, error) {
	rows, err := s.sessions.ListEnded(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondomain.Session, 0, len(rows))
	for _, r := range rows {
		out = append(out, sessiondomain.Session{
			ID:              r.ID,
			StartAt:         r.StartAt,
			EndAt:           r.EndAt,
			DurationSeconds: r.DurationSeconds,
			Platform:        sessiondomain.Platform(r.Platform),
			GameID:          r.GameID,
			Note:            r.Note,
			FriendIDs:       r.FriendIDs,
		})
	}
	return out, nil
}
