package out

import (
	"context"
	"errors"
	"time"

	sessiondto "dragochi/internal/modules/session/dto"
	sessionin "dragochi/internal/modules/session/port/in"
	"dragochi/internal/modules/tracking/domain"
	trackingout "dragochi/internal/modules/tracking/port/out"
	apperrors "dragochi/internal/platform/errors"
)

// SessionUsecaseRecorder writes tracked sessions through the session module.
type SessionUsecaseRecorder struct {
	sessions sessionin.Usecase
}

func NewSessionUsecaseRecorder(sessions sessionin.Usecase) trackingout.SessionRecorder {
	return &SessionUsecaseRecorder{sessions: sessions}
}

func (r *SessionUsecaseRecorder) Begin(ctx context.Context, startAt time.Time, setup domain.Setup) (string, error) {
	out, err := r.sessions.Create(ctx, sessiondto.CreateInput{
		StartAt:   startAt,
		Platform:  string(setup.Platform),
		GameID:    setup.GameID,
		Note:      setup.Note,
		FriendIDs: setup.FriendIDs,
	})
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

func (r *SessionUsecaseRecorder) Finish(ctx context.Context, sessionID string, startAt, endAt time.Time, durationSeconds int, setup domain.Setup) error {
	_, err := r.sessions.Finish(ctx, sessiondto.FinishInput{
		ID:              sessionID,
		StartAt:         startAt,
		EndAt:           endAt,
		DurationSeconds: durationSeconds,
		Platform:        string(setup.Platform),
		GameID:          setup.GameID,
		Note:            setup.Note,
		FriendIDs:       setup.FriendIDs,
	})
	return err
}

func (r *SessionUsecaseRecorder) Abandon(ctx context.Context, sessionID string) error {
	return r.sessions.Abandon(ctx, sessionID)
}

func (r *SessionUsecaseRecorder) Running(ctx context.Context, sessionID string) (bool, error) {
	session, err := r.sessions.Get(ctx, sessionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return session.EndAt == nil, nil
}
