package usecase

import (
	"context"
	"fmt"
	"time"

	"dragochi/internal/modules/session/domain"
	sessiondto "dragochi/internal/modules/session/dto"
	sessionin "dragochi/internal/modules/session/port/in"
	"dragochi/internal/modules/session/service"
	apperrors "dragochi/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input sessiondto.CreateInput) (sessiondto.SessionOutput, error) {
	platform, err := domain.ParsePlatform(input.Platform)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	created, err := i.svc.Create(ctx, domain.Session{
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		DurationSeconds: input.DurationSeconds,
		Platform:        platform,
		GameID:          input.GameID,
		Note:            input.Note,
		FriendIDs:       input.FriendIDs,
	})
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(created), nil
}

func (i *Interactor) Update(ctx context.Context, input sessiondto.UpdateInput) (sessiondto.SessionOutput, error) {
	platform, err := domain.ParsePlatform(input.Platform)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	updated, err := i.svc.Update(ctx, domain.Session{
		ID:              input.ID,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		DurationSeconds: input.DurationSeconds,
		Platform:        platform,
		GameID:          input.GameID,
		Note:            input.Note,
		FriendIDs:       input.FriendIDs,
	})
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(updated), nil
}

func (i *Interactor) Finish(ctx context.Context, input sessiondto.FinishInput) (sessiondto.SessionOutput, error) {
	platform, err := domain.ParsePlatform(input.Platform)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	end, duration := input.EndAt, input.DurationSeconds
	finished, err := i.svc.Finish(ctx, domain.Session{
		ID:              input.ID,
		StartAt:         input.StartAt,
		EndAt:           &end,
		DurationSeconds: &duration,
		Platform:        platform,
		GameID:          input.GameID,
		Note:            input.Note,
		FriendIDs:       input.FriendIDs,
	})
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(finished), nil
}

func (i *Interactor) Get(ctx context.Context, id string) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, id)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) ListEnded(ctx context.Context, from, to time.Time) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.ListEnded(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Abandon(ctx context.Context, id string) error {
	return i.svc.Abandon(ctx, id)
}

// AddManual records a session that already happened; duration is the span between the two times.
func (i *Interactor) AddManual(ctx context.Context, input sessiondto.AddManualInput) (sessiondto.SessionOutput, error) {
	if input.StartAt.IsZero() || input.EndAt.IsZero() {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: start and end are required", apperrors.ErrInvalidInput)
	}
	end := input.EndAt
	return i.Create(ctx, sessiondto.CreateInput{
		StartAt:   input.StartAt,
		EndAt:     &end,
		Platform:  input.Platform,
		GameID:    input.GameID,
		Note:      input.Note,
		FriendIDs: input.FriendIDs,
	})
}

func (i *Interactor) History(ctx context.Context, input sessiondto.HistoryInput) (sessiondto.HistoryOutput, error) {
	filter, err := domain.ParseHistoryFilter(input.Filter)
	if err != nil {
		return sessiondto.HistoryOutput{}, err
	}
	history, err := i.svc.History(ctx, filter)
	if err != nil {
		return sessiondto.HistoryOutput{}, err
	}
	sections := make([]sessiondto.DaySection, 0, len(history.Groups))
	for _, g := range history.Groups {
		rows := make([]sessiondto.SessionOutput, 0, len(g.Sessions))
		for _, s := range g.Sessions {
			rows = append(rows, toOutput(s))
		}
		sections = append(sections, sessiondto.DaySection{Day: g.Day, Sessions: rows})
	}
	return sessiondto.HistoryOutput{
		Filter:               string(filter),
		From:                 history.From,
		To:                   history.To,
		Sections:             sections,
		TotalPlaytimeSeconds: history.Total,
	}, nil
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	friends := s.FriendIDs
	if friends == nil {
		friends = []string{}
	}
	return sessiondto.SessionOutput{
		ID:              s.ID,
		StartAt:         s.StartAt,
		EndAt:           s.EndAt,
		DurationSeconds: s.DurationSeconds,
		Platform:        string(s.Platform),
		GameID:          s.GameID,
		Note:            s.Note,
		FriendIDs:       friends,
	}
}
