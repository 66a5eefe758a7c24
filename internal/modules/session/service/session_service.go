package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dragochi/internal/modules/session/domain"
	sessionout "dragochi/internal/modules/session/port/out"
	"dragochi/internal/platform/clock"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
	loc   *time.Location
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore, loc *time.Location) *SessionService {
	if loc == nil {
		loc = time.Local
	}
	return &SessionService{clock: clock, idGen: idGen, store: store, loc: loc}
}

func (s *SessionService) Create(ctx context.Context, draft domain.Session) (domain.Session, error) {
	draft.ID = s.idGen.New()
	session, err := prepare(draft)
	if err != nil {
		return domain.Session{}, err
	}
	return s.store.Insert(ctx, session)
}

// Update fully replaces the stored session with the same id.
func (s *SessionService) Update(ctx context.Context, session domain.Session) (domain.Session, error) {
	if strings.TrimSpace(session.ID) == "" {
		return domain.Session{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	prepared, err := prepare(session)
	if err != nil {
		return domain.Session{}, err
	}
	return s.store.Update(ctx, prepared)
}

// Finish writes the end of a running session. A session that already ended is
// left untouched.
func (s *SessionService) Finish(ctx context.Context, session domain.Session) (domain.Session, error) {
	if strings.TrimSpace(session.ID) == "" {
		return domain.Session{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if session.EndAt == nil {
		return domain.Session{}, fmt.Errorf("%w: end time is required", apperrors.ErrInvalidInput)
	}
	prepared, err := prepare(session)
	if err != nil {
		return domain.Session{}, err
	}
	return s.store.Finish(ctx, prepared)
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.store.Get(ctx, id)
}

func (s *SessionService) ListEnded(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", apperrors.ErrInvalidInput)
	}
	return s.store.ListEnded(ctx, from, to)
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *SessionService) Abandon(ctx context.Context, id string) error {
	return s.store.DeleteRunning(ctx, id)
}

type History struct {
	From, To time.Time
	Groups   []domain.DayGroup
	Total    int
}

func (s *SessionService) History(ctx context.Context, filter domain.HistoryFilter) (History, error) {
	from, to := filter.Range(s.clock.Now(), s.loc)
	sessions, err := s.store.ListEnded(ctx, from, to)
	if err != nil {
		return History{}, err
	}
	total := 0
	for _, session := range sessions {
		total += session.ResolvedDuration()
	}
	return History{From: from, To: to, Groups: domain.GroupByDay(sessions, s.loc), Total: total}, nil
}

func prepare(session domain.Session) (domain.Session, error) {
	session.GameID = strings.TrimSpace(session.GameID)
	session.Note = strings.TrimSpace(session.Note)
	session.FriendIDs = domain.NormalizeFriendIDs(session.FriendIDs)
	if session.EndAt != nil && session.DurationSeconds == nil {
		d := domain.SpanSeconds(session.StartAt, *session.EndAt)
		session.DurationSeconds = &d
	}
	if session.DurationSeconds != nil && *session.DurationSeconds < 0 {
		zero := 0
		session.DurationSeconds = &zero
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}
