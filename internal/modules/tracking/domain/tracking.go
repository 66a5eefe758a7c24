package domain

import (
	"time"

	sessiondomain "dragochi/internal/modules/session/domain"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusRunning, StatusPaused:
		return true
	}
	return false
}

// Setup is what the player picked before starting: the game is optional, the
// friend list may be empty.
type Setup struct {
	GameID    string                 `json:"gameId,omitempty"`
	Platform  sessiondomain.Platform `json:"platform"`
	FriendIDs []string               `json:"friendIds"`
	Note      string                 `json:"note,omitempty"`
}

// State is the in-memory tracking record. Elapsed is the last value shown to the
// user and survives a stop so the final duration stays visible.
type State struct {
	Status           Status
	SessionID        string
	StartAt          *time.Time
	Setup            *Setup
	Accumulated      int
	SegmentStartedAt *time.Time
	Elapsed          int
}

func Idle() State {
	return State{Status: StatusIdle}
}

// Active reports whether a stop would do anything.
func (s State) Active() bool {
	return s.Status != StatusIdle && s.SessionID != "" && s.StartAt != nil && s.Setup != nil
}

// ElapsedAt is the active play time at now. Paused time never counts.
func (s State) ElapsedAt(now time.Time) int {
	switch s.Status {
	case StatusPaused:
		return max(0, s.Accumulated)
	case StatusRunning:
		if s.SegmentStartedAt == nil {
			return s.Accumulated
		}
		return s.Accumulated + sessiondomain.SpanSeconds(*s.SegmentStartedAt, now)
	default:
		return s.Elapsed
	}
}

func Begin(sessionID string, setup Setup, now time.Time) State {
	start := now
	segment := now
	return State{
		Status:           StatusRunning,
		SessionID:        sessionID,
		StartAt:          &start,
		Setup:            &setup,
		Accumulated:      0,
		SegmentStartedAt: &segment,
		Elapsed:          0,
	}
}

// Toggle pauses a running state or resumes a paused one. Idle is returned unchanged.
func (s State) Toggle(now time.Time) State {
	switch s.Status {
	case StatusRunning:
		if s.SegmentStartedAt != nil {
			s.Accumulated += sessiondomain.SpanSeconds(*s.SegmentStartedAt, now)
		}
		s.SegmentStartedAt = nil
		s.Status = StatusPaused
		s.Elapsed = s.Accumulated
	case StatusPaused:
		segment := now
		s.SegmentStartedAt = &segment
		s.Status = StatusRunning
		s.Elapsed = s.ElapsedAt(now)
	}
	return s
}

// Stopped is the idle state left behind by a stop; elapsed keeps the final value.
func Stopped(final int) State {
	return State{Status: StatusIdle, Elapsed: final}
}
