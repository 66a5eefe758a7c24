package dto

import "time"

type StartInput struct {
	GameID    string
	Platform  string
	FriendIDs []string
	Note      string
}

type StateOutput struct {
	Status             string     `json:"status"`
	SessionID          string     `json:"sessionId,omitempty"`
	StartAt            *time.Time `json:"startAt,omitempty"`
	GameID             string     `json:"gameId,omitempty"`
	Platform           string     `json:"platform,omitempty"`
	FriendIDs          []string   `json:"friendIds,omitempty"`
	Note               string     `json:"note,omitempty"`
	AccumulatedSeconds int        `json:"accumulatedSeconds"`
	SegmentStartedAt   *time.Time `json:"segmentStartedAt,omitempty"`
	ElapsedSeconds     int        `json:"elapsedSeconds"`
}

type StopOutput struct {
	SessionID       string
	StartAt         time.Time
	EndAt           time.Time
	DurationSeconds int
	Stopped         bool
}
