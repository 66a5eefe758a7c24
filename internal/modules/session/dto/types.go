package dto

import "time"

type CreateInput struct {
	StartAt         time.Time
	EndAt           *time.Time
	DurationSeconds *int
	Platform        string
	GameID          string
	Note            string
	FriendIDs       []string
}

// UpdateInput replaces every mutable field of the session with the given id.
type UpdateInput struct {
	ID              string
	StartAt         time.Time
	EndAt           *time.Time
	DurationSeconds *int
	Platform        string
	GameID          string
	Note            string
	FriendIDs       []string
}

type FinishInput struct {
	ID              string
	StartAt         time.Time
	EndAt           time.Time
	DurationSeconds int
	Platform        string
	GameID          string
	Note            string
	FriendIDs       []string
}

type AddManualInput struct {
	StartAt   time.Time
	EndAt     time.Time
	Platform  string
	GameID    string
	Note      string
	FriendIDs []string
}

type SessionOutput struct {
	ID              string     `json:"id"`
	StartAt         time.Time  `json:"startAt"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	Platform        string     `json:"platform"`
	GameID          string     `json:"gameId,omitempty"`
	Note            string     `json:"note,omitempty"`
	FriendIDs       []string   `json:"friendIds"`
}

type HistoryInput struct {
	Filter string
}

type DaySection struct {
	Day      time.Time
	Sessions []SessionOutput
}

type HistoryOutput struct {
	Filter               string
	From                 time.Time
	To                   time.Time
	Sections             []DaySection
	TotalPlaytimeSeconds int
}
