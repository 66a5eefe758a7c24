package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const CurrentVersion = 1

type GameRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type FriendRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle,omitempty"`
}

type SessionRecord struct {
	ID              string     `json:"id"`
	StartAt         time.Time  `json:"startAt"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	Platform        string     `json:"platform"`
	GameID          string     `json:"gameId,omitempty"`
	Note            string     `json:"note,omitempty"`
	FriendIDs       []string   `json:"friendIds"`
}

type Payload struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Games      []GameRecord    `json:"games"`
	Friends    []FriendRecord  `json:"friends"`
	Sessions   []SessionRecord `json:"sessions"`
}

func NewPayload(exportedAt time.Time, games []GameRecord, friends []FriendRecord, sessions []SessionRecord) Payload {
	if games == nil {
		games = []GameRecord{}
	}
	if friends == nil {
		friends = []FriendRecord{}
	}
	if sessions == nil {
		sessions = []SessionRecord{}
	}
	return Payload{Version: CurrentVersion, ExportedAt: exportedAt, Games: games, Friends: friends, Sessions: sessions}
}

func (p Payload) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return append(data, '\n'), nil
}
