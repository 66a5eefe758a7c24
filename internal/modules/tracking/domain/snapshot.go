package domain

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "dragochi/internal/platform/errors"
)

// Snapshot is the serialized in-flight session handed to the host between launches.
type Snapshot struct {
	SessionID                string     `json:"sessionId"`
	StartAt                  time.Time  `json:"startAt"`
	Setup                    Setup      `json:"setup"`
	AccumulatedActiveSeconds int        `json:"accumulatedActiveSeconds"`
	ActiveSegmentStartedAt   *time.Time `json:"activeSegmentStartedAt,omitempty"`
	Status                   Status     `json:"status"`
}

// SnapshotOf captures s; ok is false when there is nothing in flight to capture.
func SnapshotOf(s State) (Snapshot, bool) {
	if !s.Active() {
		return Snapshot{}, false
	}
	setup := *s.Setup
	setup.FriendIDs = append([]string{}, setup.FriendIDs...)
	snap := Snapshot{
		SessionID:                s.SessionID,
		StartAt:                  *s.StartAt,
		Setup:                    setup,
		AccumulatedActiveSeconds: max(0, s.Accumulated),
		Status:                   s.Status,
	}
	if s.SegmentStartedAt != nil {
		seg := *s.SegmentStartedAt
		snap.ActiveSegmentStartedAt = &seg
	}
	return snap, true
}

func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	if snap.Setup.FriendIDs == nil {
		snap.Setup.FriendIDs = []string{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses data. Anything that does not describe a usable record
// is reported as apperrors.ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", apperrors.ErrMalformedSnapshot, err)
	}
	if !snap.Status.Valid() {
		return Snapshot{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrMalformedSnapshot, snap.Status)
	}
	if snap.Status == StatusIdle {
		return snap, nil
	}
	if snap.SessionID == "" || snap.StartAt.IsZero() {
		return Snapshot{}, fmt.Errorf("%w: session id and start time are required", apperrors.ErrMalformedSnapshot)
	}
	if !snap.Setup.Platform.Valid() {
		return Snapshot{}, fmt.Errorf("%w: unknown platform %q", apperrors.ErrMalformedSnapshot, snap.Setup.Platform)
	}
	if snap.Setup.FriendIDs == nil {
		snap.Setup.FriendIDs = []string{}
	}
	return snap, nil
}

// Restore rebuilds the state recorded in snap and recomputes elapsed at now.
func Restore(snap Snapshot, now time.Time) State {
	start := snap.StartAt
	setup := snap.Setup
	s := State{
		Status:      snap.Status,
		SessionID:   snap.SessionID,
		StartAt:     &start,
		Setup:       &setup,
		Accumulated: max(0, snap.AccumulatedActiveSeconds),
	}
	if snap.ActiveSegmentStartedAt != nil {
		seg := *snap.ActiveSegmentStartedAt
		s.SegmentStartedAt = &seg
	}
	s.Elapsed = s.ElapsedAt(now)
	return s
}
