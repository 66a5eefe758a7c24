package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "dragochi/internal/platform/errors"
)

type Platform string

const (
	PlatformPC      Platform = "pc"
	PlatformConsole Platform = "console"
	PlatformMobile  Platform = "mobile"
)

var Platforms = []Platform{PlatformPC, PlatformConsole, PlatformMobile}

func ParsePlatform(raw string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown platform %q", apperrors.ErrInvalidInput, raw)
	}
	return p, nil
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformPC, PlatformConsole, PlatformMobile:
		return true
	}
	return false
}

// Session is one play period. EndAt is nil while the session is still being tracked.
// GameID is a weak reference; empty means no game.
type Session struct {
	ID              string
	StartAt         time.Time
	EndAt           *time.Time
	DurationSeconds *int
	Platform        Platform
	GameID          string
	Note            string
	FriendIDs       []string
}

func (s Session) Running() bool {
	return s.EndAt == nil
}

func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if s.StartAt.IsZero() {
		return fmt.Errorf("%w: start time is required", apperrors.ErrInvalidInput)
	}
	if !s.Platform.Valid() {
		return fmt.Errorf("%w: unknown platform %q", apperrors.ErrInvalidInput, s.Platform)
	}
	if s.EndAt != nil && s.EndAt.Before(s.StartAt) {
		return fmt.Errorf("%w: end %s is before start %s", apperrors.ErrInvalidInput, s.EndAt.Format(time.RFC3339), s.StartAt.Format(time.RFC3339))
	}
	return nil
}

// ResolvedDuration is the stored duration when present, otherwise the wall span
// between start and end. Never negative; zero for a running session without a duration.
func (s Session) ResolvedDuration() int {
	if s.DurationSeconds != nil {
		return max(0, *s.DurationSeconds)
	}
	if s.EndAt == nil {
		return 0
	}
	return SpanSeconds(s.StartAt, *s.EndAt)
}

// SpanSeconds is max(0, to-from) truncated to whole seconds.
func SpanSeconds(from, to time.Time) int {
	return max(0, int(to.Sub(from)/time.Second))
}

// NormalizeFriendIDs trims, drops empties and duplicates, and sorts.
func NormalizeFriendIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
