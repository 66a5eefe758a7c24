package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "dragochi/internal/platform/errors"
)

func TestResolvedDurationPrefersStoredValue(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	stored := 30
	negative := -5

	cases := []struct {
		name string
		s    Session
		want int
	}{
		{"stored", Session{StartAt: start, EndAt: &end, DurationSeconds: &stored}, 30},
		{"derived", Session{StartAt: start, EndAt: &end}, 90},
		{"negative clamps", Session{StartAt: start, EndAt: &end, DurationSeconds: &negative}, 0},
		{"running", Session{StartAt: start}, 0},
	}
	for _, tc := range cases {
		if got := tc.s.ResolvedDuration(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestValidateRejectsEndBeforeStart(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Second)
	err := Session{ID: "x", StartAt: start, EndAt: &end, Platform: PlatformPC}.Validate()
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := (Session{ID: "x", StartAt: start, Platform: "switch"}).Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid platform error, got %v", err)
	}
}

func TestNormalizeFriendIDs(t *testing.T) {
	t.Parallel()
	got := NormalizeFriendIDs([]string{"b", " a", "", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestHistoryRanges(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 13, 15, 0, 0, 0, time.UTC) // Thursday

	from, to := FilterThisWeek.Range(now, time.UTC)
	if !from.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("week must start Monday, got %s", from)
	}
	if !to.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)) {
		t.Fatalf("unexpected week end %s", to)
	}

	from, to = FilterLastMonth.Range(now, time.UTC)
	if !from.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) || to.Month() != time.February || to.Day() != 28 {
		t.Fatalf("unexpected last month range %s..%s", from, to)
	}

	from, to = FilterAll.Range(now, time.UTC)
	if !from.IsZero() || !to.Equal(now) {
		t.Fatalf("unexpected all-time range %s..%s", from, to)
	}

	sunday := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)
	from, _ = FilterThisWeek.Range(sunday, time.UTC)
	if from.Day() != 10 {
		t.Fatalf("sunday belongs to the week starting monday the 10th, got %s", from)
	}
}

func TestGroupByDayNewestFirst(t *testing.T) {
	t.Parallel()
	day1 := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	day2late := day2.Add(5 * time.Hour)
	groups := GroupByDay([]Session{
		{ID: "late", EndAt: &day2late},
		{ID: "early", EndAt: &day2},
		{ID: "old", EndAt: &day1},
		{ID: "running"},
	}, time.UTC)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Day.Day() != 2 || len(groups[0].Sessions) != 2 || groups[0].Sessions[0].ID != "late" {
		t.Fatalf("unexpected first group %+v", groups[0])
	}
	if groups[1].Sessions[0].ID != "old" {
		t.Fatalf("unexpected second group %+v", groups[1])
	}
}

func TestParsePlatformAndFilter(t *testing.T) {
	t.Parallel()
	if p, err := ParsePlatform(" Console "); err != nil || p != PlatformConsole {
		t.Fatalf("unexpected parse result %q %v", p, err)
	}
	if _, err := ParseHistoryFilter("yesterday"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid filter, got %v", err)
	}
	if f, _ := ParseHistoryFilter(""); f != FilterAll {
		t.Fatalf("empty filter should default to all, got %q", f)
	}
}
