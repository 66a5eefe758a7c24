package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessiondomain "dragochi/internal/modules/session/domain"
)

func ended(end time.Time, seconds int, gameID string, platform sessiondomain.Platform) sessiondomain.Session {
	d := seconds
	return sessiondomain.Session{
		StartAt:         end.Add(-time.Duration(seconds) * time.Second),
		EndAt:           &end,
		DurationSeconds: &d,
		Platform:        platform,
		GameID:          gameID,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 21, 0, 0, 0, time.UTC)
}

func marchScenario() []sessiondomain.Session {
	return []sessiondomain.Session{
		ended(day(2025, 3, 1), 3600, "gameA", sessiondomain.PlatformPC),
		ended(day(2025, 3, 2), 1800, "gameB", sessiondomain.PlatformMobile),
		ended(day(2025, 3, 3), 1200, "gameA", sessiondomain.PlatformPC),
		ended(day(2025, 3, 4), 600, "", sessiondomain.PlatformConsole),
		ended(day(2025, 2, 14), 2400, "gameA", sessiondomain.PlatformPC),
	}
}

func TestMonthlyReportMarchScenario(t *testing.T) {
	t.Parallel()
	report := BuildMonthlyReport(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), marchScenario(), time.UTC)

	assert.Equal(t, 7200, report.TotalDurationSeconds)
	assert.Equal(t, []PlatformBreakdown{
		{Platform: sessiondomain.PlatformPC, DurationSeconds: 4800},
		{Platform: sessiondomain.PlatformMobile, DurationSeconds: 1800},
		{Platform: sessiondomain.PlatformConsole, DurationSeconds: 600},
	}, report.ByPlatform)

	require.Len(t, report.ByGame, 3)
	assert.Equal(t, "gameA", *report.ByGame[0].GameID)
	assert.Equal(t, 4800, report.ByGame[0].DurationSeconds)
	assert.Equal(t, "gameB", *report.ByGame[1].GameID)
	assert.Equal(t, 1800, report.ByGame[1].DurationSeconds)
	assert.Nil(t, report.ByGame[2].GameID)
	assert.Equal(t, 600, report.ByGame[2].DurationSeconds)

	assert.Equal(t, 2400, report.MoM.PreviousMonthTotalDurationSeconds)
	assert.Equal(t, 4800, report.MoM.DeltaSeconds)
	require.NotNil(t, report.MoM.PercentageChange)
	assert.InDelta(t, 200.0, *report.MoM.PercentageChange, 1e-9)

	require.Len(t, report.TrendLast6Months, 6)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), report.TrendLast6Months[0].MonthStart)
	assert.Equal(t, 2400, report.TrendLast6Months[4].TotalDurationSeconds)
	assert.Equal(t, 7200, report.TrendLast6Months[5].TotalDurationSeconds)
	assert.Zero(t, report.TrendLast6Months[0].TotalDurationSeconds)

	assert.Empty(t, report.MostFrequentTeammates)
	assert.Empty(t, report.RareTeammates90Days)
}

func TestMonthlyReportNormalizesMonthAndIsIdempotent(t *testing.T) {
	t.Parallel()
	sessions := marchScenario()
	a := BuildMonthlyReport(time.Date(2025, 3, 17, 13, 45, 0, 0, time.UTC), sessions, time.UTC)
	b := BuildMonthlyReport(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), sessions, time.UTC)

	first, err := json.Marshal(a)
	require.NoError(t, err)
	second, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), `"mostFrequentTeammates":[]`)
}

func TestPercentageChangeNilWithoutPreviousMonth(t *testing.T) {
	t.Parallel()
	sessions := []sessiondomain.Session{ended(day(2025, 3, 1), 100, "", sessiondomain.PlatformPC)}
	report := BuildMonthlyReport(day(2025, 3, 1), sessions, time.UTC)
	assert.Nil(t, report.MoM.PercentageChange)
	assert.Equal(t, 100, report.MoM.DeltaSeconds)

	empty := BuildMonthlyReport(day(2025, 4, 1), sessions, time.UTC)
	require.NotNil(t, empty.MoM.PercentageChange)
	assert.InDelta(t, -100.0, *empty.MoM.PercentageChange, 1e-9)
	assert.Empty(t, empty.ByGame)
	assert.Empty(t, empty.ByPlatform)
	assert.Zero(t, empty.TotalDurationSeconds)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"percentageChange":null`)
}

func TestTieBreaksAreDeterministic(t *testing.T) {
	t.Parallel()
	sessions := []sessiondomain.Session{
		ended(day(2025, 5, 2), 300, "", sessiondomain.PlatformMobile),
		ended(day(2025, 5, 3), 300, "b", sessiondomain.PlatformPC),
		ended(day(2025, 5, 4), 300, "a", sessiondomain.PlatformConsole),
	}
	report := BuildMonthlyReport(day(2025, 5, 1), sessions, time.UTC)
	assert.Equal(t, sessiondomain.PlatformConsole, report.ByPlatform[0].Platform)
	assert.Equal(t, sessiondomain.PlatformMobile, report.ByPlatform[1].Platform)
	assert.Equal(t, sessiondomain.PlatformPC, report.ByPlatform[2].Platform)
	assert.Equal(t, "a", *report.ByGame[0].GameID)
	assert.Equal(t, "b", *report.ByGame[1].GameID)
	assert.Nil(t, report.ByGame[2].GameID)
}

func TestResolvedDurationAndRunningSessions(t *testing.T) {
	t.Parallel()
	end := day(2025, 6, 10)
	derived := sessiondomain.Session{StartAt: end.Add(-90 * time.Second), EndAt: &end, Platform: sessiondomain.PlatformPC}
	negative := ended(day(2025, 6, 11), 0, "", sessiondomain.PlatformPC)
	neg := -50
	negative.DurationSeconds = &neg
	running := sessiondomain.Session{StartAt: end, Platform: sessiondomain.PlatformPC}

	report := BuildMonthlyReport(end, []sessiondomain.Session{derived, negative, running}, time.UTC)
	assert.Equal(t, 90, report.TotalDurationSeconds)
}

func TestMonthAttributionUsesLocation(t *testing.T) {
	t.Parallel()
	tokyo := time.FixedZone("JST", 9*3600)
	// 2025-03-31 20:00 UTC is already April 1st in Tokyo.
	s := ended(time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC), 60, "", sessiondomain.PlatformPC)
	assert.Zero(t, BuildMonthlyReport(time.Date(2025, 3, 15, 0, 0, 0, 0, tokyo), []sessiondomain.Session{s}, tokyo).TotalDurationSeconds)
	assert.Equal(t, 60, BuildMonthlyReport(time.Date(2025, 4, 15, 0, 0, 0, 0, tokyo), []sessiondomain.Session{s}, tokyo).TotalDurationSeconds)
}

func TestAvailableMonthsAndNavigation(t *testing.T) {
	t.Parallel()
	months := AvailableMonths(marchScenario(), time.UTC)
	require.Len(t, months, 2)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []time.Time{feb, mar}, months)

	assert.Equal(t, mar, ResolveMonth(time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC), months, time.UTC))
	assert.Equal(t, feb, ResolveMonth(time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC), months, time.UTC))
	jul := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, jul, ResolveMonth(jul, nil, time.UTC))

	prev, next := Neighbours(mar, months)
	require.NotNil(t, prev)
	assert.Equal(t, feb, *prev)
	assert.Nil(t, next)
	prev, next = Neighbours(feb, months)
	assert.Nil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, mar, *next)
}
