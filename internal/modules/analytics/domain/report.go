package domain

import (
	"sort"
	"time"

	sessiondomain "dragochi/internal/modules/session/domain"
)

type PlatformBreakdown struct {
	Platform        sessiondomain.Platform `json:"platform"`
	DurationSeconds int                    `json:"durationSeconds"`
}

// GameBreakdown groups play time by game; a nil GameID is the bucket of
// sessions without a game.
type GameBreakdown struct {
	GameID          *string `json:"gameId"`
	DurationSeconds int     `json:"durationSeconds"`
}

type MonthOverMonth struct {
	PreviousMonthTotalDurationSeconds int `json:"previousMonthTotalDurationSeconds"`
	DeltaSeconds                      int `json:"deltaSeconds"`
	// PercentageChange is nil when the previous month has no play time.
	PercentageChange *float64 `json:"percentageChange"`
}

type TrendPoint struct {
	MonthStart           time.Time `json:"monthStart"`
	TotalDurationSeconds int       `json:"totalDurationSeconds"`
}

type TeammateStat struct {
	FriendID        string `json:"friendId"`
	SessionCount    int    `json:"sessionCount"`
	DurationSeconds int    `json:"durationSeconds"`
}

type MonthlyReport struct {
	MonthStart            time.Time           `json:"monthStart"`
	TotalDurationSeconds  int                 `json:"totalDurationSeconds"`
	ByGame                []GameBreakdown     `json:"byGame"`
	ByPlatform            []PlatformBreakdown `json:"byPlatform"`
	MoM                   MonthOverMonth      `json:"mom"`
	TrendLast6Months      []TrendPoint        `json:"trendLast6Months"`
	MostFrequentTeammates []TeammateStat      `json:"mostFrequentTeammates"`
	RareTeammates90Days   []TeammateStat      `json:"rareTeammates90Days"`
}

const trendMonths = 6

type monthKey struct {
	year  int
	month time.Month
}

func keyOf(monthStart time.Time) monthKey {
	return monthKey{year: monthStart.Year(), month: monthStart.Month()}
}

// MonthStart is the first instant of t's calendar month in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// BuildMonthlyReport aggregates ended sessions, attributed to the month of their
// end time, into the report for the month containing month. Running sessions are ignored.
func BuildMonthlyReport(month time.Time, sessions []sessiondomain.Session, loc *time.Location) MonthlyReport {
	target := MonthStart(month, loc)
	totals := map[monthKey]int{}
	byPlatform := map[sessiondomain.Platform]int{}
	byGame := map[string]int{}
	total := 0

	for _, s := range sessions {
		if s.EndAt == nil {
			continue
		}
		d := s.ResolvedDuration()
		m := MonthStart(*s.EndAt, loc)
		totals[keyOf(m)] += d
		if !m.Equal(target) {
			continue
		}
		total += d
		byPlatform[s.Platform] += d
		byGame[s.GameID] += d
	}

	platforms := make([]PlatformBreakdown, 0, len(byPlatform))
	for p, d := range byPlatform {
		platforms = append(platforms, PlatformBreakdown{Platform: p, DurationSeconds: d})
	}
	sort.Slice(platforms, func(i, j int) bool {
		if platforms[i].DurationSeconds != platforms[j].DurationSeconds {
			return platforms[i].DurationSeconds > platforms[j].DurationSeconds
		}
		return platforms[i].Platform < platforms[j].Platform
	})

	games := make([]GameBreakdown, 0, len(byGame))
	for id, d := range byGame {
		g := GameBreakdown{DurationSeconds: d}
		if id != "" {
			g.GameID = &id
		}
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if a.DurationSeconds != b.DurationSeconds {
			return a.DurationSeconds > b.DurationSeconds
		}
		switch {
		case a.GameID == nil:
			return false
		case b.GameID == nil:
			return true
		default:
			return *a.GameID < *b.GameID
		}
	})

	previous := totals[keyOf(target.AddDate(0, -1, 0))]
	mom := MonthOverMonth{PreviousMonthTotalDurationSeconds: previous, DeltaSeconds: total - previous}
	if previous > 0 {
		pct := float64(mom.DeltaSeconds) / float64(previous) * 100
		mom.PercentageChange = &pct
	}

	trend := make([]TrendPoint, 0, trendMonths)
	for offset := trendMonths - 1; offset >= 0; offset-- {
		m := target.AddDate(0, -offset, 0)
		trend = append(trend, TrendPoint{MonthStart: m, TotalDurationSeconds: totals[keyOf(m)]})
	}

	return MonthlyReport{
		MonthStart:            target,
		TotalDurationSeconds:  total,
		ByGame:                games,
		ByPlatform:            platforms,
		MoM:                   mom,
		TrendLast6Months:      trend,
		MostFrequentTeammates: []TeammateStat{},
		RareTeammates90Days:   []TeammateStat{},
	}
}

// AvailableMonths lists, oldest first, every month with at least one ended session.
func AvailableMonths(sessions []sessiondomain.Session, loc *time.Location) []time.Time {
	seen := map[monthKey]struct{}{}
	months := []time.Time{}
	for _, s := range sessions {
		if s.EndAt == nil {
			continue
		}
		m := MonthStart(*s.EndAt, loc)
		if _, ok := seen[keyOf(m)]; ok {
			continue
		}
		seen[keyOf(m)] = struct{}{}
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// ResolveMonth keeps requested when it has data, otherwise falls back to the
// latest month with data. With no data at all, requested is returned.
func ResolveMonth(requested time.Time, available []time.Time, loc *time.Location) time.Time {
	target := MonthStart(requested, loc)
	if len(available) == 0 {
		return target
	}
	for _, m := range available {
		if m.Equal(target) {
			return target
		}
	}
	return available[len(available)-1]
}

// Neighbours returns the months before and after current within available.
func Neighbours(current time.Time, available []time.Time) (prev, next *time.Time) {
	for i := range available {
		m := available[i]
		if m.Before(current) {
			prev = &m
		}
		if m.After(current) && next == nil {
			next = &m
		}
	}
	return prev, next
}
