package domain

import (
	"fmt"
	"sort"
	"time"

	apperrors "dragochi/internal/platform/errors"
)

type HistoryFilter string

const (
	FilterAll       HistoryFilter = "all"
	FilterThisWeek  HistoryFilter = "week"
	FilterLastMonth HistoryFilter = "last-month"
)

func ParseHistoryFilter(raw string) (HistoryFilter, error) {
	switch f := HistoryFilter(raw); f {
	case FilterAll, FilterThisWeek, FilterLastMonth:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("%w: unknown history filter %q", apperrors.ErrInvalidInput, raw)
}

// Range returns the inclusive end-time window selected by f, evaluated at now in loc.
// Weeks start on Monday.
func (f HistoryFilter) Range(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	switch f {
	case FilterThisWeek:
		day := StartOfDay(local)
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case FilterLastMonth:
		thisMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return thisMonth.AddDate(0, -1, 0), thisMonth.Add(-time.Nanosecond)
	default:
		return time.Time{}, now
	}
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type DayGroup struct {
	Day      time.Time
	Sessions []Session
}

// GroupByDay buckets ended sessions by the local calendar day of their end time,
// newest day first. Order within a day follows the input.
func GroupByDay(sessions []Session, loc *time.Location) []DayGroup {
	groups := []DayGroup{}
	index := map[time.Time]int{}
	for _, s := range sessions {
		if s.EndAt == nil {
			continue
		}
		day := StartOfDay(s.EndAt.In(loc))
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Day.After(groups[j].Day) })
	return groups
}
