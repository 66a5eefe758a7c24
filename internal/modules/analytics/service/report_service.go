package service

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"dragochi/internal/modules/analytics/domain"
	analyticsout "dragochi/internal/modules/analytics/port/out"
	sessiondomain "dragochi/internal/modules/session/domain"
	"dragochi/internal/platform/clock"
	"dragochi/internal/platform/metrics"
)

type ReportService struct {
	clock   clock.Clock
	source  analyticsout.SessionSource
	loc     *time.Location
	l       *log.Logger
	metrics *metrics.Metrics
}

func NewReportService(clock clock.Clock, source analyticsout.SessionSource, loc *time.Location, logger *log.Logger, m *metrics.Metrics) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{clock: clock, source: source, loc: loc, l: logger, metrics: m}
}

func (s *ReportService) Location() *time.Location {
	return s.loc
}

// EndedSessions loads every session that ended up to now.
func (s *ReportService) EndedSessions(ctx context.Context) ([]sessiondomain.Session, error) {
	sessions, err := s.source.Ended(ctx, time.Time{}, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("load ended sessions: %w", err)
	}
	return sessions, nil
}

func (s *ReportService) MonthlyReport(ctx context.Context, month time.Time) (domain.MonthlyReport, error) {
	sessions, err := s.EndedSessions(ctx)
	if err != nil {
		return domain.MonthlyReport{}, err
	}
	return s.build(month, sessions), nil
}

func (s *ReportService) build(month time.Time, sessions []sessiondomain.Session) domain.MonthlyReport {
	started := time.Now()
	report := domain.BuildMonthlyReport(month, sessions, s.loc)
	if s.metrics != nil {
		s.metrics.ReportSeconds.Observe(time.Since(started).Seconds())
	}
	if s.l != nil {
		s.l.Debug("built monthly report", "month", report.MonthStart.Format("2006-01"), "sessions", len(sessions), "total", report.TotalDurationSeconds)
	}
	return report
}

type Navigated struct {
	Report     domain.MonthlyReport
	Prev, Next *time.Time
}

// Navigate builds the report for month (or the latest month with data when
// latest is set and month has none) along with its neighbouring months.
func (s *ReportService) Navigate(ctx context.Context, month time.Time, latest bool) (Navigated, error) {
	sessions, err := s.EndedSessions(ctx)
	if err != nil {
		return Navigated{}, err
	}
	available := domain.AvailableMonths(sessions, s.loc)
	target := domain.MonthStart(month, s.loc)
	if latest {
		target = domain.ResolveMonth(month, available, s.loc)
	}
	report := s.build(target, sessions)
	prev, next := domain.Neighbours(report.MonthStart, available)
	return Navigated{Report: report, Prev: prev, Next: next}, nil
}
