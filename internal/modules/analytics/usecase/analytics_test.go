package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdto "dragochi/internal/modules/analytics/dto"
	"dragochi/internal/modules/analytics/service"
	"dragochi/internal/modules/analytics/usecase"
	sessiondomain "dragochi/internal/modules/session/domain"
	"dragochi/internal/platform/clock"
	"dragochi/internal/platform/logging"
	"dragochi/internal/platform/metrics"
)

type fakeSource struct {
	sessions []sessiondomain.Session
	err      error
	from, to time.Time
}

func (f *fakeSource) Ended(_ context.Context, from, to time.Time) ([]sessiondomain.Session, error) {
	f.from, f.to = from, to
	return f.sessions, f.err
}

func endedAt(end time.Time, seconds int, platform sessiondomain.Platform) sessiondomain.Session {
	return sessiondomain.Session{StartAt: end.Add(-time.Duration(seconds) * time.Second), EndAt: &end, Platform: platform}
}

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestMonthlyReportFallsBackToLatestMonth(t *testing.T) {
	t.Parallel()
	src := &fakeSource{sessions: []sessiondomain.Session{
		endedAt(time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC), 600, sessiondomain.PlatformPC),
		endedAt(time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC), 300, sessiondomain.PlatformMobile),
	}}
	m := metrics.New()
	uc := usecase.NewInteractor(service.NewReportService(clock.Fixed(now), src, time.UTC, logging.Discard(), m))

	out, err := uc.MonthlyReport(context.Background(), analyticsdto.MonthlyReportInput{Month: now, Latest: true})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), out.Report.MonthStart)
	assert.Equal(t, 600, out.Report.TotalDurationSeconds)
	require.NotNil(t, out.Previous)
	assert.Equal(t, time.February, out.Previous.Month())
	assert.Nil(t, out.Next)

	assert.True(t, src.from.IsZero())
	assert.Equal(t, now, src.to)

	exact, err := uc.MonthlyReport(context.Background(), analyticsdto.MonthlyReportInput{Month: now})
	require.NoError(t, err)
	assert.Equal(t, time.June, exact.Report.MonthStart.Month())
	assert.Zero(t, exact.Report.TotalDurationSeconds)

	months, err := uc.AvailableMonths(context.Background())
	require.NoError(t, err)
	assert.Len(t, months, 2)
}

func TestMonthlyReportPropagatesStoreErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("db locked")
	uc := usecase.NewInteractor(service.NewReportService(clock.Fixed(now), &fakeSource{err: boom}, time.UTC, logging.Discard(), nil))
	_, err := uc.MonthlyReport(context.Background(), analyticsdto.MonthlyReportInput{Month: now})
	assert.ErrorIs(t, err, boom)
	_, err = uc.AvailableMonths(context.Background())
	assert.ErrorIs(t, err, boom)
}
