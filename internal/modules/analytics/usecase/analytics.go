package usecase

import (
	"context"
	"time"

	"dragochi/internal/modules/analytics/domain"
	analyticsdto "dragochi/internal/modules/analytics/dto"
	analyticsin "dragochi/internal/modules/analytics/port/in"
	"dragochi/internal/modules/analytics/service"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) MonthlyReport(ctx context.Context, input analyticsdto.MonthlyReportInput) (analyticsdto.MonthlyReportOutput, error) {
	nav, err := i.svc.Navigate(ctx, input.Month, input.Latest)
	if err != nil {
		return analyticsdto.MonthlyReportOutput{}, err
	}
	return analyticsdto.MonthlyReportOutput{Report: nav.Report, Previous: nav.Prev, Next: nav.Next}, nil
}

func (i *Interactor) AvailableMonths(ctx context.Context) ([]time.Time, error) {
	sessions, err := i.svc.EndedSessions(ctx)
	if err != nil {
		return nil, err
	}
	return domain.AvailableMonths(sessions, i.svc.Location()), nil
}
