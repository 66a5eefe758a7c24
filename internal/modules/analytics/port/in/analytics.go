package in

import (
	"context"
	"time"

	"dragochi/internal/modules/analytics/dto"
)

type Usecase interface {
	MonthlyReport(ctx context.Context, input dto.MonthlyReportInput) (dto.MonthlyReportOutput, error)
	AvailableMonths(ctx context.Context) ([]time.Time, error)
}
