package in

import (
	"context"
	"time"

	analyticsdto "dragochi/internal/modules/analytics/dto"
	analyticsin "dragochi/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Month builds the report for month. With latest set, an empty month falls back
// to the most recent month that has sessions.
func (h CLIHandler) Month(ctx context.Context, month time.Time, latest bool) (analyticsdto.MonthlyReportOutput, error) {
	return h.usecase.MonthlyReport(ctx, analyticsdto.MonthlyReportInput{Month: month, Latest: latest})
}

func (h CLIHandler) Months(ctx context.Context) ([]time.Time, error) {
	return h.usecase.AvailableMonths(ctx)
}
