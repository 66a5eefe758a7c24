package dto

import (
	"time"

	"dragochi/internal/modules/analytics/domain"
)

type MonthlyReportInput struct {
	Month time.Time
	// Latest picks the most recent month with data when Month has none.
	Latest bool
}

type MonthlyReportOutput struct {
	Report   domain.MonthlyReport
	Previous *time.Time
	Next     *time.Time
}
