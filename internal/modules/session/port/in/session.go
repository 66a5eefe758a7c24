package in

import (
	"context"
	"time"

	"dragochi/internal/modules/session/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.SessionOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SessionOutput, error)
	// Finish ends a running session exactly once.
	Finish(ctx context.Context, input dto.FinishInput) (dto.SessionOutput, error)
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
	// ListEnded returns sessions whose end time falls in [from, to], newest end first.
	ListEnded(ctx context.Context, from, to time.Time) ([]dto.SessionOutput, error)
	Delete(ctx context.Context, id string) error
	// Abandon deletes a session only while it is still running.
	Abandon(ctx context.Context, id string) error
	AddManual(ctx context.Context, input dto.AddManualInput) (dto.SessionOutput, error)
	History(ctx context.Context, input dto.HistoryInput) (dto.HistoryOutput, error)
}
