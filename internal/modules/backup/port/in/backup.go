package in

import (
	"context"

	"dragochi/internal/modules/backup/dto"
)

type Usecase interface {
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
