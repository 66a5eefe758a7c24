package in

import (
	"context"

	backupdto "dragochi/internal/modules/backup/dto"
	backupin "dragochi/internal/modules/backup/port/in"
)

type CLIHandler struct {
	usecase backupin.Usecase
}

func NewCLIHandler(usecase backupin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, path string) (backupdto.ExportOutput, error) {
	return h.usecase.Export(ctx, backupdto.ExportInput{Path: path})
}
