package usecase

import (
	"context"

	backupdto "dragochi/internal/modules/backup/dto"
	backupin "dragochi/internal/modules/backup/port/in"
	"dragochi/internal/modules/backup/service"
)

type Interactor struct {
	svc *service.ExportService
}

func NewInteractor(svc *service.ExportService) backupin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Export(ctx context.Context, input backupdto.ExportInput) (backupdto.ExportOutput, error) {
	payload, err := i.svc.Export(ctx, input.Path)
	if err != nil {
		return backupdto.ExportOutput{}, err
	}
	return backupdto.ExportOutput{
		Path:       input.Path,
		ExportedAt: payload.ExportedAt,
		Games:      len(payload.Games),
		Friends:    len(payload.Friends),
		Sessions:   len(payload.Sessions),
	}, nil
}
