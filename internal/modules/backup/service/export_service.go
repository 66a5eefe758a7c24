package service

import (
	"context"
	"fmt"
	"strings"

	"dragochi/internal/modules/backup/domain"
	backupout "dragochi/internal/modules/backup/port/out"
	"dragochi/internal/platform/clock"
	apperrors "dragochi/internal/platform/errors"
)

type ExportService struct {
	clock    clock.Clock
	catalog  backupout.CatalogSource
	sessions backupout.SessionSource
	sink     backupout.Sink
}

func NewExportService(clock clock.Clock, catalog backupout.CatalogSource, sessions backupout.SessionSource, sink backupout.Sink) *ExportService {
	return &ExportService{clock: clock, catalog: catalog, sessions: sessions, sink: sink}
}

func (s *ExportService) Export(ctx context.Context, path string) (domain.Payload, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Payload{}, fmt.Errorf("%w: backup path is required", apperrors.ErrInvalidInput)
	}
	now := s.clock.Now()
	games, err := s.catalog.Games(ctx)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("export games: %w", err)
	}
	friends, err := s.catalog.Friends(ctx)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("export friends: %w", err)
	}
	sessions, err := s.sessions.EndedBefore(ctx, now)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("export sessions: %w", err)
	}
	payload := domain.NewPayload(now, games, friends, sessions)
	data, err := payload.Encode()
	if err != nil {
		return domain.Payload{}, err
	}
	if err := s.sink.Write(ctx, path, data); err != nil {
		return domain.Payload{}, err
	}
	return payload, nil
}
