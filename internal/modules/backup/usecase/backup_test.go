package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	backupoutadapter "dragochi/internal/modules/backup/adapter/out"
	"dragochi/internal/modules/backup/domain"
	backupdto "dragochi/internal/modules/backup/dto"
	"dragochi/internal/modules/backup/service"
	"dragochi/internal/modules/backup/usecase"
	"dragochi/internal/platform/clock"
	apperrors "dragochi/internal/platform/errors"
)

type fakeCatalog struct {
	games   []domain.GameRecord
	friends []domain.FriendRecord
	err     error
}

func (f fakeCatalog) Games(context.Context) ([]domain.GameRecord, error) { return f.games, f.err }

func (f fakeCatalog) Friends(context.Context) ([]domain.FriendRecord, error) {
	return f.friends, f.err
}

type fakeSessions struct {
	rows []domain.SessionRecord
	to   time.Time
}

func (f *fakeSessions) EndedBefore(_ context.Context, to time.Time) ([]domain.SessionRecord, error) {
	f.to = to
	return f.rows, nil
}

var exportedAt = time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC)

func TestExportWritesVersionedPayload(t *testing.T) {
	t.Parallel()
	end := exportedAt.Add(-time.Hour)
	dur := 1800
	sessions := &fakeSessions{rows: []domain.SessionRecord{{
		ID: "s1", StartAt: end.Add(-time.Hour), EndAt: &end, DurationSeconds: &dur,
		Platform: "pc", GameID: "g1", FriendIDs: []string{"f1"},
	}}}
	catalog := fakeCatalog{
		games:   []domain.GameRecord{{ID: "g1", Name: "Valorant"}},
		friends: []domain.FriendRecord{{ID: "f1", Name: "Ava"}},
	}
	uc := usecase.NewInteractor(service.NewExportService(clock.Fixed(exportedAt), catalog, sessions, backupoutadapter.NewFileSink()))

	path := filepath.Join(t.TempDir(), "nested", "backup.json")
	out, err := uc.Export(context.Background(), backupdto.ExportInput{Path: path})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Games != 1 || out.Friends != 1 || out.Sessions != 1 || !out.ExportedAt.Equal(exportedAt) {
		t.Fatalf("unexpected output %+v", out)
	}
	if !sessions.to.Equal(exportedAt) {
		t.Fatalf("sessions should be bounded by export time, got %v", sessions.to)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode backup: %v", err)
	}
	if decoded["version"] != float64(domain.CurrentVersion) {
		t.Fatalf("expected version %d, got %v", domain.CurrentVersion, decoded["version"])
	}
	for _, key := range []string{"exportedAt", "games", "friends", "sessions"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing %q in %s", key, raw)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be gone, stat err=%v", err)
	}
}

func TestExportEmptyCollectionsEncodeAsArrays(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewExportService(clock.Fixed(exportedAt), fakeCatalog{}, &fakeSessions{}, backupoutadapter.NewFileSink()))
	path := filepath.Join(t.TempDir(), "backup.json")
	if _, err := uc.Export(context.Background(), backupdto.ExportInput{Path: path}); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	var payload domain.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Games == nil || payload.Friends == nil || payload.Sessions == nil {
		t.Fatalf("expected empty arrays, got %s", raw)
	}
}

func TestExportRejectsBlankPath(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewExportService(clock.Fixed(exportedAt), fakeCatalog{}, &fakeSessions{}, backupoutadapter.NewFileSink()))
	if _, err := uc.Export(context.Background(), backupdto.ExportInput{Path: "  "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestExportPropagatesSourceFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	uc := usecase.NewInteractor(service.NewExportService(clock.Fixed(exportedAt), fakeCatalog{err: boom}, &fakeSessions{}, backupoutadapter.NewFileSink()))
	path := filepath.Join(t.TempDir(), "backup.json")
	if _, err := uc.Export(context.Background(), backupdto.ExportInput{Path: path}); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file should be written on failure")
	}
}
