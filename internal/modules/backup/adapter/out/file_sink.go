package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	backupout "dragochi/internal/modules/backup/port/out"
)

type FileSink struct{}

func NewFileSink() backupout.Sink {
	return FileSink{}
}

func (FileSink) Write(_ context.Context, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace backup: %w", err)
	}
	return nil
}
