package sqlitedb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "dragochi/internal/platform/errors"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps dialect and base FS in package globals; configure them once per process.
var (
	gooseOnce sync.Once
	gooseErr  error
)

func configureGoose() error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	return nil
}

// Open opens (creating if needed) the database at path and migrates it to the latest schema.
func Open(ctx context.Context, path string, logger *log.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := "file:" + path + "?" + url.Values{
		"_pragma": []string{"foreign_keys(1)", "busy_timeout(5000)", "journal_mode(WAL)"},
	}.Encode()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if logger != nil {
		if version, err := goose.GetDBVersionContext(ctx, db); err == nil {
			logger.Debug("database ready", "path", path, "version", version)
		}
	}
	return db, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	gooseOnce.Do(func() { gooseErr = configureGoose() })
	if gooseErr != nil {
		return gooseErr
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Classify maps driver constraint failures onto apperrors.ErrConstraint and leaves
// every other error untouched. The original driver error stays in the chain.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if code, ok := code(err); ok && code&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", apperrors.ErrConstraint, err)
	}
	return err
}

// IsUnique reports whether err is a UNIQUE or PRIMARY KEY violation.
func IsUnique(err error) bool {
	c, ok := code(err)
	return ok && (c == sqlite3.SQLITE_CONSTRAINT_UNIQUE || c == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// IsForeignKey reports whether err is a FOREIGN KEY violation.
func IsForeignKey(err error) bool {
	c, ok := code(err)
	return ok && c == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

func code(err error) (int, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return 0, false
	}
	return se.Code(), true
}
