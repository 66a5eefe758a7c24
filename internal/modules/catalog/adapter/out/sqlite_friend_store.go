package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"dragochi/internal/modules/catalog/domain"
	catalogout "dragochi/internal/modules/catalog/port/out"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/platform/sqlitedb"
)

type SQLiteFriendStore struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewSQLiteFriendStore(dbGetter txStdLib.DBGetter, logger *log.Logger) catalogout.FriendStore {
	return &SQLiteFriendStore{dbGetter: dbGetter, l: logger}
}

func (s *SQLiteFriendStore) Upsert(ctx context.Context, friend domain.Friend) error {
	const stmt = `
INSERT INTO friends (id, name, handle, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  handle=excluded.handle;
`
	_, err := s.dbGetter(ctx).ExecContext(ctx, stmt,
		friend.ID,
		friend.Name,
		sql.NullString{String: friend.Handle, Valid: friend.Handle != ""},
		friend.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert friend: %w", sqlitedb.Classify(err))
	}
	s.l.Debug("upserted friend", "id", friend.ID, "name", friend.Name)
	return nil
}

func (s *SQLiteFriendStore) Get(ctx context.Context, id string) (domain.Friend, error) {
	var (
		f       domain.Friend
		handle  sql.NullString
		created int64
	)
	err := s.dbGetter(ctx).QueryRowContext(ctx, `SELECT id, name, handle, created_at FROM friends WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &handle, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Friend{}, fmt.Errorf("friend %s: %w", id, apperrors.ErrNotFound)
		}
		return domain.Friend{}, fmt.Errorf("get friend: %w", err)
	}
	f.Handle = handle.String
	f.CreatedAt = time.UnixMilli(created).UTC()
	return f, nil
}

func (s *SQLiteFriendStore) List(ctx context.Context) ([]domain.Friend, error) {
	rows, err := s.dbGetter(ctx).QueryContext(ctx, `SELECT id, name, handle, created_at FROM friends ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("query friends: %w", err)
	}
	defer rows.Close()

	friends := []domain.Friend{}
	for rows.Next() {
		var (
			f       domain.Friend
			handle  sql.NullString
			created int64
		)
		if err := rows.Scan(&f.ID, &f.Name, &handle, &created); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		f.Handle = handle.String
		f.CreatedAt = time.UnixMilli(created).UTC()
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate friends: %w", err)
	}
	return friends, nil
}

// Delete removes the friend and every session link to it.
func (s *SQLiteFriendStore) Delete(ctx context.Context, id string) error {
	res, err := s.dbGetter(ctx).ExecContext(ctx, `DELETE FROM friends WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete friend: %w", sqlitedb.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete friend rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("friend %s: %w", id, apperrors.ErrNotFound)
	}
	s.l.Debug("deleted friend", "id", id)
	return nil
}
