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

type SQLiteGameStore struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewSQLiteGameStore(dbGetter txStdLib.DBGetter, logger *log.Logger) catalogout.GameStore {
	return &SQLiteGameStore{dbGetter: dbGetter, l: logger}
}

func (s *SQLiteGameStore) Upsert(ctx context.Context, game domain.Game) error {
	const stmt = `
INSERT INTO games (id, name, icon, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  icon=excluded.icon;
`
	_, err := s.dbGetter(ctx).ExecContext(ctx, stmt,
		game.ID,
		game.Name,
		sql.NullString{String: game.Icon, Valid: game.Icon != ""},
		game.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert game: %w", sqlitedb.Classify(err))
	}
	s.l.Debug("upserted game", "id", game.ID, "name", game.Name)
	return nil
}

func (s *SQLiteGameStore) Get(ctx context.Context, id string) (domain.Game, error) {
	var (
		g       domain.Game
		icon    sql.NullString
		created int64
	)
	err := s.dbGetter(ctx).QueryRowContext(ctx, `SELECT id, name, icon, created_at FROM games WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &icon, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Game{}, fmt.Errorf("game %s: %w", id, apperrors.ErrNotFound)
		}
		return domain.Game{}, fmt.Errorf("get game: %w", err)
	}
	g.Icon = icon.String
	g.CreatedAt = time.UnixMilli(created).UTC()
	return g, nil
}

func (s *SQLiteGameStore) List(ctx context.Context) ([]domain.Game, error) {
	rows, err := s.dbGetter(ctx).QueryContext(ctx, `SELECT id, name, icon, created_at FROM games ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []domain.Game{}
	for rows.Next() {
		var (
			g       domain.Game
			icon    sql.NullString
			created int64
		)
		if err := rows.Scan(&g.ID, &g.Name, &icon, &created); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Icon = icon.String
		g.CreatedAt = time.UnixMilli(created).UTC()
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

// Delete removes the game; sessions that referenced it fall back to no game.
func (s *SQLiteGameStore) Delete(ctx context.Context, id string) error {
	res, err := s.dbGetter(ctx).ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", sqlitedb.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("game %s: %w", id, apperrors.ErrNotFound)
	}
	s.l.Debug("deleted game", "id", id)
	return nil
}
