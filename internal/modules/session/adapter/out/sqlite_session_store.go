package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"dragochi/internal/modules/session/domain"
	sessionout "dragochi/internal/modules/session/port/out"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/platform/sqlitedb"
	"dragochi/internal/platform/tx"
)

const selectSessions = `SELECT id, start_at, end_at, duration_seconds, platform, game_id, note FROM sessions`

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sessionEntity struct {
	ID              string
	StartAt         int64
	EndAt           sql.NullInt64
	DurationSeconds sql.NullInt64
	Platform        string
	GameID          sql.NullString
	Note            sql.NullString
}

type SQLiteSessionStore struct {
	dbGetter txStdLib.DBGetter
	tx       tx.Manager
	l        *log.Logger
}

func NewSQLiteSessionStore(dbGetter txStdLib.DBGetter, txm tx.Manager, logger *log.Logger) sessionout.SessionStore {
	return &SQLiteSessionStore{dbGetter: dbGetter, tx: txm, l: logger}
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.Session) (domain.Session, error) {
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		db := s.dbGetter(ctx)
		gameID, err := resolveGame(ctx, db, session.GameID)
		if err != nil {
			return err
		}
		session.GameID = gameID
		if err := checkFriends(ctx, db, session.FriendIDs); err != nil {
			return err
		}
		e := toEntity(session)
		_, err = db.ExecContext(ctx,
			`INSERT INTO sessions (id, start_at, end_at, duration_seconds, platform, game_id, note) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.StartAt, e.EndAt, e.DurationSeconds, e.Platform, e.GameID, e.Note,
		)
		if err != nil {
			if session.Running() && sqlitedb.IsUnique(err) {
				return fmt.Errorf("insert session: %w", apperrors.ErrActiveSessionExists)
			}
			return fmt.Errorf("insert session: %w", sqlitedb.Classify(err))
		}
		return replaceFriends(ctx, db, session.ID, session.FriendIDs)
	})
	if err != nil {
		return domain.Session{}, err
	}
	s.l.Debug("inserted session", "id", session.ID, "running", session.Running(), "friends", len(session.FriendIDs))
	return session, nil
}

func (s *SQLiteSessionStore) Update(ctx context.Context, session domain.Session) (domain.Session, error) {
	return s.write(ctx, session, false)
}

// Finish is Update restricted to a row that has not ended yet.
func (s *SQLiteSessionStore) Finish(ctx context.Context, session domain.Session) (domain.Session, error) {
	return s.write(ctx, session, true)
}

func (s *SQLiteSessionStore) write(ctx context.Context, session domain.Session, runningOnly bool) (domain.Session, error) {
	query := `UPDATE sessions SET start_at = ?, end_at = ?, duration_seconds = ?, platform = ?, game_id = ?, note = ? WHERE id = ?`
	if runningOnly {
		query += ` AND end_at IS NULL`
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		db := s.dbGetter(ctx)
		gameID, err := resolveGame(ctx, db, session.GameID)
		if err != nil {
			return err
		}
		session.GameID = gameID
		if err := checkFriends(ctx, db, session.FriendIDs); err != nil {
			return err
		}
		e := toEntity(session)
		res, err := db.ExecContext(ctx, query,
			e.StartAt, e.EndAt, e.DurationSeconds, e.Platform, e.GameID, e.Note, e.ID,
		)
		if err != nil {
			if session.Running() && sqlitedb.IsUnique(err) {
				return fmt.Errorf("update session: %w", apperrors.ErrActiveSessionExists)
			}
			return fmt.Errorf("update session: %w", sqlitedb.Classify(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update session rows affected: %w", err)
		}
		if n == 0 {
			if runningOnly {
				return fmt.Errorf("session %s is not running: %w", session.ID, apperrors.ErrNoActiveSession)
			}
			return fmt.Errorf("session %s: %w", session.ID, apperrors.ErrNotFound)
		}
		return replaceFriends(ctx, db, session.ID, session.FriendIDs)
	})
	if err != nil {
		return domain.Session{}, err
	}
	s.l.Debug("updated session", "id", session.ID, "running", session.Running(), "finish", runningOnly)
	return session, nil
}

func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	db := s.dbGetter(ctx)
	var e sessionEntity
	err := db.QueryRowContext(ctx, selectSessions+` WHERE id = ?`, id).
		Scan(&e.ID, &e.StartAt, &e.EndAt, &e.DurationSeconds, &e.Platform, &e.GameID, &e.Note)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	links, err := loadFriends(ctx, db, `SELECT session_id, friend_id FROM session_friends WHERE session_id = ? ORDER BY friend_id`, id)
	if err != nil {
		return domain.Session{}, err
	}
	return toDomain(e, links[id]), nil
}

func (s *SQLiteSessionStore) ListEnded(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	db := s.dbGetter(ctx)
	fromMS, toMS := from.UnixMilli(), to.UnixMilli()
	rows, err := db.QueryContext(ctx,
		selectSessions+` WHERE end_at IS NOT NULL AND end_at BETWEEN ? AND ? ORDER BY end_at DESC, id ASC`,
		fromMS, toMS,
	)
	if err != nil {
		return nil, fmt.Errorf("query ended sessions: %w", err)
	}
	defer rows.Close()

	entities := []sessionEntity{}
	for rows.Next() {
		var e sessionEntity
		if err := rows.Scan(&e.ID, &e.StartAt, &e.EndAt, &e.DurationSeconds, &e.Platform, &e.GameID, &e.Note); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	if len(entities) == 0 {
		return []domain.Session{}, nil
	}

	links, err := loadFriends(ctx, db,
		`SELECT sf.session_id, sf.friend_id FROM session_friends sf
JOIN sessions s ON s.id = sf.session_id
WHERE s.end_at IS NOT NULL AND s.end_at BETWEEN ? AND ?
ORDER BY sf.friend_id`,
		fromMS, toMS,
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(entities))
	for _, e := range entities {
		out = append(out, toDomain(e, links[e.ID]))
	}
	s.l.Debug("listed ended sessions", "from", from, "to", to, "count", len(out))
	return out, nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id, false)
}

// DeleteRunning removes the session only while it has not ended.
func (s *SQLiteSessionStore) DeleteRunning(ctx context.Context, id string) error {
	return s.remove(ctx, id, true)
}

func (s *SQLiteSessionStore) remove(ctx context.Context, id string, runningOnly bool) error {
	query := `DELETE FROM sessions WHERE id = ?`
	if runningOnly {
		query += ` AND end_at IS NULL`
	}
	res, err := s.dbGetter(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", sqlitedb.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session rows affected: %w", err)
	}
	if n == 0 {
		if runningOnly {
			return fmt.Errorf("session %s is not running: %w", id, apperrors.ErrNoActiveSession)
		}
		return fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	}
	s.l.Debug("deleted session", "id", id, "running", runningOnly)
	return nil
}

// resolveGame drops a reference to a game that does not exist.
func resolveGame(ctx context.Context, db querier, gameID string) (string, error) {
	if gameID == "" {
		return "", nil
	}
	var found string
	err := db.QueryRowContext(ctx, `SELECT id FROM games WHERE id = ?`, gameID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve game: %w", err)
	}
	return found, nil
}

func checkFriends(ctx context.Context, db querier, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := db.QueryContext(ctx, `SELECT id FROM friends WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("check friends: %w", err)
	}
	defer rows.Close()
	found := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan friend id: %w", err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate friend ids: %w", err)
	}
	missing := []string{}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing friend ids: %s", apperrors.ErrConstraint, strings.Join(missing, ", "))
	}
	return nil
}

func replaceFriends(ctx context.Context, db querier, sessionID string, friendIDs []string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM session_friends WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear session friends: %w", err)
	}
	for _, friendID := range friendIDs {
		if _, err := db.ExecContext(ctx, `INSERT INTO session_friends (session_id, friend_id) VALUES (?, ?)`, sessionID, friendID); err != nil {
			return fmt.Errorf("link friend %s: %w", friendID, sqlitedb.Classify(err))
		}
	}
	return nil
}

func loadFriends(ctx context.Context, db querier, query string, args ...any) (map[string][]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session friends: %w", err)
	}
	defer rows.Close()
	links := map[string][]string{}
	for rows.Next() {
		var sessionID, friendID string
		if err := rows.Scan(&sessionID, &friendID); err != nil {
			return nil, fmt.Errorf("scan session friend: %w", err)
		}
		links[sessionID] = append(links[sessionID], friendID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session friends: %w", err)
	}
	return links, nil
}

func toEntity(s domain.Session) sessionEntity {
	e := sessionEntity{
		ID:       s.ID,
		StartAt:  s.StartAt.UnixMilli(),
		Platform: string(s.Platform),
		GameID:   sql.NullString{String: s.GameID, Valid: s.GameID != ""},
		Note:     sql.NullString{String: s.Note, Valid: s.Note != ""},
	}
	if s.EndAt != nil {
		e.EndAt = sql.NullInt64{Int64: s.EndAt.UnixMilli(), Valid: true}
	}
	if s.DurationSeconds != nil {
		e.DurationSeconds = sql.NullInt64{Int64: int64(*s.DurationSeconds), Valid: true}
	}
	return e
}

func toDomain(e sessionEntity, friendIDs []string) domain.Session {
	s := domain.Session{
		ID:        e.ID,
		StartAt:   time.UnixMilli(e.StartAt).UTC(),
		Platform:  domain.Platform(e.Platform),
		GameID:    e.GameID.String,
		Note:      e.Note.String,
		FriendIDs: friendIDs,
	}
	if s.FriendIDs == nil {
		s.FriendIDs = []string{}
	}
	if e.EndAt.Valid {
		end := time.UnixMilli(e.EndAt.Int64).UTC()
		s.EndAt = &end
	}
	if e.DurationSeconds.Valid {
		d := int(e.DurationSeconds.Int64)
		s.DurationSeconds = &d
	}
	return s
}
