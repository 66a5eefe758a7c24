// Package sqlitetest opens migrated throwaway databases for store tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	txStdLib "github.com/Thiht/transactor/stdlib"

	"dragochi/internal/platform/sqlitedb"
	"dragochi/internal/platform/tx"
)

type DB struct {
	SQL    *sql.DB
	Getter txStdLib.DBGetter
	Tx     tx.Manager
}

func Open(t testing.TB) DB {
	t.Helper()
	db, err := sqlitedb.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	transactor, getter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	return DB{SQL: db, Getter: getter, Tx: tx.FromTransactor(transactor)}
}

// Exec runs raw statements, failing the test on the first error.
func (d DB) Exec(t testing.TB, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := d.SQL.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}
