// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var dsnName = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewSQLiteBunDB opens an in-memory SQLite database private to tb. The
// connection pool is pinned to one connection so every query sees the same
// memory database. Both handles are closed on cleanup.
func NewSQLiteBunDB(tb testing.TB) *bun.DB {
	tb.Helper()
	dsn := "file:" + dsnName.Replace(tb.Name()) + "?mode=memory&cache=shared&_fk=1"
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	tb.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
