package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timetrack/internal/db"
)

// NewTestDB opens a migrated in-memory database, closed with the test.
// It holds a single connection, so it cannot host concurrent writers.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewFileTestDB opens a migrated WAL database under the test's temp dir.
// Its connections share state, which concurrency tests need.
func NewFileTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), name))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
