// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/renanvzd/nlw-pocket/internal/db"
)

// New returns a migrated SQLite database living in the test's temp dir.
// It is closed automatically when the test ends.
func New(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init(ctx, db.DriverSQLite, path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)

	t.Cleanup(func() {
		database.Close()
	})

	err = db.RunMigrations(ctx, database.DB, db.DriverSQLite)
	require.NoError(t, err)

	return database
}
