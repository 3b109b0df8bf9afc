package testdb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/phrazzld/studytrack/internal/platform/sqldb"
	"github.com/stretchr/testify/require"
)

// URL returns the URL of a SQLite database file in a fresh temporary
// directory. The file is created on first use.
func URL(t testing.TB) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), "studytrack.db")
}

// Open opens a database at URL(t) with every migration applied. The
// database is closed when the test completes.
func Open(t testing.TB) (*sql.DB, sqldb.Driver) {
	t.Helper()

	ctx := context.Background()
	db, driver, err := sqldb.Open(ctx, URL(t), nil)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	require.NoError(t, sqldb.EnsureSchema(ctx, db, driver, nil), "Failed to apply migrations")
	return db, driver
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t testing.TB, db *sql.DB, fn func(t testing.TB, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		// sql.ErrTxDone is expected if fn already ended the transaction
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
