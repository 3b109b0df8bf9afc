package sqldb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "sqlite://" + filepath.Join(t.TempDir(), "tracker.db")
	db, driver, err := Open(context.Background(), url, nil)
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, driver)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestEnsureSchemaCreatesTables(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureSchema(ctx, db, DriverSQLite, nil))
	// A second run is a no-op.
	require.NoError(t, EnsureSchema(ctx, db, DriverSQLite, nil))

	for _, table := range []string{"user", "category", "course", "subscription", "studysession", "session"} {
		assert.True(t, tableExists(t, db, table), "table %s should exist", table)
	}
}

func TestSchemaEnforcesConstraints(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db, DriverSQLite, nil))

	t.Run("foreign keys are enforced", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO course (name, category_id) VALUES (?, ?)", "ORPHAN", 999)
		assert.Error(t, err)
	})

	t.Run("only one active session", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO "user" (email) VALUES (?)`, "A@X.IO")
		require.NoError(t, err)

		now := time.Now().UTC()
		_, err = db.Exec(`INSERT INTO "session" (user_id, opened_on, is_active) VALUES (1, ?, ?)`, now, true)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO "session" (user_id, opened_on, is_active) VALUES (1, ?, ?)`, now, true)
		assert.Error(t, err)

		// Inactive rows are unrestricted.
		_, err = db.Exec(`INSERT INTO "session" (user_id, opened_on, is_active) VALUES (1, ?, ?)`, now, false)
		assert.NoError(t, err)
		_, err = db.Exec(`INSERT INTO "session" (user_id, opened_on, is_active) VALUES (1, ?, ?)`, now, false)
		assert.NoError(t, err)
	})
}

func TestMigrateDownAndStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	log, buf := logger.NewTestLogger()

	require.NoError(t, Migrate(ctx, db, DriverSQLite, MigrateUp, log))
	require.NoError(t, Migrate(ctx, db, DriverSQLite, MigrateStatus, log))
	assert.Contains(t, buf.String(), "00001_create_tracker_tables.sql")

	require.NoError(t, Migrate(ctx, db, DriverSQLite, MigrateDown, log))
	assert.False(t, tableExists(t, db, "course"))
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	db := openTestDB(t)

	err := Migrate(context.Background(), db, DriverSQLite, "redo-everything", nil)
	assert.ErrorContains(t, err, "unsupported migration command")
}
