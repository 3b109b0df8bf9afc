package testdb_test

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/phrazzld/studytrack/internal/platform/sqldb"
	"github.com/phrazzld/studytrack/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	url := testdb.URL(t)
	assert.True(t, strings.HasPrefix(url, "sqlite://"))
	assert.NotEqual(t, url, testdb.URL(t), "each call gets its own directory")
}

func TestOpenAppliesMigrations(t *testing.T) {
	db, driver := testdb.Open(t)
	assert.Equal(t, sqldb.DriverSQLite, driver)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&count))
	assert.Zero(t, count)
}

func TestWithTxRollsBack(t *testing.T) {
	db, _ := testdb.Open(t)

	testdb.WithTx(t, db, func(t testing.TB, tx *sql.Tx) {
		_, err := tx.Exec(`INSERT INTO category (name) VALUES (?)`, "SCRATCH")
		require.NoError(t, err)

		var count int
		require.NoError(t, tx.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&count))
	assert.Zero(t, count)
}
