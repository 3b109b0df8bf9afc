package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver
	_ "modernc.org/sqlite"             // registers the pure-Go sqlite driver
)

// Open connects to the store named by databaseURL and verifies the connection.
// The returned driver tells stores how to rebind placeholders.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*sql.DB, Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	switch driver {
	case DriverSQLite:
		// One writer at a time; the tool is single-threaded anyway.
		db.SetMaxOpenConns(1)
	case DriverPostgres:
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Debug("database connection established",
		"driver", string(driver),
		"url", MaskURL(databaseURL))

	return db, driver, nil
}
