package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Supported migration commands.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// gooseMu serializes use of goose's package-level configuration.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards goose failures at error level. It does not exit; the
// failure is also returned to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func migrationsDir(driver Driver) (dir, dialect string, err error) {
	switch driver {
	case DriverSQLite:
		return path.Join("migrations", "sqlite"), string(goose.DialectSQLite3), nil
	case DriverPostgres:
		return path.Join("migrations", "postgres"), string(goose.DialectPostgres), nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Migrate runs a goose command against db using the embedded migrations
// for driver. Supported commands are up, down, status and version.
func Migrate(ctx context.Context, db *sql.DB, driver Driver, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "migrations", "command", command)

	switch command {
	case MigrateUp, MigrateDown, MigrateStatus, MigrateVersion:
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}

	dir, dialect, err := migrationsDir(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: logger})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	logger.Debug("running migrations", "dir", dir, "dialect", dialect)
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// EnsureSchema applies all pending migrations.
func EnsureSchema(ctx context.Context, db *sql.DB, driver Driver, logger *slog.Logger) error {
	return Migrate(ctx, db, driver, MigrateUp, logger)
}
