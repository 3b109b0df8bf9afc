package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studytrack/internal/platform/sqldb"
)

// runMigrate runs a goose command. Goose output goes to stdout without
// timestamps so that status listings read like a report.
func (a *App) runMigrate(ctx context.Context, db *sql.DB, driver sqldb.Driver, args []string) error {
	command := sqldb.MigrateUp
	switch len(args) {
	case 0:
	case 1:
		command = args[0]
	default:
		return usagef("migrate takes at most one argument")
	}

	switch command {
	case sqldb.MigrateUp, sqldb.MigrateDown, sqldb.MigrateStatus, sqldb.MigrateVersion:
	default:
		return usagef("unknown migrate command %q", command)
	}

	report := slog.New(slog.NewTextHandler(a.out, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 && (attr.Key == slog.TimeKey || attr.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return attr
		},
	}))

	if err := sqldb.Migrate(ctx, db, driver, command, report); err != nil {
		return fmt.Errorf("migrate %s failed: %w", command, err)
	}
	fmt.Fprintf(a.out, "migrate %s: done\n", command)
	return nil
}
