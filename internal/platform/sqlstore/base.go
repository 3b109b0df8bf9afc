package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/platform/sqldb"
	"github.com/phrazzld/studytrack/internal/store"
)

// conn is the part shared by every store: a connection or transaction,
// the driver it speaks and a logger.
type conn struct {
	db        store.DBTX
	driver    sqldb.Driver
	logger    *slog.Logger
	component string
}

func newConn(db store.DBTX, driver sqldb.Driver, log *slog.Logger, component string) conn {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return conn{
		db:        db,
		driver:    driver,
		logger:    log,
		component: component,
	}
}

func (c conn) withTx(tx *sql.Tx) conn {
	c.db = tx
	return c
}

// log prefers the request-scoped logger carried by ctx.
func (c conn) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, c.logger).With(slog.String("component", c.component))
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, c.driver.Rebind(query), args...)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, c.driver.Rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, c.driver.Rebind(query), args...)
}

// count runs a SELECT COUNT(*) query.
func (c conn) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := c.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// utc normalizes a scanned timestamp; drivers differ in the location they attach.
func utc(t time.Time) time.Time {
	return t.UTC()
}
