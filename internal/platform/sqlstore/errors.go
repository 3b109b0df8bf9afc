package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/studytrack/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// violation is a driver-independent kind of constraint failure.
type violation int

const (
	violationNone violation = iota
	violationUnique
	violationForeignKey
	violationCheck
	violationNotNull
)

// classify reports which constraint, if any, err violated.
func classify(err error) violation {
	if err == nil {
		return violationNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return violationUnique
		case foreignKeyViolationCode:
			return violationForeignKey
		case checkViolationCode:
			return violationCheck
		case notNullViolationCode:
			return violationNotNull
		}
		return violationNone
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return violationUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return violationForeignKey
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return violationCheck
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return violationNotNull
		}
		// Extended result codes may be disabled; fall back to the message.
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := liteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE"):
				return violationUnique
			case strings.Contains(msg, "FOREIGN KEY"):
				return violationForeignKey
			case strings.Contains(msg, "NOT NULL"):
				return violationNotNull
			case strings.Contains(msg, "CHECK"):
				return violationCheck
			}
		}
	}

	return violationNone
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return classify(err) == violationUnique
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return classify(err) == violationForeignKey
}

// MapError maps a database error to the store's error taxonomy, wrapping
// the original error for debugging. Errors without a mapping are returned
// unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	switch classify(err) {
	case violationUnique:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case violationForeignKey:
		return fmt.Errorf("%w: foreign key violation: %v", store.ErrInvalidEntity, err)
	case violationCheck:
		return fmt.Errorf("%w: check constraint violation: %v", store.ErrInvalidEntity, err)
	case violationNotNull:
		return fmt.Errorf("%w: not null violation: %v", store.ErrInvalidEntity, err)
	}

	return err
}

// checkRowsAffected returns notFound when result touched no rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
