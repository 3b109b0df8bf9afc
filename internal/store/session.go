package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
)

// SessionStore defines the interface for login session persistence.
// Only the session manager in internal/service writes through it.
type SessionStore interface {
	// Create saves a new session and sets its ID.
	// Returns ErrActiveSessionExists if the session is active and another
	// active session is already stored.
	Create(ctx context.Context, session *domain.Session) error

	// GetActive retrieves the active session.
	// Returns ErrSessionNotFound if no session is active.
	GetActive(ctx context.Context) (*domain.Session, error)

	// GetActiveView retrieves the active session joined with its user.
	// Returns ErrSessionNotFound if no session is active.
	GetActiveView(ctx context.Context) (*domain.SessionView, error)

	// Update persists the session's active flag.
	// Returns ErrNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.Session) error

	// WithTx returns a SessionStore bound to tx.
	WithTx(tx *sql.Tx) SessionStore
}
