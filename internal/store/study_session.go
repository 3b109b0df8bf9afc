package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
)

// StudySessionStore defines the interface for study session data persistence.
type StudySessionStore interface {
	// Create saves a new study session and sets its ID.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a study session by ID.
	// Returns ErrStudySessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id int64) (*domain.StudySession, error)

	// ListBySubscriptions returns the study sessions of the given
	// subscriptions joined with course and user, in insertion order.
	// An empty id list yields an empty result.
	ListBySubscriptions(ctx context.Context, subscriptionIDs []int64) ([]domain.StudySessionView, error)

	// ListByUser returns every study session recorded on any of the
	// user's subscriptions, in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]domain.StudySessionView, error)

	// CountBySubscription returns how many study sessions reference subscriptionID.
	CountBySubscription(ctx context.Context, subscriptionID int64) (int, error)

	// Delete removes a study session by ID.
	// Returns ErrStudySessionNotFound if the session does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a StudySessionStore bound to tx.
	WithTx(tx *sql.Tx) StudySessionStore
}
