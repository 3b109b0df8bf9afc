package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
)

// SubscriptionStore defines the interface for subscription data persistence.
type SubscriptionStore interface {
	// Create saves a new subscription and sets its ID.
	// Duplicate (user, course) pairs are accepted.
	Create(ctx context.Context, sub *domain.Subscription) error

	// GetByID retrieves a subscription by ID.
	// Returns ErrSubscriptionNotFound if the subscription does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)

	// GetByUserAndCourse retrieves the oldest subscription linking userID to courseID.
	// Returns ErrSubscriptionNotFound if there is none.
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*domain.Subscription, error)

	// ListByUser returns the user's subscriptions joined with course,
	// category and user, in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]domain.SubscriptionView, error)

	// CountByCourse returns how many subscriptions reference courseID.
	CountByCourse(ctx context.Context, courseID int64) (int, error)

	// CountByUser returns how many subscriptions reference userID.
	CountByUser(ctx context.Context, userID int64) (int, error)

	// Delete removes a subscription by ID.
	// Returns ErrSubscriptionNotFound if the subscription does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a SubscriptionStore bound to tx.
	WithTx(tx *sql.Tx) SubscriptionStore
}
