package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/sqldb"
	"github.com/phrazzld/studytrack/internal/store"
)

// SubscriptionStore implements store.SubscriptionStore.
type SubscriptionStore struct {
	conn
}

// NewSubscriptionStore creates a SubscriptionStore over db.
func NewSubscriptionStore(db store.DBTX, driver sqldb.Driver, logger *slog.Logger) *SubscriptionStore {
	return &SubscriptionStore{conn: newConn(db, driver, logger, "subscription_store")}
}

var _ store.SubscriptionStore = (*SubscriptionStore)(nil)

// WithTx implements store.SubscriptionStore.WithTx.
func (s *SubscriptionStore) WithTx(tx *sql.Tx) store.SubscriptionStore {
	return &SubscriptionStore{conn: s.withTx(tx)}
}

// Create implements store.SubscriptionStore.Create.
// Returns store.ErrInvalidEntity if the user or course does not exist.
func (s *SubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	err := s.queryRow(ctx, `
		INSERT INTO subscription (course_id, user_id, subscribed_on, conclusion_on)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		sub.CourseID, sub.UserID, sub.SubscribedOn, sub.ConclusionOn,
	).Scan(&sub.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d or course %d not found",
				store.ErrInvalidEntity, sub.UserID, sub.CourseID)
		}
		s.log(ctx).Error("failed to create subscription", slog.String("error", err.Error()))
		return MapError(err)
	}

	s.log(ctx).Debug("subscription created",
		slog.Int64("subscription_id", sub.ID),
		slog.Int64("user_id", sub.UserID),
		slog.Int64("course_id", sub.CourseID))
	return nil
}

const subscriptionColumns = `id, course_id, user_id, subscribed_on, conclusion_on`

// GetByID implements store.SubscriptionStore.GetByID.
func (s *SubscriptionStore) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	return s.getOne(ctx,
		`SELECT `+subscriptionColumns+` FROM subscription WHERE id = ?`, id)
}

// GetByUserAndCourse implements store.SubscriptionStore.GetByUserAndCourse.
func (s *SubscriptionStore) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*domain.Subscription, error) {
	return s.getOne(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscription
		WHERE user_id = ? AND course_id = ?
		ORDER BY id
		LIMIT 1`, userID, courseID)
}

func (s *SubscriptionStore) getOne(ctx context.Context, query string, args ...any) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.queryRow(ctx, query, args...).Scan(
		&sub.ID,
		&sub.CourseID,
		&sub.UserID,
		&sub.SubscribedOn,
		&sub.ConclusionOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSubscriptionNotFound
		}
		s.log(ctx).Error("failed to get subscription", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	sub.SubscribedOn = utc(sub.SubscribedOn)
	sub.ConclusionOn = utc(sub.ConclusionOn)
	return &sub, nil
}

// ListByUser implements store.SubscriptionStore.ListByUser.
func (s *SubscriptionStore) ListByUser(ctx context.Context, userID int64) ([]domain.SubscriptionView, error) {
	rows, err := s.query(ctx, `
		SELECT s.id, u.email, c.name, cat.name, s.subscribed_on, s.conclusion_on
		FROM subscription s
		JOIN "user" u ON u.id = s.user_id
		JOIN course c ON c.id = s.course_id
		JOIN category cat ON cat.id = c.category_id
		WHERE s.user_id = ?
		ORDER BY s.id`, userID)
	if err != nil {
		s.log(ctx).Error("failed to list subscriptions",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	subs := []domain.SubscriptionView{}
	for rows.Next() {
		var v domain.SubscriptionView
		if err := rows.Scan(
			&v.ID,
			&v.UserEmail,
			&v.CourseName,
			&v.CategoryName,
			&v.SubscribedOn,
			&v.ConclusionOn,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		v.SubscribedOn = utc(v.SubscribedOn)
		v.ConclusionOn = utc(v.ConclusionOn)
		subs = append(subs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}

// CountByCourse implements store.SubscriptionStore.CountByCourse.
func (s *SubscriptionStore) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM subscription WHERE course_id = ?`, courseID)
	if err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// CountByUser implements store.SubscriptionStore.CountByUser.
func (s *SubscriptionStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM subscription WHERE user_id = ?`, userID)
	if err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Delete implements store.SubscriptionStore.Delete.
func (s *SubscriptionStore) Delete(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM subscription WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: subscription %d: %v", store.ErrReferenced, id, err)
		}
		s.log(ctx).Error("failed to delete subscription",
			slog.String("error", err.Error()),
			slog.Int64("subscription_id", id))
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrSubscriptionNotFound)
}
