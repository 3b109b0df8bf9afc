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

// StudySessionStore implements store.StudySessionStore.
type StudySessionStore struct {
	conn
}

// NewStudySessionStore creates a StudySessionStore over db.
func NewStudySessionStore(db store.DBTX, driver sqldb.Driver, logger *slog.Logger) *StudySessionStore {
	return &StudySessionStore{conn: newConn(db, driver, logger, "study_session_store")}
}

var _ store.StudySessionStore = (*StudySessionStore)(nil)

// WithTx implements store.StudySessionStore.WithTx.
func (s *StudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return &StudySessionStore{conn: s.withTx(tx)}
}

// Create implements store.StudySessionStore.Create.
// Returns store.ErrInvalidEntity if the subscription does not exist.
func (s *StudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return err
	}

	err := s.queryRow(ctx, `
		INSERT INTO studysession (subscription_id, start_session, end_session)
		VALUES (?, ?, ?)
		RETURNING id`,
		session.SubscriptionID, session.StartSession, session.EndSession,
	).Scan(&session.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: subscription with ID %d not found",
				store.ErrInvalidEntity, session.SubscriptionID)
		}
		s.log(ctx).Error("failed to create study session", slog.String("error", err.Error()))
		return MapError(err)
	}

	s.log(ctx).Debug("study session created",
		slog.Int64("study_session_id", session.ID),
		slog.Int64("subscription_id", session.SubscriptionID),
		slog.Duration("duration", session.Duration()))
	return nil
}

// GetByID implements store.StudySessionStore.GetByID.
func (s *StudySessionStore) GetByID(ctx context.Context, id int64) (*domain.StudySession, error) {
	var ss domain.StudySession
	err := s.queryRow(ctx, `
		SELECT id, subscription_id, start_session, end_session
		FROM studysession
		WHERE id = ?`, id,
	).Scan(&ss.ID, &ss.SubscriptionID, &ss.StartSession, &ss.EndSession)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStudySessionNotFound
		}
		s.log(ctx).Error("failed to get study session", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	ss.StartSession = utc(ss.StartSession)
	ss.EndSession = utc(ss.EndSession)
	return &ss, nil
}

const studySessionViewQuery = `
	SELECT ss.id, ss.subscription_id, u.email, c.id, c.name, ss.start_session, ss.end_session
	FROM studysession ss
	JOIN subscription s ON s.id = ss.subscription_id
	JOIN course c ON c.id = s.course_id
	JOIN "user" u ON u.id = s.user_id`

// ListBySubscriptions implements store.StudySessionStore.ListBySubscriptions.
func (s *StudySessionStore) ListBySubscriptions(ctx context.Context, subscriptionIDs []int64) ([]domain.StudySessionView, error) {
	if len(subscriptionIDs) == 0 {
		return []domain.StudySessionView{}, nil
	}

	args := make([]any, len(subscriptionIDs))
	for i, id := range subscriptionIDs {
		args[i] = id
	}
	return s.listViews(ctx,
		studySessionViewQuery+`
	WHERE ss.subscription_id IN (`+sqldb.Placeholders(len(args))+`)
	ORDER BY ss.id`,
		args...)
}

// ListByUser implements store.StudySessionStore.ListByUser.
func (s *StudySessionStore) ListByUser(ctx context.Context, userID int64) ([]domain.StudySessionView, error) {
	return s.listViews(ctx,
		studySessionViewQuery+`
	WHERE s.user_id = ?
	ORDER BY ss.id`,
		userID)
}

func (s *StudySessionStore) listViews(ctx context.Context, query string, args ...any) ([]domain.StudySessionView, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		s.log(ctx).Error("failed to list study sessions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	views := []domain.StudySessionView{}
	for rows.Next() {
		var v domain.StudySessionView
		if err := rows.Scan(
			&v.ID,
			&v.SubscriptionID,
			&v.UserEmail,
			&v.CourseID,
			&v.CourseName,
			&v.StartSession,
			&v.EndSession,
		); err != nil {
			return nil, fmt.Errorf("failed to scan study session: %w", err)
		}
		v.StartSession = utc(v.StartSession)
		v.EndSession = utc(v.EndSession)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate study sessions: %w", err)
	}
	return views, nil
}

// CountBySubscription implements store.StudySessionStore.CountBySubscription.
func (s *StudySessionStore) CountBySubscription(ctx context.Context, subscriptionID int64) (int, error) {
	n, err := s.count(ctx,
		`SELECT COUNT(*) FROM studysession WHERE subscription_id = ?`, subscriptionID)
	if err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Delete implements store.StudySessionStore.Delete.
func (s *StudySessionStore) Delete(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM studysession WHERE id = ?`, id)
	if err != nil {
		s.log(ctx).Error("failed to delete study session",
			slog.String("error", err.Error()),
			slog.Int64("study_session_id", id))
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrStudySessionNotFound)
}
