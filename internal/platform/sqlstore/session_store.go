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

// SessionStore implements store.SessionStore.
type SessionStore struct {
	conn
}

// NewSessionStore creates a SessionStore over db.
func NewSessionStore(db store.DBTX, driver sqldb.Driver, logger *slog.Logger) *SessionStore {
	return &SessionStore{conn: newConn(db, driver, logger, "session_store")}
}

var _ store.SessionStore = (*SessionStore)(nil)

// WithTx implements store.SessionStore.WithTx.
func (s *SessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &SessionStore{conn: s.withTx(tx)}
}

// Create implements store.SessionStore.Create.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	err := s.queryRow(ctx, `
		INSERT INTO "session" (user_id, opened_on, is_active)
		VALUES (?, ?, ?)
		RETURNING id`,
		session.UserID, session.OpenedOn, session.IsActive,
	).Scan(&session.ID)
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			return fmt.Errorf("%w: %v", store.ErrActiveSessionExists, err)
		case IsForeignKeyViolation(err):
			return fmt.Errorf("%w: user with ID %d not found", store.ErrInvalidEntity, session.UserID)
		}
		s.log(ctx).Error("failed to create session", slog.String("error", err.Error()))
		return MapError(err)
	}

	s.log(ctx).Debug("session created",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", session.UserID))
	return nil
}

// GetActive implements store.SessionStore.GetActive.
func (s *SessionStore) GetActive(ctx context.Context) (*domain.Session, error) {
	var (
		session domain.Session
		userID  sql.NullInt64
	)
	err := s.queryRow(ctx, `
		SELECT id, user_id, opened_on, is_active
		FROM "session"
		WHERE is_active`,
	).Scan(&session.ID, &userID, &session.OpenedOn, &session.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		s.log(ctx).Error("failed to get active session", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	session.UserID = userID.Int64
	session.OpenedOn = utc(session.OpenedOn)
	return &session, nil
}

// GetActiveView implements store.SessionStore.GetActiveView.
func (s *SessionStore) GetActiveView(ctx context.Context) (*domain.SessionView, error) {
	var v domain.SessionView
	err := s.queryRow(ctx, `
		SELECT s.id, u.id, u.email, s.opened_on, s.is_active
		FROM "session" s
		JOIN "user" u ON u.id = s.user_id
		WHERE s.is_active`,
	).Scan(&v.ID, &v.UserID, &v.UserEmail, &v.OpenedOn, &v.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		s.log(ctx).Error("failed to get active session view", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	v.OpenedOn = utc(v.OpenedOn)
	return &v, nil
}

// Update implements store.SessionStore.Update.
func (s *SessionStore) Update(ctx context.Context, session *domain.Session) error {
	result, err := s.exec(ctx,
		`UPDATE "session" SET is_active = ? WHERE id = ?`,
		session.IsActive, session.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrActiveSessionExists, err)
		}
		s.log(ctx).Error("failed to update session",
			slog.String("error", err.Error()),
			slog.Int64("session_id", session.ID))
		return MapError(err)
	}
	return checkRowsAffected(result, fmt.Errorf("%w: session %d", store.ErrNotFound, session.ID))
}
