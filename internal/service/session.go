package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/store"
)

// Clock returns the current time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// SessionResolver resolves the user of the active login session.
// Session-scoped operations call it before touching the store.
type SessionResolver interface {
	// CurrentUser returns the ID of the logged-in user, or ErrUnauthenticated.
	CurrentUser(ctx context.Context) (int64, error)
}

// SessionManager owns the login session state machine. At most one session
// is active at any time.
type SessionManager interface {
	SessionResolver

	// Login opens a session for the user with email. Logging in again as
	// the active user returns the existing session. Returns
	// store.ErrUserNotFound for an unknown email and ErrSessionConflict when
	// another user is logged in.
	Login(ctx context.Context, email string) (*domain.Session, error)

	// Logoff closes the active session, or returns store.ErrSessionNotFound.
	Logoff(ctx context.Context) error

	// DescribeActive returns the active session with its user's email,
	// or store.ErrSessionNotFound.
	DescribeActive(ctx context.Context) (*domain.SessionView, error)
}

type sessionManagerImpl struct {
	db       *sql.DB
	users    store.UserStore
	sessions store.SessionStore
	clock    Clock
	logger   *slog.Logger
}

// NewSessionManager creates a SessionManager. A nil clock means time.Now.
func NewSessionManager(
	db *sql.DB,
	users store.UserStore,
	sessions store.SessionStore,
	clock Clock,
	logger *slog.Logger,
) (SessionManager, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if sessions == nil {
		return nil, domain.NewValidationError("sessions", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &sessionManagerImpl{
		db:       db,
		users:    users,
		sessions: sessions,
		clock:    clock,
		logger:   logger.With(slog.String("component", "session_manager")),
	}, nil
}

// Login implements SessionManager.Login.
func (m *sessionManagerImpl) Login(ctx context.Context, email string) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	var session *domain.Session
	err := store.RunInTransaction(ctx, m.db, func(ctx context.Context, tx *sql.Tx) error {
		user, err := m.users.WithTx(tx).GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		sessions := m.sessions.WithTx(tx)
		active, err := sessions.GetActive(ctx)
		switch {
		case err == nil && active.UserID == user.ID:
			session = active
			return nil
		case err == nil:
			return ErrSessionConflict
		case !errors.Is(err, store.ErrSessionNotFound):
			return err
		}

		opened, err := domain.NewSession(user.ID, m.clock.now())
		if err != nil {
			return err
		}
		if err := sessions.Create(ctx, opened); err != nil {
			if errors.Is(err, store.ErrActiveSessionExists) {
				return ErrSessionConflict
			}
			return err
		}
		session = opened
		return nil
	})
	if err != nil {
		log.Debug("login rejected", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("user logged on",
		slog.Int64("session_id", session.ID),
		slog.Int64("user_id", session.UserID))
	return session, nil
}

// Logoff implements SessionManager.Logoff.
func (m *sessionManagerImpl) Logoff(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	err := store.RunInTransaction(ctx, m.db, func(ctx context.Context, tx *sql.Tx) error {
		sessions := m.sessions.WithTx(tx)
		active, err := sessions.GetActive(ctx)
		if err != nil {
			return err
		}
		active.Close()
		return sessions.Update(ctx, active)
	})
	if err != nil {
		log.Debug("logoff failed", slog.String("error", err.Error()))
		return err
	}

	log.Info("session closed")
	return nil
}

// CurrentUser implements SessionResolver.CurrentUser.
func (m *sessionManagerImpl) CurrentUser(ctx context.Context) (int64, error) {
	var userID int64
	err := store.RunInTransaction(ctx, m.db, func(ctx context.Context, tx *sql.Tx) error {
		active, err := m.sessions.WithTx(tx).GetActive(ctx)
		if err != nil {
			return err
		}
		userID = active.UserID
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, fmt.Errorf("failed to resolve current user: %w", err)
	}
	return userID, nil
}

// DescribeActive implements SessionManager.DescribeActive.
func (m *sessionManagerImpl) DescribeActive(ctx context.Context) (*domain.SessionView, error) {
	var view *domain.SessionView
	err := store.RunInTransaction(ctx, m.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		view, err = m.sessions.WithTx(tx).GetActiveView(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
