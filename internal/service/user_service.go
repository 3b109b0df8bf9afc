package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/store"
)

// UserService manages users.
type UserService interface {
	// Create registers a user. Returns store.ErrEmailExists when the
	// normalized email is taken.
	Create(ctx context.Context, email string) (*domain.User, error)

	// Delete removes the user with email after confirm approves. It is
	// blocked while the user holds the active session or has subscriptions.
	Delete(ctx context.Context, email string, confirm Confirm) error
}

type userServiceImpl struct {
	db            *sql.DB
	users         store.UserStore
	sessions      store.SessionStore
	subscriptions store.SubscriptionStore
	logger        *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	sessions store.SessionStore,
	subscriptions store.SubscriptionStore,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil || sessions == nil || subscriptions == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		db:            db,
		users:         users,
		sessions:      sessions,
		subscriptions: subscriptions,
		logger:        logger.With(slog.String("component", "user_service")),
	}, nil
}

// Create implements UserService.Create.
func (s *userServiceImpl) Create(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email)
	if err != nil {
		log.Debug("invalid user", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		if _, err := users.GetByEmail(ctx, user.Email); err == nil {
			return store.ErrEmailExists
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		log.Debug("user not created", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return user, nil
}

// Delete implements UserService.Delete.
func (s *userServiceImpl) Delete(ctx context.Context, email string, confirm Confirm) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deletedID int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		active, err := s.sessions.WithTx(tx).GetActive(ctx)
		switch {
		case err == nil && active.UserID == user.ID:
			return ErrUserHasActiveSession
		case err != nil && !errors.Is(err, store.ErrSessionNotFound):
			return err
		}

		n, err := s.subscriptions.WithTx(tx).CountByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrUserHasSubscriptions
		}

		if err := confirmed(confirm); err != nil {
			return err
		}
		deletedID = user.ID
		return users.Delete(ctx, user.ID)
	})
	if err != nil {
		log.Debug("user not deleted", slog.String("error", err.Error()))
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", deletedID))
	return nil
}
