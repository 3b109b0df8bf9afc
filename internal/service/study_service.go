package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/store"
)

// StudyService records study sessions for the current user.
type StudyService interface {
	// Record starts a study session on the named course, waits until resume
	// fires, then stores the elapsed interval. The subscription is resolved
	// before the clock starts. A cancelled ctx aborts without writing.
	Record(ctx context.Context, courseName string, resume <-chan struct{}) (*domain.StudySession, error)

	// Add stores an explicit interval on the named course. The interval is
	// stored as given, even when end precedes start.
	Add(ctx context.Context, courseName string, start, end time.Time) (*domain.StudySession, error)

	// Delete removes one of the current user's study sessions after confirm
	// approves.
	Delete(ctx context.Context, id int64, confirm Confirm) error
}

type studyServiceImpl struct {
	db            *sql.DB
	resolver      SessionResolver
	courses       store.CourseStore
	subscriptions store.SubscriptionStore
	studySessions store.StudySessionStore
	clock         Clock
	logger        *slog.Logger
}

// NewStudyService creates a StudyService. A nil clock means time.Now.
func NewStudyService(
	db *sql.DB,
	resolver SessionResolver,
	courses store.CourseStore,
	subscriptions store.SubscriptionStore,
	studySessions store.StudySessionStore,
	clock Clock,
	logger *slog.Logger,
) (StudyService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if resolver == nil {
		return nil, domain.NewValidationError("resolver", "cannot be nil", domain.ErrValidation)
	}
	if courses == nil || subscriptions == nil || studySessions == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &studyServiceImpl{
		db:            db,
		resolver:      resolver,
		courses:       courses,
		subscriptions: subscriptions,
		studySessions: studySessions,
		clock:         clock,
		logger:        logger.With(slog.String("component", "study_service")),
	}, nil
}

// subscriptionFor resolves the current user's subscription to courseName.
func (s *studyServiceImpl) subscriptionFor(ctx context.Context, courseName string) (*domain.Subscription, error) {
	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	var sub *domain.Subscription
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		course, err := s.courses.WithTx(tx).GetByName(ctx, courseName)
		if err != nil {
			return err
		}
		sub, err = s.subscriptions.WithTx(tx).GetByUserAndCourse(ctx, userID, course.ID)
		if store.IsNotFoundError(err) {
			return ErrNotSubscribed
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *studyServiceImpl) save(ctx context.Context, subscriptionID int64, start, end time.Time) (*domain.StudySession, error) {
	session, err := domain.NewStudySession(subscriptionID, start, end)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.studySessions.WithTx(tx).Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("study session recorded",
		slog.Int64("study_session_id", session.ID),
		slog.Int64("subscription_id", subscriptionID),
		slog.Duration("duration", session.Duration()))
	return session, nil
}

// Record implements StudyService.Record.
func (s *studyServiceImpl) Record(
	ctx context.Context,
	courseName string,
	resume <-chan struct{},
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sub, err := s.subscriptionFor(ctx, courseName)
	if err != nil {
		log.Debug("study session not started", slog.String("error", err.Error()))
		return nil, err
	}

	start := s.clock.now()
	log.Debug("study session started", slog.Int64("subscription_id", sub.ID))

	select {
	case <-resume:
	case <-ctx.Done():
		log.Debug("study session abandoned", slog.String("error", ctx.Err().Error()))
		return nil, fmt.Errorf("study session abandoned: %w", ctx.Err())
	}

	return s.save(ctx, sub.ID, start, s.clock.now())
}

// Add implements StudyService.Add.
func (s *studyServiceImpl) Add(
	ctx context.Context,
	courseName string,
	start, end time.Time,
) (*domain.StudySession, error) {
	sub, err := s.subscriptionFor(ctx, courseName)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("study session not added",
			slog.String("error", err.Error()))
		return nil, err
	}
	return s.save(ctx, sub.ID, start, end)
}

// Delete implements StudyService.Delete.
func (s *studyServiceImpl) Delete(ctx context.Context, id int64, confirm Confirm) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		studySessions := s.studySessions.WithTx(tx)
		session, err := studySessions.GetByID(ctx, id)
		if err != nil {
			return err
		}

		sub, err := s.subscriptions.WithTx(tx).GetByID(ctx, session.SubscriptionID)
		if err != nil {
			return err
		}
		// Sessions of other users are invisible to the current one.
		if sub.UserID != userID {
			return store.ErrStudySessionNotFound
		}

		if err := confirmed(confirm); err != nil {
			return err
		}
		return studySessions.Delete(ctx, id)
	})
	if err != nil {
		log.Debug("study session not deleted", slog.String("error", err.Error()))
		return err
	}

	log.Info("study session deleted", slog.Int64("study_session_id", id))
	return nil
}
