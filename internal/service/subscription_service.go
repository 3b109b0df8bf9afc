package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/store"
)

// SubscriptionService manages the current user's subscriptions.
type SubscriptionService interface {
	// Subscribe subscribes the current user to the named course. A zero
	// subscribedOn means today; a zero conclusionOn means the configured
	// course length after subscribedOn. Repeated subscriptions to the same
	// course are accepted.
	Subscribe(ctx context.Context, courseName string, subscribedOn, conclusionOn time.Time) (*domain.Subscription, error)

	// Unsubscribe removes the current user's subscription to the named
	// course after confirm approves. Subscriptions with study sessions
	// cannot be removed.
	Unsubscribe(ctx context.Context, courseName string, confirm Confirm) error
}

type subscriptionServiceImpl struct {
	db            *sql.DB
	resolver      SessionResolver
	courses       store.CourseStore
	subscriptions store.SubscriptionStore
	studySessions store.StudySessionStore
	courseWeeks   int
	clock         Clock
	logger        *slog.Logger
}

// NewSubscriptionService creates a SubscriptionService. courseWeeks is the
// default course length; values below one fall back to
// domain.DefaultCourseWeeks.
func NewSubscriptionService(
	db *sql.DB,
	resolver SessionResolver,
	courses store.CourseStore,
	subscriptions store.SubscriptionStore,
	studySessions store.StudySessionStore,
	courseWeeks int,
	clock Clock,
	logger *slog.Logger,
) (SubscriptionService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if resolver == nil {
		return nil, domain.NewValidationError("resolver", "cannot be nil", domain.ErrValidation)
	}
	if courses == nil || subscriptions == nil || studySessions == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if courseWeeks < 1 {
		courseWeeks = domain.DefaultCourseWeeks
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &subscriptionServiceImpl{
		db:            db,
		resolver:      resolver,
		courses:       courses,
		subscriptions: subscriptions,
		studySessions: studySessions,
		courseWeeks:   courseWeeks,
		clock:         clock,
		logger:        logger.With(slog.String("component", "subscription_service")),
	}, nil
}

// Subscribe implements SubscriptionService.Subscribe.
func (s *subscriptionServiceImpl) Subscribe(
	ctx context.Context,
	courseName string,
	subscribedOn, conclusionOn time.Time,
) (*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if subscribedOn.IsZero() {
		subscribedOn = s.clock.now()
	}
	subscribedOn = domain.Date(subscribedOn)
	if conclusionOn.IsZero() {
		conclusionOn = subscribedOn.AddDate(0, 0, 7*s.courseWeeks)
	}

	var sub *domain.Subscription
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		course, err := s.courses.WithTx(tx).GetByName(ctx, courseName)
		if err != nil {
			return err
		}

		sub, err = domain.NewSubscription(userID, course.ID, subscribedOn, conclusionOn)
		if err != nil {
			return err
		}
		return s.subscriptions.WithTx(tx).Create(ctx, sub)
	})
	if err != nil {
		log.Debug("subscription not created", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("user subscribed",
		slog.Int64("subscription_id", sub.ID),
		slog.Int64("user_id", userID),
		slog.Int64("course_id", sub.CourseID))
	return sub, nil
}

// Unsubscribe implements SubscriptionService.Unsubscribe.
func (s *subscriptionServiceImpl) Unsubscribe(ctx context.Context, courseName string, confirm Confirm) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return err
	}

	var subID int64
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		course, err := s.courses.WithTx(tx).GetByName(ctx, courseName)
		if err != nil {
			return err
		}

		subscriptions := s.subscriptions.WithTx(tx)
		sub, err := subscriptions.GetByUserAndCourse(ctx, userID, course.ID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrNotSubscribed
			}
			return err
		}

		n, err := s.studySessions.WithTx(tx).CountBySubscription(ctx, sub.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSubscriptionInUse
		}

		if err := confirmed(confirm); err != nil {
			return err
		}
		subID = sub.ID
		return subscriptions.Delete(ctx, sub.ID)
	})
	if err != nil {
		log.Debug("subscription not deleted", slog.String("error", err.Error()))
		return err
	}

	log.Info("subscription deleted",
		slog.Int64("subscription_id", subID),
		slog.Int64("user_id", userID))
	return nil
}
