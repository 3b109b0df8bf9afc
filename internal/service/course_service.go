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

// CourseService manages courses.
type CourseService interface {
	// Create adds a course to an existing category. It requires an active
	// session.
	Create(ctx context.Context, name, categoryName string) (*domain.Course, error)

	// Delete removes a course after confirm approves. Courses with
	// subscriptions cannot be deleted.
	Delete(ctx context.Context, name string, confirm Confirm) error
}

type courseServiceImpl struct {
	db            *sql.DB
	resolver      SessionResolver
	categories    store.CategoryStore
	courses       store.CourseStore
	subscriptions store.SubscriptionStore
	logger        *slog.Logger
}

// NewCourseService creates a CourseService.
func NewCourseService(
	db *sql.DB,
	resolver SessionResolver,
	categories store.CategoryStore,
	courses store.CourseStore,
	subscriptions store.SubscriptionStore,
	logger *slog.Logger,
) (CourseService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if resolver == nil {
		return nil, domain.NewValidationError("resolver", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil || courses == nil || subscriptions == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &courseServiceImpl{
		db:            db,
		resolver:      resolver,
		categories:    categories,
		courses:       courses,
		subscriptions: subscriptions,
		logger:        logger.With(slog.String("component", "course_service")),
	}, nil
}

// Create implements CourseService.Create.
func (s *courseServiceImpl) Create(ctx context.Context, name, categoryName string) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		log.Debug("course creation requires a session", slog.String("error", err.Error()))
		return nil, err
	}

	var course *domain.Course
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		courses := s.courses.WithTx(tx)
		if _, err := courses.GetByName(ctx, name); err == nil {
			return store.ErrCourseExists
		} else if !errors.Is(err, store.ErrCourseNotFound) {
			return err
		}

		category, err := s.categories.WithTx(tx).GetByName(ctx, categoryName)
		if err != nil {
			return err
		}

		course, err = domain.NewCourse(name, category.ID)
		if err != nil {
			return err
		}
		return courses.Create(ctx, course)
	})
	if err != nil {
		log.Debug("course not created", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("course created",
		slog.Int64("course_id", course.ID),
		slog.String("name", course.Name),
		slog.Int64("user_id", userID))
	return course, nil
}

// Delete implements CourseService.Delete.
func (s *courseServiceImpl) Delete(ctx context.Context, name string, confirm Confirm) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		courses := s.courses.WithTx(tx)
		course, err := courses.GetByName(ctx, name)
		if err != nil {
			return err
		}

		n, err := s.subscriptions.WithTx(tx).CountByCourse(ctx, course.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrCourseInUse
		}

		if err := confirmed(confirm); err != nil {
			return err
		}
		return courses.Delete(ctx, course.ID)
	})
	if err != nil {
		log.Debug("course not deleted", slog.String("error", err.Error()))
		return err
	}

	log.Info("course deleted", slog.String("name", domain.NormalizeName(name)))
	return nil
}
