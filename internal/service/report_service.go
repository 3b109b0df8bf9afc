package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

// ReportService serves the read side. Every list is in insertion order.
type ReportService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCourses(ctx context.Context) ([]domain.CourseView, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListSubscriptions(ctx context.Context, userID int64) ([]domain.SubscriptionView, error)
	ListStudySessions(ctx context.Context, subscriptionIDs []int64) ([]domain.StudySessionView, error)

	// ReportTimeByCourse sums the user's study time per course, in the order
	// each course was first studied. Courses without study sessions are
	// omitted; a user with nothing recorded gets an empty result.
	ReportTimeByCourse(ctx context.Context, userID int64) ([]domain.CourseTime, error)
}

type reportServiceImpl struct {
	db            *sql.DB
	users         store.UserStore
	categories    store.CategoryStore
	courses       store.CourseStore
	subscriptions store.SubscriptionStore
	studySessions store.StudySessionStore
	logger        *slog.Logger
}

// NewReportService creates a ReportService.
func NewReportService(
	db *sql.DB,
	users store.UserStore,
	categories store.CategoryStore,
	courses store.CourseStore,
	subscriptions store.SubscriptionStore,
	studySessions store.StudySessionStore,
	logger *slog.Logger,
) (ReportService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil || categories == nil || courses == nil || subscriptions == nil || studySessions == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reportServiceImpl{
		db:            db,
		users:         users,
		categories:    categories,
		courses:       courses,
		subscriptions: subscriptions,
		studySessions: studySessions,
		logger:        logger.With(slog.String("component", "report_service")),
	}, nil
}

// read runs fn in a transaction and returns its result.
func read[T any](ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx) (T, error)) (T, error) {
	var result T
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}

func (s *reportServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return read(ctx, s.db, func(ctx context.Context, tx *sql.Tx) ([]domain.Category, error) {
		return s.categories.WithTx(tx).List(ctx)
	})
}

func (s *reportServiceImpl) ListCourses(ctx context.Context) ([]domain.CourseView, error) {
	return read(ctx, s.db, func(ctx context.Context, tx *sql.Tx) ([]domain.CourseView, error) {
		return s.courses.WithTx(tx).List(ctx)
	})
}

func (s *reportServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return read(ctx, s.db, func(ctx context.Context, tx *sql.Tx) ([]domain.User, error) {
		return s.users.WithTx(tx).List(ctx)
	})
}

func (s *reportServiceImpl) ListSubscriptions(ctx context.Context, userID int64) ([]domain.SubscriptionView, error) {
	return read(ctx, s.db, func(ctx context.Context, tx *sql.Tx) ([]domain.SubscriptionView, error) {
		return s.subscriptions.WithTx(tx).ListByUser(ctx, userID)
	})
}

func (s *reportServiceImpl) ListStudySessions(ctx context.Context, subscriptionIDs []int64) ([]domain.StudySessionView, error) {
	return read(ctx, s.db, func(ctx context.Context, tx *sql.Tx) ([]domain.StudySessionView, error) {
		return s.studySessions.WithTx(tx).ListBySubscriptions(ctx, subscriptionIDs)
	})
}

// ReportTimeByCourse implements ReportService.ReportTimeByCourse.
func (s *reportServiceImpl) ReportTimeByCourse(ctx context.Context, userID int64) ([]domain.CourseTime, error) {
	views, err := read(ctx, s.db, func(ctx context.Context, tx *sql.Tx) ([]domain.StudySessionView, error) {
		return s.studySessions.WithTx(tx).ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return SumByCourse(views), nil
}

// SumByCourse groups study sessions by course and totals their durations.
// Courses appear in the order of their first session.
func SumByCourse(views []domain.StudySessionView) []domain.CourseTime {
	totals := []domain.CourseTime{}
	index := make(map[int64]int)
	for _, v := range views {
		i, ok := index[v.CourseID]
		if !ok {
			i = len(totals)
			index[v.CourseID] = i
			totals = append(totals, domain.CourseTime{CourseID: v.CourseID, CourseName: v.CourseName})
		}
		totals[i].Total += v.Duration()
		totals[i].Sessions++
	}
	return totals
}
