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

// CategoryService manages categories.
type CategoryService interface {
	// Create adds a category. Returns store.ErrCategoryExists on a name collision.
	Create(ctx context.Context, name string) (*domain.Category, error)

	// Delete removes a category after confirm approves. Categories with
	// courses cannot be deleted.
	Delete(ctx context.Context, name string, confirm Confirm) error
}

type categoryServiceImpl struct {
	db         *sql.DB
	categories store.CategoryStore
	courses    store.CourseStore
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(
	db *sql.DB,
	categories store.CategoryStore,
	courses store.CourseStore,
	logger *slog.Logger,
) (CategoryService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil || courses == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		db:         db,
		categories: categories,
		courses:    courses,
		logger:     logger.With(slog.String("component", "category_service")),
	}, nil
}

// Create implements CategoryService.Create.
func (s *categoryServiceImpl) Create(ctx context.Context, name string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(name)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		categories := s.categories.WithTx(tx)
		if _, err := categories.GetByName(ctx, category.Name); err == nil {
			return store.ErrCategoryExists
		} else if !errors.Is(err, store.ErrCategoryNotFound) {
			return err
		}
		return categories.Create(ctx, category)
	})
	if err != nil {
		log.Debug("category not created", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("category created",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name))
	return category, nil
}

// Delete implements CategoryService.Delete.
func (s *categoryServiceImpl) Delete(ctx context.Context, name string, confirm Confirm) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		categories := s.categories.WithTx(tx)
		category, err := categories.GetByName(ctx, name)
		if err != nil {
			return err
		}

		n, err := s.courses.WithTx(tx).CountByCategory(ctx, category.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryInUse
		}

		if err := confirmed(confirm); err != nil {
			return err
		}
		return categories.Delete(ctx, category.ID)
	})
	if err != nil {
		log.Debug("category not deleted", slog.String("error", err.Error()))
		return err
	}

	log.Info("category deleted", slog.String("name", domain.NormalizeName(name)))
	return nil
}
