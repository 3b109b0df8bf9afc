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

// CategoryStore implements store.CategoryStore.
type CategoryStore struct {
	conn
}

// NewCategoryStore creates a CategoryStore over db.
func NewCategoryStore(db store.DBTX, driver sqldb.Driver, logger *slog.Logger) *CategoryStore {
	return &CategoryStore{conn: newConn(db, driver, logger, "category_store")}
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx.
func (s *CategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &CategoryStore{conn: s.withTx(tx)}
}

// Create implements store.CategoryStore.Create.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	err := s.queryRow(ctx,
		`INSERT INTO category (name) VALUES (?) RETURNING id`,
		category.Name,
	).Scan(&category.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrCategoryExists, err)
		}
		s.log(ctx).Error("failed to create category", slog.String("error", err.Error()))
		return MapError(err)
	}

	s.log(ctx).Debug("category created",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name))
	return nil
}

// GetByID implements store.CategoryStore.GetByID.
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.getOne(ctx, `SELECT id, name FROM category WHERE id = ?`, id)
}

// GetByName implements store.CategoryStore.GetByName.
func (s *CategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.getOne(ctx, `SELECT id, name FROM category WHERE name = ?`, domain.NormalizeName(name))
}

func (s *CategoryStore) getOne(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var c domain.Category
	if err := s.queryRow(ctx, query, arg).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		s.log(ctx).Error("failed to get category", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &c, nil
}

// List implements store.CategoryStore.List.
func (s *CategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.query(ctx, `SELECT id, name FROM category ORDER BY id`)
	if err != nil {
		s.log(ctx).Error("failed to list categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// Delete implements store.CategoryStore.Delete.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM category WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d: %v", store.ErrReferenced, id, err)
		}
		s.log(ctx).Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrCategoryNotFound)
}
