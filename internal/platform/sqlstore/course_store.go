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

// CourseStore implements store.CourseStore.
type CourseStore struct {
	conn
}

// NewCourseStore creates a CourseStore over db.
func NewCourseStore(db store.DBTX, driver sqldb.Driver, logger *slog.Logger) *CourseStore {
	return &CourseStore{conn: newConn(db, driver, logger, "course_store")}
}

var _ store.CourseStore = (*CourseStore)(nil)

// WithTx implements store.CourseStore.WithTx.
func (s *CourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return &CourseStore{conn: s.withTx(tx)}
}

// Create implements store.CourseStore.Create.
// Returns store.ErrInvalidEntity if the category does not exist.
func (s *CourseStore) Create(ctx context.Context, course *domain.Course) error {
	if err := course.Validate(); err != nil {
		return err
	}

	err := s.queryRow(ctx,
		`INSERT INTO course (name, category_id) VALUES (?, ?) RETURNING id`,
		course.Name, course.CategoryID,
	).Scan(&course.ID)
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			return fmt.Errorf("%w: %v", store.ErrCourseExists, err)
		case IsForeignKeyViolation(err):
			return fmt.Errorf("%w: category with ID %d not found", store.ErrInvalidEntity, course.CategoryID)
		}
		s.log(ctx).Error("failed to create course", slog.String("error", err.Error()))
		return MapError(err)
	}

	s.log(ctx).Debug("course created",
		slog.Int64("course_id", course.ID),
		slog.Int64("category_id", course.CategoryID))
	return nil
}

// GetByID implements store.CourseStore.GetByID.
func (s *CourseStore) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	return s.getOne(ctx, `SELECT id, name, category_id FROM course WHERE id = ?`, id)
}

// GetByName implements store.CourseStore.GetByName.
func (s *CourseStore) GetByName(ctx context.Context, name string) (*domain.Course, error) {
	return s.getOne(ctx,
		`SELECT id, name, category_id FROM course WHERE name = ?`,
		domain.NormalizeName(name))
}

func (s *CourseStore) getOne(ctx context.Context, query string, arg any) (*domain.Course, error) {
	var c domain.Course
	if err := s.queryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		s.log(ctx).Error("failed to get course", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &c, nil
}

// List implements store.CourseStore.List.
func (s *CourseStore) List(ctx context.Context) ([]domain.CourseView, error) {
	rows, err := s.query(ctx, `
		SELECT c.id, c.name, cat.name
		FROM course c
		JOIN category cat ON cat.id = c.category_id
		ORDER BY c.id`)
	if err != nil {
		s.log(ctx).Error("failed to list courses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	courses := []domain.CourseView{}
	for rows.Next() {
		var v domain.CourseView
		if err := rows.Scan(&v.ID, &v.Name, &v.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

// CountByCategory implements store.CourseStore.CountByCategory.
func (s *CourseStore) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM course WHERE category_id = ?`, categoryID)
	if err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Delete implements store.CourseStore.Delete.
func (s *CourseStore) Delete(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM course WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: course %d: %v", store.ErrReferenced, id, err)
		}
		s.log(ctx).Error("failed to delete course",
			slog.String("error", err.Error()),
			slog.Int64("course_id", id))
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrCourseNotFound)
}
