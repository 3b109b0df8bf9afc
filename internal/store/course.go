package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
)

// CourseStore defines the interface for course data persistence.
type CourseStore interface {
	// Create saves a new course and sets its ID.
	// Returns ErrCourseExists if the normalized name is already taken.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by ID.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Course, error)

	// GetByName retrieves a course by normalized name.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByName(ctx context.Context, name string) (*domain.Course, error)

	// List returns all courses joined with their category names, in insertion order.
	List(ctx context.Context) ([]domain.CourseView, error)

	// CountByCategory returns how many courses reference categoryID.
	CountByCategory(ctx context.Context, categoryID int64) (int, error)

	// Delete removes a course by ID.
	// Returns ErrCourseNotFound if the course does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CourseStore bound to tx.
	WithTx(tx *sql.Tx) CourseStore
}
