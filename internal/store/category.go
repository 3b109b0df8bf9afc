package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/studytrack/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category and sets its ID.
	// Returns ErrCategoryExists if the normalized name is already taken.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetByName retrieves a category by normalized name.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories in insertion order.
	List(ctx context.Context) ([]domain.Category, error)

	// Delete removes a category by ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CategoryStore bound to tx.
	WithTx(tx *sql.Tx) CategoryStore
}
