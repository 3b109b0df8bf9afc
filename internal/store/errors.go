package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrUserNotFound, ErrCourseNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// schema constraint before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrReferenced is returned when a delete is rejected by the schema
	// because other rows still reference the entity.
	ErrReferenced = errors.New("entity is still referenced")

	// Entity-specific "not found" errors

	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound     = fmt.Errorf("%w: category", ErrNotFound)
	ErrCourseNotFound       = fmt.Errorf("%w: course", ErrNotFound)
	ErrSubscriptionNotFound = fmt.Errorf("%w: subscription", ErrNotFound)
	ErrStudySessionNotFound = fmt.Errorf("%w: study session", ErrNotFound)

	// ErrSessionNotFound indicates that no active login session exists.
	ErrSessionNotFound = fmt.Errorf("%w: active session", ErrNotFound)

	// Entity-specific "duplicate" errors

	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrCategoryExists = fmt.Errorf("%w: category", ErrDuplicate)
	ErrCourseExists   = fmt.Errorf("%w: course", ErrDuplicate)

	// ErrActiveSessionExists is returned when a second session would be
	// marked active. The schema allows a single active row.
	ErrActiveSessionExists = fmt.Errorf("%w: active session", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// Entity-specific errors wrap ErrNotFound, so a single check covers them.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
