package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/studytrack/internal/store"
)

// Common service errors. Callers check them with errors.Is and classify
// any error with KindOf.
var (
	// ErrConflict indicates an operation blocked by existing state:
	// dependents that prevent a delete, or another user's open session.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated indicates a session-scoped operation was invoked
	// with no active session.
	ErrUnauthenticated = errors.New("no active session, please login")

	// ErrAborted indicates the operator declined a confirmation.
	ErrAborted = errors.New("aborted")

	ErrSessionConflict      = fmt.Errorf("%w: another user has an opened session, please logoff", ErrConflict)
	ErrCategoryInUse        = fmt.Errorf("%w: category has courses assigned", ErrConflict)
	ErrCourseInUse          = fmt.Errorf("%w: course has users subscribed", ErrConflict)
	ErrUserHasActiveSession = fmt.Errorf("%w: user has an active session", ErrConflict)
	ErrUserHasSubscriptions = fmt.Errorf("%w: user has courses subscribed", ErrConflict)
	ErrSubscriptionInUse    = fmt.Errorf("%w: subscription has study sessions", ErrConflict)

	// ErrNotSubscribed indicates the current user has no subscription to the course.
	ErrNotSubscribed = fmt.Errorf("%w: user not subscribed in this course", store.ErrNotFound)
)

// Confirm asks the operator to approve a destructive operation. It is called
// after every precondition has passed and before the first write.
type Confirm func() (bool, error)

// confirmed runs confirm, treating nil as approval.
func confirmed(confirm Confirm) error {
	if confirm == nil {
		return nil
	}
	ok, err := confirm()
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return ErrAborted
	}
	return nil
}
