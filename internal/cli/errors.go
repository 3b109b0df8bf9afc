package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/redact"
	"github.com/phrazzld/studytrack/internal/service"
	"github.com/phrazzld/studytrack/internal/store"
)

// Exit codes returned by App.Run.
const (
	ExitOK              = 0
	ExitInternal        = 1
	ExitUsage           = 2
	ExitNotFound        = 3
	ExitAlreadyExists   = 4
	ExitConflict        = 5
	ExitUnauthenticated = 6
	ExitAborted         = 7
)

// usageError reports a malformed invocation.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// messageError replaces the operator-facing text of err.
type messageError struct {
	err  error
	text string
}

func (e *messageError) Error() string { return e.text }
func (e *messageError) Unwrap() error { return e.err }

func withMessage(err error, text string) error {
	return &messageError{err: err, text: text}
}

// Operator-facing texts, most specific first.
var messages = []struct {
	err  error
	text string
}{
	{store.ErrEmailExists, "User already created"},
	{store.ErrCategoryExists, "category already exists"},
	{store.ErrCourseExists, "Course already exists"},
	{store.ErrActiveSessionExists, "another user has an opened session, please logoff"},
	{service.ErrNotSubscribed, "User not subscribed in this course"},
	{store.ErrUserNotFound, "User not found"},
	{store.ErrCategoryNotFound, "Category not found"},
	{store.ErrCourseNotFound, "Course not found"},
	{store.ErrSubscriptionNotFound, "Subscription not found"},
	{store.ErrStudySessionNotFound, "Study session not found"},
	{store.ErrSessionNotFound, "no active session"},
	{service.ErrSessionConflict, "another user has an opened session, please logoff"},
	{service.ErrCategoryInUse, "Category has courses assigned"},
	{service.ErrCourseInUse, "Course has users subscribed"},
	{service.ErrUserHasActiveSession, "User has an active session"},
	{service.ErrUserHasSubscriptions, "User has courses subscribed"},
	{service.ErrSubscriptionInUse, "Subscription has study sessions"},
	{service.ErrUnauthenticated, "no session actived, please login"},
	{service.ErrAborted, "Aborted"},
	{context.Canceled, "Interrupted"},
}

// describe renders err for the operator. Internal failures are redacted
// since they may carry connection strings.
func describe(err error) string {
	var msg *messageError
	if errors.As(err, &msg) {
		return msg.text
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return usage.Error()
	}
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, store.ErrInvalidEntity) {
		return err.Error()
	}
	return "error: " + redact.Error(err)
}

// exitCode maps err to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitUsage
	}

	switch service.KindOf(err) {
	case service.KindNotFound:
		return ExitNotFound
	case service.KindAlreadyExists:
		return ExitAlreadyExists
	case service.KindConflict:
		return ExitConflict
	case service.KindUnauthenticated:
		return ExitUnauthenticated
	case service.KindInvalid:
		return ExitUsage
	case service.KindAborted:
		return ExitAborted
	default:
		return ExitInternal
	}
}
