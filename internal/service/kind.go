package service

import (
	"context"
	"errors"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
)

// Kind classifies a service failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAlreadyExists
	KindConflict
	KindUnauthenticated
	KindInvalid
	KindAborted
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalid:
		return "invalid"
	case KindAborted:
		return "aborted"
	default:
		return "internal"
	}
}

// KindOf classifies err. A nil error has no kind and reports KindInternal;
// callers check for nil first.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrAborted), errors.Is(err, context.Canceled):
		return KindAborted
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrConflict), errors.Is(err, store.ErrReferenced):
		return KindConflict
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound
	case errors.Is(err, store.ErrDuplicate):
		return KindAlreadyExists
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return KindInvalid
	default:
		return KindInternal
	}
}
