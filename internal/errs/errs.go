// Package errs defines the error kinds that cross the HTTP boundary.
//
// Domain packages declare sentinel *Error values (company.ErrNotFound, ...)
// and return them directly or wrapped; the HTTP layer recovers the kind with
// errors.As and maps it to a status code.
package errs

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	// KindConstraint is a write rejected by a store integrity rule that is
	// not a duplicate, e.g. a reference to a row that does not exist.
	KindConstraint
	KindUnsupportedMediaType
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindConstraint:
		return http.StatusUnprocessableEntity
	case KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Constraint(message string) *Error {
	return &Error{Kind: KindConstraint, Message: message}
}

func UnsupportedMediaType(message string) *Error {
	return &Error{Kind: KindUnsupportedMediaType, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}
