// Package apperror is the error taxonomy of the events API.  Resolvers return
// these errors and eggql puts the result of Error() in the "message" of the
// GraphQL error, so Error() must never contain internal details.  The wrapped
// cause is kept for logging.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind is the category of an Error
type Kind int

const (
	Internal Kind = iota // zero value so an unclassified error is never exposed
	NotFound
	InvalidArgument
	Unauthenticated
	Unauthorized
	Conflict
)

var kindNames = [...]string{
	Internal:        "InternalServiceErrorException",
	NotFound:        "ResourceNotFoundException",
	InvalidArgument: "InvalidArgumentException",
	Unauthenticated: "UnauthenticatedException",
	Unauthorized:    "UnauthorizedException",
	Conflict:        "ConflictException",
}

var kindStatus = [...]int{
	Internal:        http.StatusInternalServerError,
	NotFound:        http.StatusNotFound,
	InvalidArgument: http.StatusBadRequest,
	Unauthenticated: http.StatusUnauthorized,
	Unauthorized:    http.StatusForbidden,
	Conflict:        http.StatusConflict,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[Internal]
	}
	return kindNames[k]
}

// HTTPStatus is the HTTP status code equivalent of the kind
func (k Kind) HTTPStatus() int {
	if k < 0 || int(k) >= len(kindStatus) {
		return http.StatusInternalServerError
	}
	return kindStatus[k]
}

// Error is an error that can be shown to API clients
type Error struct {
	Kind    Kind
	Message string // public message
	Err     error  // cause, for logging only
}

// Error returns the kind and the public message
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of any kind
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewNotFound is for a missing entity, eg. NewNotFound("Event", "slug", "jazz-night")
func NewNotFound(entity, by, value string) *Error {
	return New(NotFound, fmt.Sprintf("%s with %s %s not found", entity, by, value), nil)
}

// NewInvalidArgument is for bad client input
func NewInvalidArgument(format string, args ...interface{}) *Error {
	return New(InvalidArgument, fmt.Sprintf(format, args...), nil)
}

// NewUnauthenticated is for a request without a valid token
func NewUnauthenticated(message string) *Error {
	return New(Unauthenticated, message, nil)
}

// NewUnauthorized is for an authenticated user without permission
func NewUnauthorized(message string) *Error {
	return New(Unauthorized, message, nil)
}

// NewConflict is for a create or update clashing with an existing entity
func NewConflict(message string, err error) *Error {
	return New(Conflict, message, err)
}

// NewInternal hides err from the client
func NewInternal(err error) *Error {
	return New(Internal, "something went wrong, please try again later", err)
}

// FromStore maps an error from the MongoDB driver.  The entity is used in the
// message for duplicates.  Errors that are already an *Error are returned as is.
func FromStore(entity string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return New(NotFound, entity+" not found", err)
	case mongo.IsDuplicateKeyError(err):
		return NewConflict(entity+" already exists", err)
	}
	return NewInternal(err)
}

// KindOf returns the kind of err, or Internal if it is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsNotFound is true if err is a not found error
func IsNotFound(err error) bool { return err != nil && KindOf(err) == NotFound }

// IsInvalidArgument is true if err is an invalid argument error
func IsInvalidArgument(err error) bool { return err != nil && KindOf(err) == InvalidArgument }

// IsUnauthenticated is true if err is an unauthenticated error
func IsUnauthenticated(err error) bool { return err != nil && KindOf(err) == Unauthenticated }

// IsUnauthorized is true if err is an unauthorized error
func IsUnauthorized(err error) bool { return err != nil && KindOf(err) == Unauthorized }

// IsConflict is true if err is a conflict error
func IsConflict(err error) bool { return err != nil && KindOf(err) == Conflict }
