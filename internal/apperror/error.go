package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// A Kind classifies an error for the API boundary.
type Kind int

const (
	// Unexpected is any failure that was not classified by a component.
	Unexpected Kind = iota
	// Validation is a malformed, missing or duplicate input.
	Validation
	// Authentication is a missing or invalid token, or bad login credentials.
	Authentication
	// Authorization is a valid identity acting on a resource it does not own.
	Authorization
	// NotFound is a resource that does not exist.
	NotFound
)

// Generic messages rendered to the clients.
const (
	MessageInvalidRequest     = "Invalid request"
	MessageUnauthenticated    = "Unauthenticated"
	MessageInvalidCredentials = "Invalid credentials"
	MessageUnauthorized       = "Unauthorized request"
	MessageNotFound           = "No such resource"
)

// An Error is an error classified with a Kind.
// Its Message is safe to be rendered to the clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns a new Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns a new Error with the given kind and message that keeps err as cause.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidation returns the generic validation error.
func NewValidation(err error) *Error {
	return Wrap(err, Validation, MessageInvalidRequest)
}

// NewNotFound returns the generic not found error.
func NewNotFound(err error) *Error {
	return Wrap(err, NotFound, MessageNotFound)
}

// Error implements error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first Error found in err's chain.
// It returns Unexpected when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// Is returns true if err is classified with the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the client message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MessageInvalidRequest
}

// StatusCode returns the HTTP status code of the given kind.
// Unexpected errors are rendered as bad requests.
func StatusCode(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case Authorization:
		return http.StatusForbidden
	case Authentication:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
