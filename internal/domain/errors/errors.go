package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags a classified error. Every error that reaches the HTTP layer is
// normalized to one of these before rendering.
type Kind string

const (
	KindUnauthenticated      Kind = "UNAUTHENTICATED"
	KindOwnershipDenied      Kind = "OWNERSHIP_DENIED"
	KindNotFound             Kind = "NOT_FOUND"
	KindValidation           Kind = "VALIDATION"
	KindConflict             Kind = "CONFLICT"
	KindIncorrectCredentials Kind = "INCORRECT_CREDENTIALS"
	KindInternal             Kind = "INTERNAL"
)

// Causes carried inside classified errors. They never appear on the wire in
// production; the pipeline logs them server-side.
var (
	ErrTokenMalformed   = errors.New("token malformed or signature mismatch")
	ErrTokenExpired     = errors.New("token expired")
	ErrIdentityNotFound = errors.New("token references an identity that does not exist")
)

// Error is a classified error: a taxonomy tag, the HTTP status it renders
// with, a caller-safe message, and an optional underlying cause.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated covers missing, malformed, and expired tokens as well as
// tokens referencing a vanished identity. All of them render identically so
// a caller cannot tell whether a given identity ever existed.
func Unauthenticated(cause error) *Error {
	return &Error{
		Kind:    KindUnauthenticated,
		Status:  http.StatusUnauthorized,
		Message: "missing or invalid credentials",
		Err:     cause,
	}
}

// OwnershipDenied is returned when an authenticated user tries to mutate a
// resource they do not own. The message never names the real owner.
func OwnershipDenied(cause error) *Error {
	return &Error{
		Kind:    KindOwnershipDenied,
		Status:  http.StatusUnauthorized,
		Message: "you are not the owner of this resource",
		Err:     cause,
	}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: message}
}

func IncorrectCredentials() *Error {
	return &Error{
		Kind:    KindIncorrectCredentials,
		Status:  http.StatusBadRequest,
		Message: "incorrect credentials, make sure the username and password are correct",
	}
}

func Internal(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
		Err:     cause,
	}
}
