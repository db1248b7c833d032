package apperrors

import "net/http"

// NotFoundError is returned when a lookup by ID finds no record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// StatusCode returns the HTTP status the error maps to.
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// ValidationError is returned when a request payload is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StatusCode returns the HTTP status the error maps to.
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// UnauthorizedError is returned when the presented credential is rejected.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode returns the HTTP status the error maps to.
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// StatusError is implemented by every domain error that knows its HTTP status.
type StatusError interface {
	error
	StatusCode() int
}

// NotFound creates a NotFoundError with the given message.
func NotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// Validation creates a ValidationError with the given message.
func Validation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Unauthorized creates an UnauthorizedError with the given message.
func Unauthorized(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// Messages shared by the gates and the store.
const (
	MsgProductNotFound = "Product not found"
	MsgInvalidProduct  = "Missing or invalid product fields"
	MsgUnauthorized    = "Unauthorized"
)
