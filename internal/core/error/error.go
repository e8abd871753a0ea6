package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// ModelErrorMessage describes failures of the language model backend.
	ModelErrorMessage = "model backend request failed"
	// EmptyRequestMessage is shown when the user submits nothing.
	EmptyRequestMessage = "Please enter a travel request."
	// CityNotFoundMessage is shown when no destination could be extracted.
	CityNotFoundMessage = "Could not detect city. Please use format like: 'Trip to London'"
)

var (
	// ErrEmptyRequest is returned for blank travel requests.
	ErrEmptyRequest = New(nil, http.StatusBadRequest, EmptyRequestMessage)
	// ErrCityNotFound is returned when the request names no destination.
	ErrCityNotFound = New(nil, http.StatusUnprocessableEntity, CityNotFoundMessage)
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Is reports whether target is the same AppError or matches the wrapped error.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok && t == e {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return SystemErrorMessage
}
