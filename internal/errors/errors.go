package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingFields is returned when a required form field is empty.
	ErrMissingFields = errors.New("please fill required fields")
	// ErrInvalidAmount is returned when an amount does not parse as a number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUsernameTaken is returned when signing up with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned on any failed login attempt.
	// Unknown user and wrong password share it to avoid username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidSession is returned when a session token is missing, expired or revoked.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrExpenseNotFound is returned when an expense does not exist.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrNotOwner is returned when a user touches an expense they do not own.
	ErrNotOwner = errors.New("not allowed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors for endpoints that answer
// with a status code instead of a redirect. Form flows recover with flash
// messages and never use it, so only their errors stay unmapped.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
