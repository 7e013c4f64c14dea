package errors

import "net/http"

// AppError carries an HTTP status code alongside the message so
// handlers can translate failures without switch ladders.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

var (
	ErrInvalidRequest = New(http.StatusBadRequest, "Invalid request parameters")
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized access")
	ErrForbidden      = New(http.StatusForbidden, "Access denied")
	ErrNotFound       = New(http.StatusNotFound, "Resource not found")
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error")
)

// Validation marks missing or malformed required fields (400).
func Validation(msg string) *AppError {
	return New(http.StatusBadRequest, msg)
}

func NotFound(msg string) *AppError {
	return New(http.StatusNotFound, msg)
}

func Unauthorized(msg string) *AppError {
	return New(http.StatusUnauthorized, msg)
}

// Store marks an underlying persistence failure (500).
func Store(msg string) *AppError {
	return New(http.StatusInternalServerError, msg)
}

// IsValidation reports whether err is a 400-class AppError.
func IsValidation(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == http.StatusBadRequest
}

// StatusOf returns the HTTP status for err, defaulting to 500 for
// anything that is not an AppError.
func StatusOf(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
