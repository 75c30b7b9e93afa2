// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer translates them to status
// codes in handler/response.go. Keeping the taxonomy in one small package
// means no layer below the handlers ever imports net/http.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers check them with errors.Is(), which walks the
// error chain via Unwrap().
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AppError carries a sentinel error plus a human-readable message.
// Message is what clients see; Err is what code branches on.
type AppError struct {
	Err     error  // underlying sentinel
	Message string // human-readable detail for the response body
	Field   string // optional: the input field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing row. Handlers map it to 404.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed reports a bad input value. Handlers map it to 400.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation, e.g. a duplicate email at
// registration. Handlers map it to 400, matching the API contract.
func Conflict(field, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

// InvalidCredentials reports a failed login. The message is deliberately
// identical for "unknown email" and "wrong password" — the response must not
// reveal which one it was.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid credentials",
	}
}
