package apperror

import "fmt"

// AppError is the only error type the HTTP layer classifies. Anything that
// reaches a handler without one collapses to a generic 500 (see ToHTTP).
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause so errors.Is/As see through the classification.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a standalone AppError with no underlying cause.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap classifies an existing error, keeping it reachable via Unwrap.
// Returns nil for a nil cause so call sites can wrap unconditionally.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
