// internal/pkg/errs/errors.go
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeAuth              Code = "AUTH_ERROR"
	CodeStorage           Code = "STORAGE_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Error is the error type returned by domain services
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code for the error
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case CodeAuth:
		return http.StatusUnauthorized
	case CodeStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new error
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an underlying cause with a code and message
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Shorthand constructors for the storefront error taxonomy.

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Validationf(format string, args ...interface{}) *Error {
	return Newf(CodeValidation, format, args...)
}

func InvalidTransition(message string) *Error {
	return New(CodeInvalidTransition, message)
}

func InvalidTransitionf(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidTransition, format, args...)
}

func Auth(message string) *Error {
	return New(CodeAuth, message)
}

func Storage(err error, message string) *Error {
	return Wrap(err, CodeStorage, message)
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// From converts any error to *Error, wrapping unknown errors as internal
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, CodeInternal, "internal server error")
}
