// Package apperrors defines the error taxonomy shared by the services and
// the HTTP layer: field-tagged validation and authentication failures that
// become structured client responses, and infrastructure failures that
// become generic server faults.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeValidation   Code = "VALIDATION_FAILED"
	CodeConflict     Code = "USERNAME_TAKEN"
	CodeAuth         Code = "AUTHENTICATION_FAILED"
	CodeTokenInvalid Code = "TOKEN_INVALID"
	CodeSession      Code = "SESSION_EXPIRED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeHashing      Code = "HASHING_FAILED"
	CodeStore        Code = "STORE_FAILED"
)

// FieldError tags a violation with the input field it belongs to.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error type carried across the service boundary.
// FieldErrors is populated for validation, conflict and authentication
// failures; infrastructure failures carry a Cause instead, which is logged
// and never echoed to the caller.
type Error struct {
	Code        Code
	Message     string
	FieldErrors []FieldError
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus maps the error code to the status the HTTP layer should use.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeConflict:
		return http.StatusBadRequest
	case CodeAuth, CodeTokenInvalid, CodeSession:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientSafe reports whether FieldErrors may be returned to the caller.
// Infrastructure faults are never client safe.
func (e *Error) ClientSafe() bool {
	switch e.Code {
	case CodeHashing, CodeStore:
		return false
	default:
		return true
	}
}

// Validation builds a field-tagged validation error.
func Validation(violations []FieldError) *Error {
	return &Error{
		Code:        CodeValidation,
		Message:     "validation failed",
		FieldErrors: violations,
	}
}

// Conflict reports that the username is already taken.
func Conflict(username string) *Error {
	return &Error{
		Code:        CodeConflict,
		Message:     fmt.Sprintf("username %q already exists", username),
		FieldErrors: []FieldError{{Field: "username", Message: "Username already exists"}},
	}
}

// Authentication tags a credential failure with the offending field.
func Authentication(field, message string) *Error {
	return &Error{
		Code:        CodeAuth,
		Message:     "authentication failed",
		FieldErrors: []FieldError{{Field: field, Message: message}},
	}
}

// NotFound reports a missing resource.
func NotFound(resource string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// Hashing wraps a failure of the hashing primitive.
func Hashing(cause error) *Error {
	return &Error{Code: CodeHashing, Message: "password hashing failed", Cause: cause}
}

// Store wraps a failure of the account or item store.
func Store(cause error) *Error {
	return &Error{Code: CodeStore, Message: "store operation failed", Cause: cause}
}

// Sentinels used by the token service, session store and store gateways.
var (
	ErrTokenInvalid   = &Error{Code: CodeTokenInvalid, Message: "token is invalid"}
	ErrTokenExpired   = &Error{Code: CodeTokenInvalid, Message: "token is expired"}
	ErrSessionExpired = &Error{Code: CodeSession, Message: "session expired"}
	ErrNoSuchAccount  = &Error{Code: CodeNotFound, Message: "account not found"}
	ErrNoSuchItem     = &Error{Code: CodeNotFound, Message: "item not found"}
)

// As extracts an *Error from err, or nil.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
