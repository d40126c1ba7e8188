package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type. Every foreseeable failure
// of a service operation is expressed as one of these; anything else is
// wrapped by Internal at the operation boundary.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable, client-safe error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. It is logged server-side and never serialized.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Common Error Constructors ---

// Validation creates a new AppError for a request that failed validation.
// The message is expected to name the first violated constraint.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// DuplicateUser creates a new AppError for a registration with an email
// that already has an account.
func DuplicateUser() *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: "User already exists with this email.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidCredentials creates a new AppError for a failed login. The message
// is identical for an unknown email and a wrong password so a caller cannot
// probe which accounts exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: "Incorrect email or password.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates a new AppError for a user record that was not found.
func NotFound() *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "User not found.",
		HTTPStatus: http.StatusNotFound,
	}
}

// TokenMissing creates a new AppError for a request with no token in either
// the Authorization header or the session cookie.
func TokenMissing() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Authentication token is missing.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenExpired creates a new AppError for an expired session token.
func TokenExpired() *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: "Token has expired. Please log in again.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates a new AppError for a malformed or tampered session token.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid token. Please log in again.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AuthenticationFailed creates a new AppError for any other token
// verification fault.
func AuthenticationFailed() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Authentication failed.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal creates a new AppError for an unexpected fault. The safe message
// is returned to the client; the cause stays server-side.
func Internal(message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: message,
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
