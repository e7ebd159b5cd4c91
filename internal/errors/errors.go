package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials indicates the identity provider rejected the
	// email/password pair. Wrong password, unknown account, and provider
	// rejections are all normalized to this code so callers cannot
	// enumerate accounts.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeUserNotProvisioned indicates a valid account with no membership
	// for the requested tenant.
	ErrCodeUserNotProvisioned ErrorCode = "user_not_provisioned"
	// ErrCodeClientNotProvisioned indicates a caller-supplied client id that
	// is not registered under the requested tenant.
	ErrCodeClientNotProvisioned ErrorCode = "client_not_provisioned"
	// ErrCodeTokenMissing indicates no bearer credential was presented.
	ErrCodeTokenMissing ErrorCode = "token_missing"
	// ErrCodeTokenMalformed indicates the presented token is not parseable.
	ErrCodeTokenMalformed ErrorCode = "token_malformed"
	// ErrCodeTokenExpired indicates a well-formed, correctly signed token
	// whose expiry is not in the future. Kept distinct so clients can decide
	// to re-authenticate instead of treating it as a hard failure.
	ErrCodeTokenExpired ErrorCode = "token_expired"
	// ErrCodeTokenInvalid indicates a bad signature, algorithm, issuer, or
	// audience.
	ErrCodeTokenInvalid ErrorCode = "token_invalid"
	// ErrCodeConfiguration indicates missing secrets/keys or unreachable
	// infrastructure. Not attributable to the caller.
	ErrCodeConfiguration ErrorCode = "configuration"

	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// InvalidCredentials creates a new InvalidCredentials error.
func InvalidCredentials(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidCredentials, Message: message}
}

// UserNotProvisioned creates a new UserNotProvisioned error.
func UserNotProvisioned(message string) *AppError {
	return &AppError{Code: ErrCodeUserNotProvisioned, Message: message}
}

// ClientNotProvisioned creates a new ClientNotProvisioned error.
func ClientNotProvisioned(message string) *AppError {
	return &AppError{Code: ErrCodeClientNotProvisioned, Message: message}
}

// Configuration creates a new Configuration error.
func Configuration(message string) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: message}
}

// Configurationf creates a new Configuration error with formatted message.
func Configurationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	return isCode(err, ErrCodeInvalidCredentials)
}

// IsUserNotProvisioned checks if an error is a UserNotProvisioned error.
func IsUserNotProvisioned(err error) bool {
	return isCode(err, ErrCodeUserNotProvisioned)
}

// IsClientNotProvisioned checks if an error is a ClientNotProvisioned error.
func IsClientNotProvisioned(err error) bool {
	return isCode(err, ErrCodeClientNotProvisioned)
}

// IsTokenExpired checks if an error is a TokenExpired error.
func IsTokenExpired(err error) bool {
	return isCode(err, ErrCodeTokenExpired)
}

// IsTokenFailure checks if an error carries any of the introspection
// failure codes (missing, malformed, expired, invalid).
func IsTokenFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeTokenMissing, ErrCodeTokenMalformed, ErrCodeTokenExpired, ErrCodeTokenInvalid:
		return true
	default:
		return false
	}
}

// IsConfiguration checks if an error is a Configuration error.
func IsConfiguration(err error) bool {
	return isCode(err, ErrCodeConfiguration)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
