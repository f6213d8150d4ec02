package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_PERMISSION_DENIED ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1005

	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001
	ErrorCode_AUTH_BAD_SIGNATURE ErrorCode = 2002

	ErrorCode_ARCHIVE_UNAVAILABLE   ErrorCode = 3000
	ErrorCode_ARCHIVE_RELOAD_FAILED ErrorCode = 3001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_PERMISSION_DENIED:     "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:       "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:       "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:    "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:    "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_BAD_SIGNATURE:    "AUTH_BAD_SIGNATURE",
	ErrorCode_ARCHIVE_UNAVAILABLE:   "ARCHIVE_UNAVAILABLE",
	ErrorCode_ARCHIVE_RELOAD_FAILED: "ARCHIVE_RELOAD_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AppError is the error type rendered at the HTTP edge
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_NOT_FOUND,
		Message:   fmt.Sprintf("%s not found", resource),
		Timestamp: time.Now(),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode:  http.StatusForbidden,
		Code:      ErrorCode_PERMISSION_DENIED,
		Message:   fmt.Sprintf("Permission denied: %s", action),
		Timestamp: time.Now(),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_UNAUTHENTICATED,
		Message:   "Authentication required",
		Timestamp: time.Now(),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_PAYLOAD,
		Message:   "Invalid request payload",
		Timestamp: time.Now(),
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_INVALID_TOKEN,
		Message:   "Invalid authentication token",
		Timestamp: time.Now(),
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:   "Authentication token has expired",
		Timestamp: time.Now(),
	}
}

func ErrBadSignature() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_BAD_SIGNATURE,
		Message:   "Webhook signature mismatch",
		Timestamp: time.Now(),
	}
}

// Archive Errors
func ErrSnapshotUnavailable(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusServiceUnavailable,
		Code:      ErrorCode_ARCHIVE_UNAVAILABLE,
		Message:   "Archive has not been loaded yet",
		Timestamp: time.Now(),
	}
}

func ErrReloadFailed(source string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_ARCHIVE_RELOAD_FAILED,
		Message:   "Archive reload failed",
		Timestamp: time.Now(),
	}.WithDetail("source", source)
}
