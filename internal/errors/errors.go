package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeDecode covers bad, corrupt or unsupported image bytes,
	// missing files and zero-area images. Recovered per item.
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeEncoding covers path records that are not valid UTF-8.
	// Recovered silently.
	ErrorTypeEncoding ErrorType = "encoding"
	// ErrorTypeMetricUnavailable marks an optional detector backend that
	// cannot be constructed. Recovered at suite-construction time.
	ErrorTypeMetricUnavailable ErrorType = "metric_unavailable"
	// ErrorTypeStream marks an unreadable input or output stream. Fatal.
	ErrorTypeStream ErrorType = "stream"
	// ErrorTypeConfig marks invalid run configuration. Fatal.
	ErrorTypeConfig ErrorType = "config"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a new decode error
func NewDecodeError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeDecode, Message: message, Cause: cause}
}

// NewEncodingError creates a new encoding error
func NewEncodingError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeEncoding, Message: message, Cause: cause}
}

// NewMetricUnavailableError creates a new metric-unavailable error
func NewMetricUnavailableError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeMetricUnavailable, Message: message, Cause: cause}
}

// NewStreamError creates a new stream error
func NewStreamError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeStream, Message: message, Cause: cause}
}

// NewConfigError creates a new config error
func NewConfigError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Cause: cause}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}
