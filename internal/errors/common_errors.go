package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeNoValidData       ErrorType = "NO_VALID_DATA"
	ErrTypeMalformedDuration ErrorType = "MALFORMED_DURATION"
	ErrTypeMissingConfigKey  ErrorType = "MISSING_CONFIG_KEY"
	ErrTypeConfig            ErrorType = "CONFIG"
	ErrTypeStorage           ErrorType = "STORAGE"
)

// Sentinels for errors.Is comparisons. Matching is by type only.
var (
	ErrUnsupportedFormat = &AppError{Type: ErrTypeUnsupportedFormat, Message: "unsupported file format"}
	ErrParsing           = &AppError{Type: ErrTypeParsing, Message: "failed to parse file"}
	ErrNoValidData       = &AppError{Type: ErrTypeNoValidData, Message: "no valid data found in the provided files"}
	ErrMalformedDuration = &AppError{Type: ErrTypeMalformedDuration, Message: "malformed execution time"}
	ErrMissingConfigKey  = &AppError{Type: ErrTypeMissingConfigKey, Message: "missing configuration key"}
	ErrConfig            = &AppError{Type: ErrTypeConfig, Message: "invalid configuration"}
	ErrStorage           = &AppError{Type: ErrTypeStorage, Message: "storage failure"}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewUnsupportedFormatError reports a file extension no decoder handles
func NewUnsupportedFormatError(extension string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat,
		fmt.Sprintf("Unsupported file format: %s", extension), nil).
		WithContext("extension", extension)
}

// NewParsingError creates a parsing-related error
func NewParsingError(path string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, fmt.Sprintf("failed to parse %s", path), cause).
		WithContext("file", path)
}

// NewNoValidDataError is returned when no input file could be parsed
func NewNoValidDataError() *AppError {
	return NewAppError(ErrTypeNoValidData, "No valid data found in the provided files.", nil)
}

// NewMalformedDurationError reports an execution time that is not numeric
func NewMalformedDurationError(row int, value string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedDuration,
		fmt.Sprintf("cannot convert execution time %q at row %d", value, row), cause).
		WithContext("row", row).
		WithContext("value", value)
}

// NewMissingConfigKeyError reports a required configuration key that is absent
func NewMissingConfigKeyError(key string) *AppError {
	return NewAppError(ErrTypeMissingConfigKey, fmt.Sprintf("missing configuration key: %s", key), nil).
		WithContext("key", key)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain
func TypeOf(err error) (ErrorType, bool) {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			return appErr.Type, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}
