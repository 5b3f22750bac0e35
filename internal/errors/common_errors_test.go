package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "unsupported format", errType: ErrTypeUnsupportedFormat, expected: "UNSUPPORTED_FORMAT"},
		{name: "parsing", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "no valid data", errType: ErrTypeNoValidData, expected: "NO_VALID_DATA"},
		{name: "malformed duration", errType: ErrTypeMalformedDuration, expected: "MALFORMED_DURATION"},
		{name: "missing config key", errType: ErrTypeMissingConfigKey, expected: "MISSING_CONFIG_KEY"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "storage", errType: ErrTypeStorage, expected: "STORAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewAppError(ErrTypeConfig, "bad config", nil),
			expected: "[CONFIG] bad config",
		},
		{
			name:     "with cause",
			err:      NewAppError(ErrTypeStorage, "write failed", fmt.Errorf("disk full")),
			expected: "[STORAGE] write failed: disk full",
		},
		{
			name:     "unsupported format names the extension",
			err:      NewUnsupportedFormatError(".txt"),
			expected: "[UNSUPPORTED_FORMAT] Unsupported file format: .txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_IsMatchesByType(t *testing.T) {
	err := fmt.Errorf("run failed: %w", NewNoValidDataError())

	assert.True(t, errors.Is(err, ErrNoValidData))
	assert.False(t, errors.Is(err, ErrParsing))
	assert.False(t, errors.Is(err, fmt.Errorf("other")))
}

func TestAppError_UnwrapReachesCause(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := NewParsingError("results.csv", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "results.csv", appErr.Context["file"])
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeConfig, Message: "x"}
	err.WithContext("key", "value").WithContext("n", 2)

	assert.Equal(t, "value", err.Context["key"])
	assert.Equal(t, 2, err.Context["n"])
}

func TestHelperConstructors(t *testing.T) {
	dur := NewMalformedDurationError(3, "abc", nil)
	assert.Equal(t, ErrTypeMalformedDuration, dur.Type)
	assert.Equal(t, 3, dur.Context["row"])
	assert.Equal(t, "abc", dur.Context["value"])

	key := NewMissingConfigKeyError("output_pdf")
	assert.Equal(t, ErrTypeMissingConfigKey, key.Type)
	assert.Contains(t, key.Error(), "output_pdf")

	assert.Equal(t, ErrTypeConfig, NewConfigError("m", nil).Type)
	assert.Equal(t, ErrTypeStorage, NewStorageError("m", nil).Type)
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewMissingConfigKeyError("input_files"))

	typ, ok := TypeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrTypeMissingConfigKey, typ)

	_, ok = TypeOf(fmt.Errorf("plain"))
	assert.False(t, ok)

	_, ok = TypeOf(nil)
	assert.False(t, ok)
}
