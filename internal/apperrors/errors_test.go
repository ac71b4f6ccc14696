package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalAPIError(cause, "Gemini")

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsType(err, ErrorTypeExternal))
	assert.Contains(t, err.Error(), "Gemini")
}

func TestIsMatchesTypeAndCode(t *testing.T) {
	assert.ErrorIs(t, ErrGenerationInFlight, ErrGenerationInFlight)
	assert.NotErrorIs(t, ErrGenerationInFlight, ErrAdvanceBlocked)

	// A wrapped AppError still matches through errors.Is.
	wrapped := fmt.Errorf("advance failed: %w", ErrAdvanceBlocked)
	assert.ErrorIs(t, wrapped, ErrAdvanceBlocked)
}

func TestIsTypeOnPlainError(t *testing.T) {
	assert.False(t, IsType(errors.New("plain"), ErrorTypeValidation))
	assert.True(t, IsType(ErrWeightRequired, ErrorTypeValidation))
}

func TestCapabilityClassification(t *testing.T) {
	cause := errors.New("model rejected audio input")
	err := NewCapabilityError(cause, "voice transcription")

	assert.True(t, IsType(err, ErrorTypeCapability))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "voice transcription")

	// Still classified after further wrapping up the call chain.
	wrapped := fmt.Errorf("handle voice message: %w", err)
	assert.True(t, IsType(wrapped, ErrorTypeCapability))
}

func TestStorageClassification(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorageError(cause, "failed to read user:1:profile")

	assert.True(t, IsType(err, ErrorTypeStorage))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "user:1:profile")
}

func TestNewRecordsSource(t *testing.T) {
	err := New(ErrorTypeInternal, "X", "boom")
	require.NotEmpty(t, err.Source)
	assert.Contains(t, err.Source, "errors_test.go")
}
