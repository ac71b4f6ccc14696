package apperrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType classifies failures by how they are recovered.
type ErrorType string

const (
	// ErrorTypeValidation blocks a transition; no message beyond a
	// disabled forward action.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeExternal covers transport, malformed responses and
	// schema violations from the AI collaborator.
	ErrorTypeExternal ErrorType = "external_api"
	// ErrorTypeStorage covers unreadable or unparseable persisted
	// state; recovered per entity by falling back to defaults.
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeCapability marks a platform feature that is not
	// available (e.g. voice capture).
	ErrorTypeCapability ErrorType = "capability"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError carries the failure class alongside the message so each
// component boundary can decide how to contain it.
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Source   string
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  fmt.Sprintf("%s:%d", file, line),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   fmt.Sprintf("%s:%d", file, line),
	}
}

// Predefined errors
var (
	ErrWeightRequired     = New(ErrorTypeValidation, "WEIGHT_REQUIRED", "Check-in weight is required")
	ErrGenerationInFlight = New(ErrorTypeValidation, "GENERATION_IN_FLIGHT", "A plan generation request is already running")
	ErrAdvanceBlocked     = New(ErrorTypeValidation, "ADVANCE_BLOCKED", "Required fields are missing for this step")
	ErrNoPlan             = New(ErrorTypeValidation, "NO_PLAN", "No plan has been generated yet")
)

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

func NewExternalAPIError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeExternal, "EXTERNAL_API", fmt.Sprintf("%s API error", api))
}

func NewStorageError(err error, operation string) *AppError {
	return Wrap(err, ErrorTypeStorage, "STORAGE", operation)
}

func NewCapabilityError(err error, feature string) *AppError {
	return Wrap(err, ErrorTypeCapability, "CAPABILITY", fmt.Sprintf("%s is unavailable", feature))
}
