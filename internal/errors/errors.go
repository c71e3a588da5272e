// Package errors provides unified error handling across the prompt catalog.
//
// Every user facing failure (a blank form field, a duplicate category, a
// copy attempted before all markers are filled, a missing clipboard tool) is
// an AppError carrying a stable code, a category and a severity. The CLI and
// the TUI format the same AppError differently; see handlers.go.
//
// The placeholder engine never produces errors. Errors start at the
// catalog, session and integration layers.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Session errors
	ErrCodeIncompleteTemplate ErrorCode = "INCOMPLETE_TEMPLATE"
	ErrCodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"

	// Integration errors
	ErrCodeClipboardFailure ErrorCode = "CLIPBOARD_FAILURE"
	ErrCodeBrowserFailure   ErrorCode = "BROWSER_FAILURE"
	ErrCodeStorageFailure   ErrorCode = "STORAGE_FAILURE"

	// Command errors
	ErrCodeInvalidCommand ErrorCode = "INVALID_COMMAND"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation  ErrorCategory = "validation"
	CategoryCatalog     ErrorCategory = "catalog"
	CategorySession     ErrorCategory = "session"
	CategoryIntegration ErrorCategory = "integration"
	CategoryStorage     ErrorCategory = "storage"
	CategoryCommand     ErrorCategory = "command"
	CategorySystem      ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeMissingField:
		return CategoryValidation, SeverityWarning
	case ErrCodeNotFound:
		return CategoryCatalog, SeverityInfo
	case ErrCodeAlreadyExists:
		return CategoryCatalog, SeverityWarning
	case ErrCodeIncompleteTemplate:
		return CategorySession, SeverityWarning
	case ErrCodeInvalidTransition:
		return CategorySession, SeverityError
	case ErrCodeClipboardFailure, ErrCodeBrowserFailure:
		return CategoryIntegration, SeverityError
	case ErrCodeStorageFailure:
		return CategoryStorage, SeverityError
	case ErrCodeInvalidCommand:
		return CategoryCommand, SeverityError
	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical
	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if err is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, err.Error())
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func MissingFieldError(field string) *AppError {
	return NewAppError(ErrCodeMissingField, fmt.Sprintf("%s is required", field)).WithContext("field", field)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func AlreadyExistsError(resource string) *AppError {
	return NewAppError(ErrCodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}

// IncompleteTemplateError lists the markers that still need a value.
func IncompleteTemplateError(missing []string) *AppError {
	return NewAppError(ErrCodeIncompleteTemplate, "fill in every placeholder first").
		WithDetails(fmt.Sprintf("missing: %v", missing)).
		WithContext("missing", missing)
}

func InvalidTransitionError(from, action string) *AppError {
	return NewAppError(ErrCodeInvalidTransition, fmt.Sprintf("cannot %s a session that is %s", action, from))
}

func ClipboardFailureError(err error) *AppError {
	return Wrap(err, ErrCodeClipboardFailure, "could not copy to clipboard")
}

func BrowserFailureError(tool string, err error) *AppError {
	return Wrap(err, ErrCodeBrowserFailure, fmt.Sprintf("could not open %s", tool))
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("Storage operation failed: %s", operation))
}

func InvalidCommandError(command string, reason string) *AppError {
	return NewAppError(ErrCodeInvalidCommand, fmt.Sprintf("Invalid command '%s': %s", command, reason))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}
