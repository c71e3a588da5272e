package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category ErrorCategory
		severity ErrorSeverity
	}{
		{ErrCodeValidation, CategoryValidation, SeverityWarning},
		{ErrCodeMissingField, CategoryValidation, SeverityWarning},
		{ErrCodeNotFound, CategoryCatalog, SeverityInfo},
		{ErrCodeAlreadyExists, CategoryCatalog, SeverityWarning},
		{ErrCodeIncompleteTemplate, CategorySession, SeverityWarning},
		{ErrCodeInvalidTransition, CategorySession, SeverityError},
		{ErrCodeClipboardFailure, CategoryIntegration, SeverityError},
		{ErrCodeStorageFailure, CategoryStorage, SeverityError},
		{ErrCodeInternalError, CategorySystem, SeverityCritical},
		{ErrorCode("SOMETHING_ELSE"), CategorySystem, SeverityError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewAppError(tt.code, "msg")
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestGetAppError_Wrapped(t *testing.T) {
	base := AlreadyExistsError("category \"Career\"")
	wrapped := fmt.Errorf("adding category: %w", base)

	require.True(t, IsAppError(wrapped))
	assert.Same(t, base, GetAppError(wrapped))
	assert.True(t, HasCode(wrapped, ErrCodeAlreadyExists))
	assert.False(t, HasCode(wrapped, ErrCodeNotFound))
}

func TestGetAppError_PlainError(t *testing.T) {
	plain := stderrors.New("boom")
	appErr := GetAppError(plain)
	assert.Equal(t, ErrCodeInternalError, appErr.Code)
	assert.ErrorIs(t, appErr, plain)
	assert.False(t, IsAppError(plain))
}

func TestIncompleteTemplateError(t *testing.T) {
	err := IncompleteTemplateError([]string{"goal", "level"})
	assert.Equal(t, ErrCodeIncompleteTemplate, err.Code)
	assert.Contains(t, err.Error(), "goal")
	assert.Equal(t, []string{"goal", "level"}, err.Context["missing"])
}

func TestCLIErrorHandler_FormatError(t *testing.T) {
	h := NewCLIErrorHandler(false)

	out := h.FormatError(MissingFieldError("title"))
	assert.True(t, strings.HasPrefix(out, "WARNING: "), out)
	assert.Contains(t, out, "title is required")

	out = h.FormatError(InternalError("bad"))
	assert.True(t, strings.HasPrefix(out, "CRITICAL: "), out)

	assert.NoError(t, h.HandleError(nil))
	assert.EqualError(t, h.HandleError(NotFoundError("prompt \"x\"")), "INFO: prompt \"x\" not found")
}

func TestTUIErrorHandler(t *testing.T) {
	h := NewTUIErrorHandler(true)
	err := IncompleteTemplateError([]string{"topic"})

	assert.Equal(t, "fill in every placeholder first: missing: [topic]", h.FormatError(err))
	assert.True(t, h.IsWarning(err))
	assert.False(t, h.IsWarning(Wrap(stderrors.New("x"), ErrCodeClipboardFailure, "copy failed")))
	assert.Same(t, err, h.HandleError(err))
}
