package errors

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// logAppError writes one structured entry per handled error.
func logAppError(source string, appErr *AppError) {
	evt := log.Warn()
	switch appErr.Severity {
	case SeverityError, SeverityCritical:
		evt = log.Error()
	case SeverityInfo:
		evt = log.Info()
	}
	evt = evt.
		Str("source", source).
		Str("code", string(appErr.Code)).
		Str("category", string(appErr.Category))
	if appErr.Cause != nil {
		evt = evt.AnErr("cause", appErr.Cause)
	}
	if len(appErr.Context) > 0 {
		evt = evt.Interface("context", appErr.Context)
	}
	evt.Msg(appErr.Message)
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{
		Verbose: verbose,
	}
}

// HandleError logs err when verbose and returns a display-ready error.
func (h *CLIErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}
	appErr := GetAppError(err)
	if h.Verbose {
		logAppError("cli", appErr)
	}
	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	msg := appErr.Message
	if appErr.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, appErr.Details)
	}

	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("CRITICAL: %s", msg)
	case SeverityError:
		return fmt.Sprintf("ERROR: %s", msg)
	case SeverityWarning:
		return fmt.Sprintf("WARNING: %s", msg)
	case SeverityInfo:
		return fmt.Sprintf("INFO: %s", msg)
	default:
		return msg
	}
}

// TUIErrorHandler handles errors for TUI interface
type TUIErrorHandler struct {
	ShowDetails bool
}

// NewTUIErrorHandler creates a new TUI error handler
func NewTUIErrorHandler(showDetails bool) *TUIErrorHandler {
	return &TUIErrorHandler{
		ShowDetails: showDetails,
	}
}

// HandleError logs the error. The TUI logger writes to a file so the
// alternate screen is never disturbed.
func (h *TUIErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}
	appErr := GetAppError(err)
	logAppError("tui", appErr)
	return appErr
}

// FormatError formats an error for the TUI status line
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s: %s", message, appErr.Details)
	}
	return message
}

// IsWarning reports whether err should be styled as a warning rather than a
// failure in the TUI.
func (h *TUIErrorHandler) IsWarning(err error) bool {
	appErr := GetAppError(err)
	return appErr.Severity == SeverityWarning || appErr.Severity == SeverityInfo
}
