package clipboard

import (
	stderrors "errors"
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/dpshade/prompt-catalog/internal/errors"
)

// CopiedMessage is the status shown after a successful copy.
const CopiedMessage = "Copied to clipboard!"

// ClipboardError represents an error when no clipboard utility is available
type ClipboardError struct {
	OS      string
	Message string
}

func (e *ClipboardError) Error() string {
	return e.Message
}

// NewClipboardError creates a new ClipboardError with helpful installation instructions
func NewClipboardError() *ClipboardError {
	var msg string
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		msg = "no clipboard utility found. " + GetInstallInstructions()
	default:
		msg = fmt.Sprintf("clipboard not supported on %s", runtime.GOOS)
	}

	return &ClipboardError{
		OS:      runtime.GOOS,
		Message: msg,
	}
}

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

// WriteAll implements Writer.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return NewClipboardError()
	}
	return clipboard.WriteAll(text)
}

// Copy copies text to the system clipboard
func Copy(text string) error {
	return System{}.WriteAll(text)
}

// CopyWithFallback copies text with w and returns the status message. A
// missing clipboard utility is returned as-is so callers can show the
// install instructions; any other failure is a CLIPBOARD_FAILURE AppError.
func CopyWithFallback(w Writer, text string) (string, error) {
	if err := w.WriteAll(text); err != nil {
		var clipErr *ClipboardError
		if stderrors.As(err, &clipErr) {
			return "", err
		}
		return "", errors.ClipboardFailureError(err)
	}
	return CopiedMessage, nil
}

// IsClipboardAvailable checks if clipboard functionality is available
func IsClipboardAvailable() bool {
	return !clipboard.Unsupported
}

// GetInstallInstructions returns installation instructions for clipboard utilities
func GetInstallInstructions() string {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "Install a clipboard utility:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return fmt.Sprintf("Clipboard not supported on %s", runtime.GOOS)
	}
}
