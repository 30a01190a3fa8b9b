package export

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("export: clipboard not supported on this system")

// ErrNothingToCopy is returned when there is no generated content yet.
var ErrNothingToCopy = errors.New("export: nothing to copy")

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the host clipboard via atotto/clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// Copy writes content to cb. Failures are returned so callers can show a
// transient notification.
func Copy(cb Clipboard, content string) error {
	if cb == nil {
		cb = SystemClipboard{}
	}
	if content == "" {
		return ErrNothingToCopy
	}
	if err := cb.WriteAll(content); err != nil {
		return fmt.Errorf("export: copy: %w", err)
	}
	return nil
}
