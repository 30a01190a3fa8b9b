// Package storage persists form value bags between sessions. Values are
// stored per template and preview mode under the key "<templateId>_<mode>".
package storage

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
)

// ErrInvalidKey is returned when a key cannot be mapped onto the backend.
var ErrInvalidKey = errors.New("storage: invalid key")

// Store is the key-value port backing persistence.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte) error
	Delete(key string) error
}

// Key builds the storage key for a template and preview mode.
func Key(templateID string, mode model.PreviewMode) string {
	return templateID + "_" + string(mode)
}

func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsFunc(key, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case r == '-', r == '_', r == '.':
			return false
		}
		return true
	})
}
