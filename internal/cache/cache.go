// Package cache persists raw provider responses to disk.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vlysenko/weather-cli/internal/weather"
)

// DefaultPath is where -save writes when no cache path is given.
const DefaultPath = "cache.json"

// ErrWrite is returned when the cache file cannot be written.
var ErrWrite = errors.New("cannot write cache file")

// Write serializes the raw document as indented JSON at path, creating the
// file if absent and overwriting it otherwise.
func Write(doc weather.Document, path string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return fmt.Errorf("%w: %v", weather.ErrParse, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w %q: %v", ErrWrite, path, err)
	}
	return nil
}
