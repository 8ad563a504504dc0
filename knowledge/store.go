// Package knowledge loads the static business knowledge used to ground replies.
package knowledge

import (
	"os"
	"sync"
)

// FallbackText is used when the knowledge file cannot be read.
const FallbackText = `Travdif is a travel agency offering curated travel packages, ` +
	`flight and hotel bookings, visa assistance, and custom tour planning. ` +
	`Packages start from budget city breaks to premium multi-country tours. ` +
	`Pricing depends on destination, season, and group size; exact quotes are ` +
	`provided after a short consultation. Contact Travdif by email or through ` +
	`the website contact form for bookings and support.`

// Store holds the knowledge blob. Loaded once at startup, read-only between
// reloads.
type Store struct {
	mu       sync.RWMutex
	path     string
	text     string
	fromFile bool
}

// Load reads the file at path, falling back to FallbackText on any error.
// It never fails.
func Load(path string) *Store {
	s := &Store{path: path}
	s.Reload()
	return s
}

// Reload re-runs the load-or-fallback logic. Returns true when the blob came
// from the file rather than the fallback.
func (s *Store) Reload() bool {
	text := FallbackText
	fromFile := false
	if data, err := os.ReadFile(s.path); err == nil && len(data) > 0 {
		text = string(data)
		fromFile = true
	}

	s.mu.Lock()
	s.text = text
	s.fromFile = fromFile
	s.mu.Unlock()
	return fromFile
}

// Text returns the current knowledge blob.
func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Len returns the length of the current blob in bytes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.text)
}

// FromFile reports whether the current blob was read from the configured file.
func (s *Store) FromFile() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fromFile
}
