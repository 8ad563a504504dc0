// Package session maps widget visitors to vendor-side conversation handles.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// DefaultCap is the default registry capacity.
const DefaultCap = 1000

// CreateFunc requests a new conversation handle from the vendor.
type CreateFunc func(ctx context.Context) (string, error)

// Registry maps an opaque session key to a vendor-assigned conversation
// handle. At most one handle per key. When the registry grows past its
// capacity the single oldest-inserted entry is evicted (FIFO by first-seen,
// not LRU). No expiry by time.
type Registry struct {
	mu      sync.Mutex
	cap     int
	handles map[string]string
	order   []string // insertion order, oldest first
}

// NewRegistry creates a registry with the given capacity. A non-positive
// capacity falls back to DefaultCap.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Registry{
		cap:     capacity,
		handles: make(map[string]string),
	}
}

// GetOrCreate returns the handle stored for key, creating one via create when
// absent. Inserting beyond capacity evicts exactly one oldest-inserted key.
func (r *Registry) GetOrCreate(ctx context.Context, key string, create CreateFunc) (string, error) {
	r.mu.Lock()
	if handle, ok := r.handles[key]; ok {
		r.mu.Unlock()
		return handle, nil
	}
	r.mu.Unlock()

	// Vendor call happens outside the lock. Concurrent first requests for
	// the same key may both create; the first writer wins below.
	handle, err := create(ctx)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.handles[key]; ok {
		return existing, nil
	}
	r.handles[key] = handle
	r.order = append(r.order, key)
	if len(r.handles) > r.cap {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.handles, oldest)
	}
	return handle, nil
}

// Len returns the number of stored handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// KeyFor derives the opaque session key for a visitor from their network
// address and user agent. It approximates "the same visitor" without real
// authentication.
func KeyFor(remoteAddr, userAgent string) string {
	sum := sha256.Sum256([]byte(remoteAddr + "|" + userAgent))
	return hex.EncodeToString(sum[:8])
}
