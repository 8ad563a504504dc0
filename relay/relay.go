// Package relay sends a prepared conversation to the configured LLM vendor
// and returns the reply text. All vendor shapes hide behind one contract.
package relay

import (
	"context"
	"sync"

	"github.com/harshgoy877/travdif-bot-backend/domain"
)

// ProcessingMessage is returned when an assistant run does not reach a
// terminal state within the poll budget, or fails. The request is not retried
// or queued; the visitor is asked to try again.
const ProcessingMessage = "I'm still working on your question. Please ask again in a moment."

// Relay sends one conversation to the vendor per call.
type Relay interface {
	// Send returns the generated reply for the given message list. The last
	// entry is the user's current question. sessionKey identifies the visitor
	// for stateful relays; stateless relays ignore it.
	Send(ctx context.Context, sessionKey string, messages []domain.ChatMessage) (string, error)

	// Mode reports which relay shape this is.
	Mode() domain.RelayMode
}

// ActiveModel holds the model name used by subsequent vendor calls. The
// admin switch-model endpoint swaps it at runtime.
type ActiveModel struct {
	mu   sync.RWMutex
	name string
}

// NewActiveModel creates the holder with an initial model name.
func NewActiveModel(name string) *ActiveModel {
	return &ActiveModel{name: name}
}

// Get returns the current model name.
func (m *ActiveModel) Get() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

// Set swaps the active model.
func (m *ActiveModel) Set(name string) {
	m.mu.Lock()
	m.name = name
	m.mu.Unlock()
}
