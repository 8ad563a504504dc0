// Package domain defines the core domain models for the concierge.
package domain

import "time"

// Message roles accepted on the chat endpoint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is a single entry in a conversation. Ephemeral, provided
// per request; never persisted as-is.
type ChatMessage struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the reply returned to the widget.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// RelayMode selects which vendor relay serves chat requests.
type RelayMode string

const (
	ModeCompletion RelayMode = "completion"
	ModeAssistant  RelayMode = "assistant"
	ModeGemini     RelayMode = "gemini"
)

// Conversation is one recorded chat exchange in the transcript store.
type Conversation struct {
	RequestID        string    `json:"request_id"`
	SessionKey       string    `json:"session_key"`
	Mode             string    `json:"mode"`
	Model            string    `json:"model"`
	Question         string    `json:"question"`
	Reply            string    `json:"reply"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	CostEstimate     float64   `json:"cost_estimate"`
	CreatedAt        time.Time `json:"created_at"`
}
