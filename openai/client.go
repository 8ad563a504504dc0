// Package openai is a hand-rolled client for the OpenAI chat completion and
// assistants APIs. Only the calls the relay needs are implemented.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client talks to an OpenAI-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ChatMessage is a message in the completion request wire format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the OpenAI chat completion request.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// ChatCompletionResponse is the OpenAI chat completion response.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is a completion choice.
type Choice struct {
	Index        int          `json:"index"`
	Message      *ChatMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

// Usage is vendor-reported token usage.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorResponse is the vendor error envelope.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// APIError carries the vendor error details plus the HTTP status it arrived
// with, so callers can classify failures without parsing message text.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       string `json:"code,omitempty"`
	Param      string `json:"param,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai API error [%d]: %s (type: %s)", e.StatusCode, e.Message, e.Type)
}

// Run statuses reported by the assistants API.
const (
	RunStatusQueued         = "queued"
	RunStatusInProgress     = "in_progress"
	RunStatusRequiresAction = "requires_action"
	RunStatusCancelling     = "cancelling"
	RunStatusCancelled      = "cancelled"
	RunStatusFailed         = "failed"
	RunStatusCompleted      = "completed"
	RunStatusExpired        = "expired"
)

// RunTerminal reports whether a run status is terminal.
func RunTerminal(status string) bool {
	switch status {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Thread is a vendor-side conversation.
type Thread struct {
	ID string `json:"id"`
}

// Run is a single inference invocation against a thread.
type Run struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Status    string    `json:"status"`
	LastError *RunError `json:"last_error,omitempty"`
}

// RunError is the failure detail the vendor attaches to a failed run.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ThreadMessage is a message stored on a thread.
type ThreadMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text struct {
			Value string `json:"value"`
		} `json:"text"`
	} `json:"content"`
}

// ThreadMessageList is the list envelope for thread messages.
type ThreadMessageList struct {
	Data []ThreadMessage `json:"data"`
}

// File is an uploaded file handle.
type File struct {
	ID string `json:"id"`
}

// VectorStore is a vendor-side file search index.
type VectorStore struct {
	ID string `json:"id"`
}

// CreateChatCompletion sends a synchronous chat completion request.
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	var result ChatCompletionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/chat/completions", req, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateThread creates a new conversation thread.
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	var result Thread
	if err := c.doJSON(ctx, http.MethodPost, "/v1/threads", map[string]any{}, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateThreadMessage appends a message to a thread.
func (c *Client) CreateThreadMessage(ctx context.Context, threadID, role, content string) (*ThreadMessage, error) {
	body := map[string]string{"role": role, "content": content}
	var result ThreadMessage
	path := fmt.Sprintf("/v1/threads/%s/messages", threadID)
	if err := c.doJSON(ctx, http.MethodPost, path, body, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateRun starts a run on a thread with per-run instructions.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID, instructions string) (*Run, error) {
	body := map[string]string{"assistant_id": assistantID}
	if instructions != "" {
		body["instructions"] = instructions
	}
	var result Run
	path := fmt.Sprintf("/v1/threads/%s/runs", threadID)
	if err := c.doJSON(ctx, http.MethodPost, path, body, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRun fetches the current status of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var result Run
	path := fmt.Sprintf("/v1/threads/%s/runs/%s", threadID, runID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// LatestAssistantMessage returns the text of the newest assistant message on
// a thread, or an empty string when there is none.
func (c *Client) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	var result ThreadMessageList
	path := fmt.Sprintf("/v1/threads/%s/messages?limit=5&order=desc", threadID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result, true); err != nil {
		return "", err
	}
	for _, msg := range result.Data {
		if msg.Role != "assistant" {
			continue
		}
		for _, part := range msg.Content {
			if part.Type == "text" && part.Text.Value != "" {
				return part.Text.Value, nil
			}
		}
	}
	return "", nil
}

// UploadFile uploads content for the assistants file search.
func (c *Client) UploadFile(ctx context.Context, filename string, content []byte) (*File, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("purpose", "assistants"); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())
	c.setAuth(httpReq)

	var result File
	if err := c.send(httpReq, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateVectorStore builds a new file search index over the given files.
func (c *Client) CreateVectorStore(ctx context.Context, name string, fileIDs []string) (*VectorStore, error) {
	body := map[string]any{"name": name, "file_ids": fileIDs}
	var result VectorStore
	if err := c.doJSON(ctx, http.MethodPost, "/v1/vector_stores", body, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// AttachVectorStore points the assistant's file search at a vector store.
func (c *Client) AttachVectorStore(ctx context.Context, assistantID, vectorStoreID string) error {
	body := map[string]any{
		"tool_resources": map[string]any{
			"file_search": map[string]any{
				"vector_store_ids": []string{vectorStoreID},
			},
		},
	}
	path := fmt.Sprintf("/v1/assistants/%s", assistantID)
	return c.doJSON(ctx, http.MethodPost, path, body, &struct{}{}, true)
}

// doJSON marshals body (when non-nil), performs the request, and decodes the
// response into out. Assistant endpoints carry the beta header.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, assistants bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if assistants {
		httpReq.Header.Set("OpenAI-Beta", "assistants=v2")
	}
	c.setAuth(httpReq)

	return c.send(httpReq, out)
}

// send executes the request and decodes the body, turning non-200 responses
// into *APIError.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			errResp.Error.StatusCode = resp.StatusCode
			return errResp.Error
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
			Type:       "upstream_error",
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
