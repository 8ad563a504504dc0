package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing auth header")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}],"usage":{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	resp, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}
	if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "hi" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad api key","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong", time.Second)
	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Code != "invalid_api_key" {
		t.Fatalf("unexpected code: %s", apiErr.Code)
	}
}

func TestClientThreadAndRunFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("OpenAI-Beta") != "assistants=v2" {
			t.Fatalf("missing assistants beta header on %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/threads":
			fmt.Fprint(w, `{"id":"thread_1"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/threads/thread_1/messages":
			fmt.Fprint(w, `{"id":"msg_1","role":"user"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/threads/thread_1/runs":
			fmt.Fprint(w, `{"id":"run_1","thread_id":"thread_1","status":"queued"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/threads/thread_1/runs/run_1":
			fmt.Fprint(w, `{"id":"run_1","thread_id":"thread_1","status":"completed"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/threads/thread_1/messages":
			fmt.Fprint(w, `{"data":[{"id":"msg_2","role":"assistant","content":[{"type":"text","text":{"value":"the reply"}}]}]}`)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	ctx := context.Background()

	thread, err := client.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}
	if thread.ID != "thread_1" {
		t.Fatalf("unexpected thread: %+v", thread)
	}

	if _, err := client.CreateThreadMessage(ctx, thread.ID, "user", "hello"); err != nil {
		t.Fatalf("CreateThreadMessage failed: %v", err)
	}

	run, err := client.CreateRun(ctx, thread.ID, "asst_1", "instructions")
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if run.Status != RunStatusQueued {
		t.Fatalf("unexpected run status: %s", run.Status)
	}

	run, err = client.GetRun(ctx, thread.ID, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if !RunTerminal(run.Status) {
		t.Fatalf("completed should be terminal")
	}

	reply, err := client.LatestAssistantMessage(ctx, thread.ID)
	if err != nil {
		t.Fatalf("LatestAssistantMessage failed: %v", err)
	}
	if reply != "the reply" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestRunTerminal(t *testing.T) {
	terminal := []string{RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired}
	for _, s := range terminal {
		if !RunTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	nonTerminal := []string{RunStatusQueued, RunStatusInProgress, RunStatusCancelling, RunStatusRequiresAction}
	for _, s := range nonTerminal {
		if RunTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
