package relay

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harshgoy877/travdif-bot-backend/domain"
	"github.com/harshgoy877/travdif-bot-backend/knowledge"
	"github.com/harshgoy877/travdif-bot-backend/openai"
	"github.com/harshgoy877/travdif-bot-backend/prompt"
	"github.com/harshgoy877/travdif-bot-backend/session"
)

// AssistantRelay drives the stateful OpenAI assistants flow: one vendor
// thread per visitor, one run per request, polled until terminal or the
// attempt budget runs out.
type AssistantRelay struct {
	client      *openai.Client
	registry    *session.Registry
	prompts     *prompt.Builder
	knowledge   *knowledge.Store
	assistantID string

	pollInterval time.Duration
	pollAttempts int
}

// NewAssistantRelay creates the assistants relay.
func NewAssistantRelay(client *openai.Client, registry *session.Registry, prompts *prompt.Builder, kn *knowledge.Store, assistantID string, pollInterval time.Duration, pollAttempts int) *AssistantRelay {
	return &AssistantRelay{
		client:       client,
		registry:     registry,
		prompts:      prompts,
		knowledge:    kn,
		assistantID:  assistantID,
		pollInterval: pollInterval,
		pollAttempts: pollAttempts,
	}
}

// Mode implements Relay.
func (r *AssistantRelay) Mode() domain.RelayMode { return domain.ModeAssistant }

// Send implements Relay. History lives on the vendor-side thread, so only
// the last user message is appended.
func (r *AssistantRelay) Send(ctx context.Context, sessionKey string, messages []domain.ChatMessage) (string, error) {
	query := messages[len(messages)-1].Content

	threadID, err := r.registry.GetOrCreate(ctx, sessionKey, func(ctx context.Context) (string, error) {
		thread, err := r.client.CreateThread(ctx)
		if err != nil {
			return "", err
		}
		return thread.ID, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get thread: %w", err)
	}

	if _, err := r.client.CreateThreadMessage(ctx, threadID, domain.RoleUser, query); err != nil {
		return "", fmt.Errorf("failed to append message: %w", err)
	}

	run, err := r.client.CreateRun(ctx, threadID, r.assistantID, r.prompts.SystemPrompt(query))
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}

	// Polling is detached from the client connection: an abandoned request
	// does not stop the outbound loop.
	pollCtx := context.WithoutCancel(ctx)
	for attempt := 0; attempt < r.pollAttempts && !openai.RunTerminal(run.Status); attempt++ {
		time.Sleep(r.pollInterval)
		run, err = r.client.GetRun(pollCtx, threadID, run.ID)
		if err != nil {
			return "", fmt.Errorf("failed to poll run: %w", err)
		}
	}

	if run.Status != openai.RunStatusCompleted {
		if run.LastError != nil {
			log.Printf("ERROR: run %s ended %s: %s (%s)", run.ID, run.Status, run.LastError.Message, run.LastError.Code)
		} else {
			log.Printf("WARN: run %s not completed after %d polls (status %s)", run.ID, r.pollAttempts, run.Status)
		}
		return ProcessingMessage, nil
	}

	reply, err := r.client.LatestAssistantMessage(pollCtx, threadID)
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	if reply == "" {
		return ProcessingMessage, nil
	}
	return reply, nil
}

// ReloadKnowledge re-uploads the knowledge blob and rebuilds the vendor-side
// file search index. Full reinitialization, not an incremental update.
func (r *AssistantRelay) ReloadKnowledge(ctx context.Context) error {
	file, err := r.client.UploadFile(ctx, "knowledge.txt", []byte(r.knowledge.Text()))
	if err != nil {
		return fmt.Errorf("failed to upload knowledge: %w", err)
	}
	vs, err := r.client.CreateVectorStore(ctx, "travdif-knowledge", []string{file.ID})
	if err != nil {
		return fmt.Errorf("failed to create vector store: %w", err)
	}
	if err := r.client.AttachVectorStore(ctx, r.assistantID, vs.ID); err != nil {
		return fmt.Errorf("failed to attach vector store: %w", err)
	}
	return nil
}
