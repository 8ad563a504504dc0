package relay

import (
	"context"
	"fmt"

	"github.com/harshgoy877/travdif-bot-backend/domain"
	"github.com/harshgoy877/travdif-bot-backend/openai"
	"github.com/harshgoy877/travdif-bot-backend/prompt"
)

// CompletionRelay issues one synchronous chat completion per request with the
// system prompt installed at index 0.
type CompletionRelay struct {
	client  *openai.Client
	prompts *prompt.Builder
	model   *ActiveModel
}

// NewCompletionRelay creates the synchronous completion relay.
func NewCompletionRelay(client *openai.Client, prompts *prompt.Builder, model *ActiveModel) *CompletionRelay {
	return &CompletionRelay{client: client, prompts: prompts, model: model}
}

// Mode implements Relay.
func (r *CompletionRelay) Mode() domain.RelayMode { return domain.ModeCompletion }

// Send implements Relay.
func (r *CompletionRelay) Send(ctx context.Context, _ string, messages []domain.ChatMessage) (string, error) {
	query := messages[len(messages)-1].Content
	prepared := r.prompts.WithSystem(messages, query)

	wire := make([]openai.ChatMessage, len(prepared))
	for i, m := range prepared {
		wire[i] = openai.ChatMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := r.client.CreateChatCompletion(ctx, &openai.ChatCompletionRequest{
		Model:    r.model.Get(),
		Messages: wire,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
