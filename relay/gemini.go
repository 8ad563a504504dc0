package relay

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/harshgoy877/travdif-bot-backend/domain"
	"github.com/harshgoy877/travdif-bot-backend/prompt"
)

// GeminiRelay sends the conversation to Google Gemini through the official
// genai SDK, with the system prompt as the generation system instruction.
type GeminiRelay struct {
	client  *genai.Client
	prompts *prompt.Builder
	model   *ActiveModel
}

// NewGeminiRelay creates the Gemini relay.
func NewGeminiRelay(ctx context.Context, apiKey string, prompts *prompt.Builder, model *ActiveModel) (*GeminiRelay, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiRelay{client: client, prompts: prompts, model: model}, nil
}

// Mode implements Relay.
func (r *GeminiRelay) Mode() domain.RelayMode { return domain.ModeGemini }

// Send implements Relay.
func (r *GeminiRelay) Send(ctx context.Context, _ string, messages []domain.ChatMessage) (string, error) {
	query := messages[len(messages)-1].Content

	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		}
		// system entries are carried via the generation config instead
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(r.prompts.SystemPrompt(query), genai.RoleUser),
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model.Get(), contents, cfg)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}
