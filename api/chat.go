package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/harshgoy877/travdif-bot-backend/domain"
	"github.com/harshgoy877/travdif-bot-backend/relay"
	"github.com/harshgoy877/travdif-bot-backend/session"
)

// fallbackMessages are the fixed user-facing strings for relay failures.
// Detail goes to the log only.
var fallbackMessages = map[relay.Category]string{
	relay.CategoryAuth:    "The assistant is not set up correctly right now. Please contact us directly and we will help you.",
	relay.CategoryQuota:   "The assistant is very busy at the moment. Please try again in a minute.",
	relay.CategoryModel:   "The assistant is being updated right now. Please try again shortly.",
	relay.CategoryTimeout: "That took longer than expected. Please try again.",
	relay.CategoryUnknown: "Something went wrong on our side. Please try again, or contact us if it keeps happening.",
}

// Chat relays one message list to the vendor and returns the reply.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages must be a non-empty array"})
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != domain.RoleUser {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "last message must have role \"user\""})
	}
	if strings.TrimSpace(last.Content) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message content must be a non-empty string"})
	}

	requestID := "req_" + uuid.New().String()[:8]
	sessionKey := session.KeyFor(c.RealIP(), c.Request().UserAgent())

	reply, err := h.relay.Send(ctx, sessionKey, req.Messages)
	if err != nil {
		category := relay.Classify(err)
		log.Printf("ERROR: chat %s failed (%s): %v", requestID, category, err)
		return c.JSON(http.StatusInternalServerError, domain.ChatResponse{Reply: fallbackMessages[category]})
	}

	model := h.model.Get()
	inputText := h.prompts.SystemPrompt(last.Content)
	for _, m := range req.Messages {
		inputText += m.Content
	}
	promptTokens := relay.EstimateTokens(inputText)
	completionTokens := relay.EstimateTokens(reply)
	cost := relay.EstimateCost(model, promptTokens, completionTokens)

	h.metrics.RecordRequest(string(h.relay.Mode()), cost)

	if err := h.store.RecordConversation(ctx, &domain.Conversation{
		RequestID:        requestID,
		SessionKey:       sessionKey,
		Mode:             string(h.relay.Mode()),
		Model:            model,
		Question:         last.Content,
		Reply:            reply,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		CostEstimate:     cost,
		CreatedAt:        time.Now(),
	}); err != nil {
		log.Printf("WARN: failed to record conversation %s: %v", requestID, err)
	}

	return c.JSON(http.StatusOK, domain.ChatResponse{Reply: reply})
}
