// Package api provides the HTTP handlers for the concierge.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harshgoy877/travdif-bot-backend/config"
	"github.com/harshgoy877/travdif-bot-backend/knowledge"
	"github.com/harshgoy877/travdif-bot-backend/metrics"
	"github.com/harshgoy877/travdif-bot-backend/policy"
	"github.com/harshgoy877/travdif-bot-backend/prompt"
	"github.com/harshgoy877/travdif-bot-backend/relay"
	"github.com/harshgoy877/travdif-bot-backend/store"
)

// Handler handles HTTP requests.
type Handler struct {
	config    *config.Config
	relay     relay.Relay
	prompts   *prompt.Builder
	knowledge *knowledge.Store
	metrics   *metrics.Metrics
	store     store.Store
	policy    *policy.Engine
	model     *relay.ActiveModel
}

// NewHandler creates a new handler.
func NewHandler(cfg *config.Config, r relay.Relay, prompts *prompt.Builder, kn *knowledge.Store, m *metrics.Metrics, st store.Store, pol *policy.Engine, model *relay.ActiveModel) *Handler {
	return &Handler{
		config:    cfg,
		relay:     r,
		prompts:   prompts,
		knowledge: kn,
		metrics:   m,
		store:     st,
		policy:    pol,
		model:     model,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.Chat)
	e.GET("/health", h.Health)
	e.GET("/stats", h.Stats)
	e.GET("/test", h.Test)

	e.POST("/admin/switch-model", h.SwitchModel)
	e.POST("/admin/reload-knowledge", h.ReloadKnowledge)
}

// Health returns readiness flags and the metrics snapshot.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	vendorConfigured := h.config.OpenAIAPIKey != "" || h.config.GeminiAPIKey != ""
	return c.JSON(http.StatusOK, map[string]any{
		"status":              "healthy",
		"mode":                h.relay.Mode(),
		"model":               h.model.Get(),
		"knowledge_from_file": h.knowledge.FromFile(),
		"vendor_configured":   vendorConfigured,
		"metrics":             h.metrics.Snapshot(),
	})
}

// Stats returns the metrics plus static descriptive fields.
// GET /stats
func (h *Handler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	logged, err := h.store.CountConversations(ctx)
	if err != nil {
		logged = -1
	}

	return c.JSON(http.StatusOK, map[string]any{
		"metrics":              h.metrics.Snapshot(),
		"mode":                 h.relay.Mode(),
		"model":                h.model.Get(),
		"knowledge_chars":      h.knowledge.Len(),
		"conversations_logged": logged,
		"support_contact":      h.config.SupportContact,
		"base_url":             h.config.PublicBaseURL,
		"cost_note":            "estimated with a characters/4 token heuristic, not vendor tokenization",
		"cost_savings":         "automated replies cost a fraction of a staffed chat seat",
	})
}

// Test is a static connectivity echo for the widget.
// GET /test
func (h *Handler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "travdif-concierge",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
