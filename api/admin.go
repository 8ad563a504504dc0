package api

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// KnowledgeReloader is implemented by relays that keep a vendor-side copy of
// the knowledge blob.
type KnowledgeReloader interface {
	ReloadKnowledge(ctx context.Context) error
}

// SwitchModelRequest is the body of POST /admin/switch-model.
type SwitchModelRequest struct {
	Model string `json:"model"`
}

// authorized checks the optional admin bearer token. An empty configured
// token leaves the endpoints open.
func (h *Handler) authorized(c echo.Context) bool {
	if h.config.AdminToken == "" {
		return true
	}
	return c.Request().Header.Get("Authorization") == "Bearer "+h.config.AdminToken
}

// SwitchModel swaps the active model when the policy allows it.
// POST /admin/switch-model
func (h *Handler) SwitchModel(c echo.Context) error {
	if !h.authorized(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	var req SwitchModelRequest
	if err := c.Bind(&req); err != nil || req.Model == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "model is required"})
	}

	decision, err := h.policy.Evaluate(c.Request().Context(), map[string]any{"model": req.Model})
	if err != nil {
		log.Printf("ERROR: policy evaluation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "policy evaluation failed"})
	}
	if decision != "allow" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "model not allowed"})
	}

	h.model.Set(req.Model)
	log.Printf("Active model switched to %s", req.Model)
	return c.JSON(http.StatusOK, map[string]string{"model": req.Model, "status": "switched"})
}

// ReloadKnowledge re-runs the knowledge load and, for relays that index the
// blob vendor-side, rebuilds that index from scratch.
// POST /admin/reload-knowledge
func (h *Handler) ReloadKnowledge(c echo.Context) error {
	if !h.authorized(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	fromFile := h.knowledge.Reload()

	if reloader, ok := h.relay.(KnowledgeReloader); ok {
		if err := reloader.ReloadKnowledge(c.Request().Context()); err != nil {
			log.Printf("ERROR: failed to rebuild vendor knowledge index: %v", err)
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "failed to rebuild vendor knowledge index"})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"reloaded":        true,
		"from_file":       fromFile,
		"knowledge_chars": h.knowledge.Len(),
	})
}
