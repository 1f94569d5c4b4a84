// Settings HTTP handlers.
//
// The settings record is a singleton; GET returns it (creating a disabled
// default when the table is empty), PUT replaces the editable fields, and
// POST /settings/test-connection validates the stored AI credentials against
// the provider.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/repo"
)

// SettingsRequest is the JSON payload for updating the settings singleton.
type SettingsRequest struct {
	AIName          string `json:"nome_ia" binding:"required,min=1,max=100"`
	AIEnabled       bool   `json:"ia_ativa"`
	OpenRouterKey   string `json:"openrouter_api"`
	OpenRouterModel string `json:"openrouter_model"`
	EvolutionToken  string `json:"evolution_token"`
	InstanceID      string `json:"instancia_id"`
	ScaleStatus     string `json:"status_balanca"`
	WebhookURL      string `json:"webhook_url"`
}

// TestConnectionResponse reports the outcome of an AI credential probe.
type TestConnectionResponse struct {
	Connected bool   `json:"connected"`
	Model     string `json:"model,omitempty"`
	Error     string `json:"error,omitempty"`
}

// GetSettings handles GET /settings. An empty table yields the disabled
// defaults rather than a 404 so the dashboard always has a form to render.
func (h *Handlers) GetSettings(c *gin.Context) {
	s, err := repo.GetSettings(c.Request.Context(), h.db)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			ok(c, http.StatusOK, &domain.Settings{AIName: "Assistente", AIEnabled: false})
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, s)
}

// UpdateSettings handles PUT /settings.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "nome_ia is required (1-100 chars)")
		return
	}
	if req.AIEnabled && (strings.TrimSpace(req.OpenRouterKey) == "" || strings.TrimSpace(req.OpenRouterModel) == "") {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "openrouter_api and openrouter_model are required when ia_ativa is true")
		return
	}

	s := &domain.Settings{
		AIName:          strings.TrimSpace(req.AIName),
		AIEnabled:       req.AIEnabled,
		OpenRouterKey:   strings.TrimSpace(req.OpenRouterKey),
		OpenRouterModel: strings.TrimSpace(req.OpenRouterModel),
		EvolutionToken:  strings.TrimSpace(req.EvolutionToken),
		InstanceID:      strings.TrimSpace(req.InstanceID),
		ScaleStatus:     strings.TrimSpace(req.ScaleStatus),
		WebhookURL:      strings.TrimSpace(req.WebhookURL),
	}
	if err := repo.UpsertSettings(c.Request.Context(), h.db, s); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, s)
}

// TestAIConnection handles POST /settings/test-connection. It probes the
// provider with the stored credentials; a failed probe is a 200 with
// connected=false so the dashboard can show the provider's error message.
func (h *Handlers) TestAIConnection(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := repo.GetSettings(ctx, h.db)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "settings not configured")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if strings.TrimSpace(s.OpenRouterKey) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "openrouter_api is not set")
		return
	}

	if err := h.newAI(s).TestConnection(ctx); err != nil {
		ok(c, http.StatusOK, TestConnectionResponse{Connected: false, Error: err.Error()})
		return
	}
	ok(c, http.StatusOK, TestConnectionResponse{Connected: true, Model: s.OpenRouterModel})
}
