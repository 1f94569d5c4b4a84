// Webhook HTTP handlers.
//
// This file exposes the inbound webhook endpoint and the status probe:
//   - POST /webhook/whatsapp  (process one delivered message)
//   - GET  /webhook/status    (admin-facing health snapshot)
//
// The webhook handler is transport-thin: it decodes the platform payload
// (enveloped under "data" or bare, both shapes occur in the wild), hands it
// to the pipeline service, and acknowledges with 200 regardless of whether
// the message was dropped at an eligibility or settings gate; the platform
// must not retry messages we deliberately ignored. Only an unparseable body
// is a client error.
//
// Deliveries are at-least-once: replays are reprocessed and re-logged, by
// design there is no deduplication key.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assistec/go-whats-backend/internal/http/middleware"
	"github.com/assistec/go-whats-backend/internal/whatsapp"
)

// WebhookResponse acknowledges one processed delivery.
type WebhookResponse struct {
	Success bool   `json:"success"`
	Outcome string `json:"outcome"`
}

// maxWebhookBody caps how much of the request body is read while decoding.
const maxWebhookBody = 256 << 10

// ReceiveWebhook handles POST /webhook/whatsapp.
func (h *Handlers) ReceiveWebhook(c *gin.Context) {
	msg, err := decodeWebhookBody(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid webhook payload")
		return
	}

	res := h.pipeline.Process(c.Request.Context(), msg)

	lg := middleware.LoggerFrom(c)
	lg.Info().Str("outcome", string(res.Outcome)).Msg("webhook processed")

	ok(c, http.StatusOK, WebhookResponse{Success: true, Outcome: string(res.Outcome)})
}

// decodeWebhookBody accepts both delivery shapes: {"data": {...}} and the
// bare message object.
func decodeWebhookBody(r io.Reader) (whatsapp.WebhookMessage, error) {
	var msg whatsapp.WebhookMessage

	body, err := io.ReadAll(io.LimitReader(r, maxWebhookBody))
	if err != nil {
		return msg, err
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return msg, err
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		body = env.Data
	}
	err = json.Unmarshal(body, &msg)
	return msg, err
}

// WebhookStatus handles GET /webhook/status.
func (h *Handlers) WebhookStatus(c *gin.Context) {
	ok(c, http.StatusOK, h.status.WebhookStatus(c.Request.Context()))
}
