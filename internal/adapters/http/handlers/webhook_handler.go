package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/dto"
	"github.com/betterdayenergy/esign-service/internal/domain"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// SecretHeader carries the shared webhook secret configured on the provider
// side.
const SecretHeader = "X-Webhook-Secret"

// WebhookHandler handles inbound provider callbacks. When a shared secret is
// configured, requests missing or mismatching the secret header are rejected
// before the body is read.
type WebhookHandler struct {
	service ports.WebhookService
	secret  string
}

// NewWebhookHandler creates a new WebhookHandler. An empty secret disables
// header verification.
func NewWebhookHandler(service ports.WebhookService, secret string) *WebhookHandler {
	return &WebhookHandler{service: service, secret: secret}
}

// HandleEvent handles POST /api/v1/webhooks/docuseal.
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if !h.verifySecret(r) {
		dto.WriteErrorResponse(w, r, domain.ErrForbidden)
		return
	}

	var req dto.WebhookEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ProcessEvent(r.Context(), req.ToEvent()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WebhookAckResponse{
		Status:    "processed",
		EventType: req.EventType,
	})
}

// verifySecret compares the secret header in constant time. Always true when
// no secret is configured.
func (h *WebhookHandler) verifySecret(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	got := r.Header.Get(SecretHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}
