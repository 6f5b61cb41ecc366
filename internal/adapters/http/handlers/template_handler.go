package handlers

import (
	"net/http"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/dto"
	"github.com/betterdayenergy/esign-service/internal/ports"
)

// TemplateHandler handles HTTP requests for the read-only template catalog.
type TemplateHandler struct {
	service ports.SigningService
}

// NewTemplateHandler creates a new TemplateHandler with the given service port.
func NewTemplateHandler(service ports.SigningService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// ListTemplates handles GET /api/v1/templates.
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTemplateListResponse(templates))
}

// GetTemplate handles GET /api/v1/templates/{id}.
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	tmpl, err := h.service.GetTemplate(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTemplateResponse(tmpl))
}
